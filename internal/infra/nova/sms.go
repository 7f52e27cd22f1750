package nova

import (
	"context"
	"errors"
	"net/http"

	"tablebook/internal/pkg/phone"
)

var ErrSMSTooLong = errors.New("sms text exceeds 160 characters")

type smsRequest struct {
	MerchantRef  string `json:"merchantRef"`
	CountryCode  string `json:"countryCode"`
	MobileNumber string `json:"mobileNumber"`
	Message      string `json:"message"`
}

// SendSMS delivers a free-text message to a guest. The 160-character limit
// is enforced here as a last line; callers validate earlier so the error is
// reported before any history row is prepared.
func (c *Client) SendSMS(ctx context.Context, merchantRef string, num phone.Number, text string) error {
	if merchantRef == "" {
		return ErrMissingExternalRef
	}
	if len(text) > 160 {
		return ErrSMSTooLong
	}

	req := smsRequest{
		MerchantRef:  merchantRef,
		CountryCode:  num.CountryCode,
		MobileNumber: num.MobileNumber,
		Message:      text,
	}
	return c.doJSON(ctx, http.MethodPost, "/mycustomers/customers/send-custom-sms", req, nil)
}
