package nova

import (
	"context"
	"net/http"

	"tablebook/internal/pkg/phone"
)

type customerRequest struct {
	MerchantRef  string `json:"merchantRef"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	CountryCode  string `json:"countryCode"`
	MobileNumber string `json:"mobileNumber"`
}

type customerResponse struct {
	CustomerID string `json:"customerId"`
}

// EnsureCustomer creates or fetches the customer record matching the guest.
// The API dedupes on phone number, so repeated calls are safe.
func (c *Client) EnsureCustomer(ctx context.Context, merchantRef, firstName, lastName string, num phone.Number) (string, error) {
	if merchantRef == "" {
		return "", ErrMissingExternalRef
	}

	req := customerRequest{
		MerchantRef:  merchantRef,
		FirstName:    firstName,
		LastName:     lastName,
		CountryCode:  num.CountryCode,
		MobileNumber: num.MobileNumber,
	}

	var resp customerResponse
	if err := c.doJSON(ctx, http.MethodPost, "/customer", req, &resp); err != nil {
		return "", err
	}
	return resp.CustomerID, nil
}
