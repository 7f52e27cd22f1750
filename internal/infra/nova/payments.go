package nova

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrUnknownGateway       = errors.New("unknown payment gateway id")
)

// Two checkout providers sit behind the payments surface; the tenant's
// gateway id string picks the route.
const (
	providerPayline = "payline"
	providerNovaPay = "novapay"
)

func providerFor(gatewayID string) (string, error) {
	switch gatewayID {
	case "":
		return "", ErrGatewayNotConfigured
	case "payline", "payline_v2":
		return providerPayline, nil
	case "novapay", "novapay_hosted":
		return providerNovaPay, nil
	default:
		return "", ErrUnknownGateway
	}
}

type MerchantConfig struct {
	MerchantRef string `json:"merchantRef"`
	GatewayID   string `json:"gatewayId"`
	Currency    string `json:"currency"`
}

// FetchMerchantConfig reads the payment configuration for a merchant.
func (c *Client) FetchMerchantConfig(ctx context.Context, merchantRef string) (*MerchantConfig, error) {
	if merchantRef == "" {
		return nil, ErrMissingExternalRef
	}

	var cfg MerchantConfig
	path := "/merchant-config?merchantRef=" + url.QueryEscape(merchantRef)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type CheckoutParams struct {
	MerchantRef   string
	GatewayID     string
	AmountCents   int64
	ReservationID uuid.UUID
	ReturnURL     string
}

type checkoutRequest struct {
	MerchantRef string `json:"merchantRef"`
	AmountCents int64  `json:"amountCents"`
	Reference   string `json:"reference"`
	ReturnURL   string `json:"returnUrl"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// CreateCheckoutSession opens a hosted checkout for a draft reservation and
// returns the redirect URL. A tenant without a stored gateway id falls back
// to the gateway registered in its merchant config.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	if p.MerchantRef == "" {
		return "", ErrMissingExternalRef
	}
	gatewayID := p.GatewayID
	if gatewayID == "" {
		cfg, err := c.FetchMerchantConfig(ctx, p.MerchantRef)
		if err != nil {
			return "", err
		}
		gatewayID = cfg.GatewayID
	}
	provider, err := providerFor(gatewayID)
	if err != nil {
		return "", err
	}

	req := checkoutRequest{
		MerchantRef: p.MerchantRef,
		AmountCents: p.AmountCents,
		Reference:   p.ReservationID.String(),
		ReturnURL:   p.ReturnURL,
	}

	var resp checkoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/payments/"+provider+"/checkout-session", req, &resp); err != nil {
		return "", err
	}
	return resp.CheckoutURL, nil
}
