//go:build unit

package builder

import (
	"time"

	"tablebook/internal/domain/tenant"

	"github.com/google/uuid"
)

type RestaurantBuilder struct {
	ID          uuid.UUID
	Name        string
	Subdomain   string
	Slug        string
	ExternalRef *string
	Settings    tenant.ReservationSettings
}

func NewRestaurantBuilder() *RestaurantBuilder {
	return &RestaurantBuilder{
		ID:        uuid.New(),
		Name:      "Bella Cucina",
		Subdomain: "bella",
		Slug:      "bella",
		Settings: tenant.ReservationSettings{
			AutoConfirm:  true,
			LeadTimeMin:  60,
			MaxPartySize: 12,
			Timezone:     "UTC",
		},
	}
}

func (b *RestaurantBuilder) With(mutate func(*RestaurantBuilder)) *RestaurantBuilder {
	mutate(b)
	return b
}

func (b *RestaurantBuilder) WithExternalRef(ref string) *RestaurantBuilder {
	b.ExternalRef = &ref
	return b
}

func (b *RestaurantBuilder) WithTimezone(tz string) *RestaurantBuilder {
	b.Settings.Timezone = tz
	return b
}

func (b *RestaurantBuilder) WithPayment(depositPerGuestCents int64, gatewayID string) *RestaurantBuilder {
	b.Settings.PaymentRequired = true
	b.Settings.DepositPerGuestCents = depositPerGuestCents
	b.Settings.GatewayID = gatewayID
	return b
}

func (b *RestaurantBuilder) Build() *tenant.Restaurant {
	return &tenant.Restaurant{
		ID:          b.ID,
		Name:        b.Name,
		Subdomain:   b.Subdomain,
		Slug:        b.Slug,
		ExternalRef: b.ExternalRef,
		Reservation: b.Settings,
		CreatedAt:   time.Now(),
	}
}
