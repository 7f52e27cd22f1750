//go:build unit

package tenant_test

import (
	"testing"

	"tablebook/internal/domain/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDomain = "tablebook.app"

func TestDeriveRef(t *testing.T) {
	externalID := uuid.New().String()

	cases := []struct {
		name        string
		host        string
		headerRef   string
		pathSegment string
		want        tenant.Ref
		wantErr     bool
	}{
		{
			name:      "header UUID wins over everything",
			host:      "bella." + baseDomain,
			headerRef: externalID,
			// path would resolve too, but the header takes priority
			pathSegment: "other",
			want:        tenant.Ref{Kind: tenant.RefExternal, Value: externalID},
		},
		{
			name:      "malformed header is an error, not a fallthrough",
			host:      "bella." + baseDomain,
			headerRef: "not-a-uuid",
			wantErr:   true,
		},
		{
			name:        "UUID path segment is an external ref",
			pathSegment: externalID,
			want:        tenant.Ref{Kind: tenant.RefExternal, Value: externalID},
		},
		{
			name:        "path slug",
			pathSegment: "bella",
			want:        tenant.Ref{Kind: tenant.RefSlug, Value: "bella"},
		},
		{
			name:        "path slug is lowercased",
			pathSegment: "Bella",
			want:        tenant.Ref{Kind: tenant.RefSlug, Value: "bella"},
		},
		{
			name:        "reserved path slug rejected",
			pathSegment: "admin",
			wantErr:     true,
		},
		{
			name: "subdomain",
			host: "bella." + baseDomain,
			want: tenant.Ref{Kind: tenant.RefSubdomain, Value: "bella"},
		},
		{
			name: "subdomain with port",
			host: "bella." + baseDomain + ":8080",
			want: tenant.Ref{Kind: tenant.RefSubdomain, Value: "bella"},
		},
		{
			name:    "reserved subdomain rejected",
			host:    "www." + baseDomain,
			wantErr: true,
		},
		{
			name:    "nested subdomain not resolvable",
			host:    "a.bella." + baseDomain,
			wantErr: true,
		},
		{
			name:    "bare base domain not resolvable",
			host:    baseDomain,
			wantErr: true,
		},
		{
			name:    "unrelated host not resolvable",
			host:    "example.com",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tenant.DeriveRef(tc.host, tc.headerRef, tc.pathSegment, baseDomain)
			if tc.wantErr {
				assert.ErrorIs(t, err, tenant.ErrUnresolvable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReservationSettingsLocation(t *testing.T) {
	t.Run("valid timezone", func(t *testing.T) {
		s := tenant.ReservationSettings{Timezone: "America/New_York"}
		assert.Equal(t, "America/New_York", s.Location().String())
	})

	t.Run("empty falls back to UTC", func(t *testing.T) {
		s := tenant.ReservationSettings{}
		assert.Equal(t, "UTC", s.Location().String())
	})

	t.Run("bad value falls back to UTC", func(t *testing.T) {
		s := tenant.ReservationSettings{Timezone: "Mars/Olympus"}
		assert.Equal(t, "UTC", s.Location().String())
	})
}

func TestAllowsOccasion(t *testing.T) {
	s := tenant.ReservationSettings{AllowedOccasions: []string{"birthday", "anniversary"}}
	assert.True(t, s.AllowsOccasion("birthday"))
	assert.False(t, s.AllowsOccasion("graduation"))

	// An empty configured list accepts nothing.
	none := tenant.ReservationSettings{}
	assert.False(t, none.AllowsOccasion("birthday"))
}

func TestRestaurantPayment(t *testing.T) {
	r := &tenant.Restaurant{
		Reservation: tenant.ReservationSettings{
			PaymentRequired:      true,
			DepositPerGuestCents: 500,
		},
	}
	assert.True(t, r.RequiresPayment())
	assert.Equal(t, int64(2000), r.DepositCents(4))

	// Payment flag without a deposit amount does not gate bookings.
	r.Reservation.DepositPerGuestCents = 0
	assert.False(t, r.RequiresPayment())
}
