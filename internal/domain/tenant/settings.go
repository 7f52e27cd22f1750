package tenant

import "time"

// ReservationSettings is the per-tenant configuration read by the booking
// flow and the capacity engine. Stored as JSONB on the restaurants row.
type ReservationSettings struct {
	AutoConfirm          bool     `json:"auto_confirm"`
	LeadTimeMin          int      `json:"lead_time_min"`
	CutoffTime           string   `json:"cutoff_time,omitempty"` // wall-clock "15:04"; empty disables the cutoff
	PaymentRequired      bool     `json:"payment_required"`
	DepositPerGuestCents int64    `json:"deposit_per_guest_cents"`
	GatewayID            string   `json:"gateway_id,omitempty"`
	AllowedOccasions     []string `json:"allowed_occasions,omitempty"`
	MaxPartySize         int      `json:"max_party_size"`
	Timezone             string   `json:"timezone"`
}

// ManagerSettings drives the staff dashboard.
type ManagerSettings struct {
	VisibleKPIs []string `json:"visible_kpis,omitempty"`
}

func DefaultReservationSettings() ReservationSettings {
	return ReservationSettings{
		AutoConfirm:  true,
		LeadTimeMin:  60,
		MaxPartySize: 12,
		Timezone:     "UTC",
	}
}

// Location loads the tenant timezone, falling back to UTC for missing or
// bad values. There is deliberately no process-wide timezone state; the
// location is threaded through formatting and bucketing calls.
func (s ReservationSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowsOccasion reports whether the tenant accepts the given
// special-occasion tag. An empty configured list accepts none.
func (s ReservationSettings) AllowsOccasion(occasion string) bool {
	for _, o := range s.AllowedOccasions {
		if o == occasion {
			return true
		}
	}
	return false
}
