package commands

import (
	"context"
	"regexp"
	"strings"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlug     = errs.New("invalid restaurant slug")
	ErrReservedSlug    = errs.New("slug is reserved")
	ErrDuplicateTenant = errs.New("slug or subdomain already taken")
	ErrTenantNotFound  = errs.New("restaurant not found")
	ErrInvalidTimezone = errs.New("unknown timezone")
	ErrInvalidSlot     = errs.New("slot configuration rejected")
	ErrSlotNotFound    = errs.New("slot not found")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

type CreateRestaurantInput struct {
	Name        string
	Subdomain   string
	Slug        string
	ExternalRef *string
	Settings    *tenant.ReservationSettings
}

// SlotInput carries one slot definition: a weekly template (DayOfWeek) or a
// date override (Date), never both.
type SlotInput struct {
	DayOfWeek       *int
	Date            *string
	Start           string
	End             string
	MaxReservations int
	Active          bool
	Default         bool
}

type AdminCommands interface {
	CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (*tenant.Restaurant, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings tenant.ReservationSettings) error
	CreateSlot(ctx context.Context, restaurantID uuid.UUID, in SlotInput) (schedule.Slot, error)
	UpdateSlot(ctx context.Context, restaurantID, slotID uuid.UUID, in SlotInput) (schedule.Slot, error)
}

type adminCommandsImpl struct {
	restaurants RestaurantRepository
	slots       SlotWriter
}

func NewAdminCommands(restaurants RestaurantRepository, slots SlotWriter) AdminCommands {
	return &adminCommandsImpl{restaurants: restaurants, slots: slots}
}

// CreateRestaurant provisions a tenant. Slug and subdomain share the same
// shape rules and neither may collide with a reserved routing word.
func (a *adminCommandsImpl) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (*tenant.Restaurant, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	subdomain := strings.ToLower(strings.TrimSpace(in.Subdomain))
	if subdomain == "" {
		subdomain = slug
	}

	for _, candidate := range []string{slug, subdomain} {
		if !slugPattern.MatchString(candidate) {
			return nil, ErrInvalidSlug
		}
		if tenant.ReservedSlugs[candidate] {
			return nil, ErrReservedSlug
		}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidSlug
	}

	settings := tenant.DefaultReservationSettings()
	if in.Settings != nil {
		settings = *in.Settings
	}
	if err := validateTimezone(settings.Timezone); err != nil {
		return nil, err
	}

	rest := &tenant.Restaurant{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Subdomain:   subdomain,
		Slug:        slug,
		ExternalRef: in.ExternalRef,
		Reservation: settings,
	}

	if err := a.restaurants.Create(ctx, rest); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateTenant
		}
		return nil, errs.Mark(err, ErrStoreFailed)
	}
	return rest, nil
}

func (a *adminCommandsImpl) UpdateSettings(ctx context.Context, id uuid.UUID, settings tenant.ReservationSettings) error {
	if err := validateTimezone(settings.Timezone); err != nil {
		return err
	}

	if err := a.restaurants.UpdateSettings(ctx, id, settings); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrTenantNotFound
		}
		return errs.Mark(err, ErrStoreFailed)
	}
	return nil
}

// CreateSlot adds a bookable window for an existing tenant.
func (a *adminCommandsImpl) CreateSlot(ctx context.Context, restaurantID uuid.UUID, in SlotInput) (schedule.Slot, error) {
	if _, err := a.restaurants.FindByID(ctx, restaurantID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return schedule.Slot{}, ErrTenantNotFound
		}
		return schedule.Slot{}, errs.Mark(err, ErrStoreFailed)
	}

	s := slotFromInput(uuid.New(), restaurantID, in)
	if err := s.Validate(); err != nil {
		return schedule.Slot{}, errs.Mark(err, ErrInvalidSlot)
	}

	if err := a.slots.Create(ctx, s); err != nil {
		return schedule.Slot{}, errs.Mark(err, ErrStoreFailed)
	}
	return s, nil
}

// UpdateSlot replaces a slot definition in full.
func (a *adminCommandsImpl) UpdateSlot(ctx context.Context, restaurantID, slotID uuid.UUID, in SlotInput) (schedule.Slot, error) {
	s := slotFromInput(slotID, restaurantID, in)
	if err := s.Validate(); err != nil {
		return schedule.Slot{}, errs.Mark(err, ErrInvalidSlot)
	}

	if err := a.slots.Update(ctx, s); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return schedule.Slot{}, ErrSlotNotFound
		}
		return schedule.Slot{}, errs.Mark(err, ErrStoreFailed)
	}
	return s, nil
}

func slotFromInput(id, restaurantID uuid.UUID, in SlotInput) schedule.Slot {
	return schedule.Slot{
		ID:              id,
		RestaurantID:    restaurantID,
		DayOfWeek:       in.DayOfWeek,
		Date:            in.Date,
		Start:           in.Start,
		End:             in.End,
		MaxReservations: in.MaxReservations,
		Active:          in.Active,
		Default:         in.Default,
	}
}

// validateTimezone rejects settings that would silently fall back to UTC at
// read time. Empty is allowed and means UTC explicitly.
func validateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ErrInvalidTimezone
	}
	return nil
}
