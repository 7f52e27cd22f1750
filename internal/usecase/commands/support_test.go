//go:build unit

package commands_test

import (
	"context"
	"time"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/domain/waitlist"
	"tablebook/internal/infra"
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/phone"

	"github.com/google/uuid"
)

func uuid4() uuid.UUID {
	return uuid.New()
}

func notFound() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func conflict() error {
	return infra.WrapRepoErr("status guard rejected update", nil, infra.KindConflict)
}

// fakeReservationRepo records calls and serves canned reservations keyed by
// id. Per-method error hooks simulate guard rejections.
type fakeReservationRepo struct {
	byID map[uuid.UUID]*reservation.Reservation

	created        []*reservation.Reservation
	bucketCount    int
	confirmErr     error
	confirmedIDs   []uuid.UUID
	clearFlags     []bool
	notifiedIDs    []uuid.UUID
	seatErr        error
	seatedIDs      []uuid.UUID
	cancelErr      error
	cancelledIDs   []uuid.UUID
	customerRefs   map[uuid.UUID]string
	activeByPhone  *reservation.Reservation
	activePhoneErr error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		byID:         map[uuid.UUID]*reservation.Reservation{},
		customerRefs: map[uuid.UUID]string{},
	}
}

func (f *fakeReservationRepo) add(res *reservation.Reservation) {
	f.byID[res.ID()] = res
}

func (f *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	f.created = append(f.created, res)
	f.byID[res.ID()] = res
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, notFound()
	}
	return res, nil
}

func (f *fakeReservationRepo) FindActiveByPhone(_ context.Context, _ uuid.UUID, _ phone.Number, _ time.Time) (*reservation.Reservation, error) {
	if f.activePhoneErr != nil {
		return nil, f.activePhoneErr
	}
	if f.activeByPhone == nil {
		return nil, notFound()
	}
	return f.activeByPhone, nil
}

func (f *fakeReservationRepo) CountInBucket(_ context.Context, _ uuid.UUID, _, _ time.Time, _, _ string, _ []reservation.Status) (int, error) {
	return f.bucketCount, nil
}

func (f *fakeReservationRepo) ConfirmDraft(_ context.Context, _ uuid.UUID, id uuid.UUID, clearPayment bool) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedIDs = append(f.confirmedIDs, id)
	f.clearFlags = append(f.clearFlags, clearPayment)
	if res, ok := f.byID[id]; ok {
		_ = res.Confirm(clearPayment)
	}
	return nil
}

func (f *fakeReservationRepo) MarkNotified(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	f.notifiedIDs = append(f.notifiedIDs, id)
	return nil
}

func (f *fakeReservationRepo) Seat(_ context.Context, _ uuid.UUID, id, _ uuid.UUID) error {
	if f.seatErr != nil {
		return f.seatErr
	}
	f.seatedIDs = append(f.seatedIDs, id)
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledIDs = append(f.cancelledIDs, id)
	return nil
}

func (f *fakeReservationRepo) SetCustomerRef(_ context.Context, _ uuid.UUID, id uuid.UUID, customerRef string) error {
	f.customerRefs[id] = customerRef
	return nil
}

type fakeSlotRepo struct {
	slots []schedule.Slot
}

func (f *fakeSlotRepo) ListByRestaurant(_ context.Context, _ uuid.UUID) ([]schedule.Slot, error) {
	return f.slots, nil
}

type fakeTableRepo struct {
	byID        map[uuid.UUID]table.Table
	occupiedSet map[uuid.UUID]bool
	setErr      error
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{
		byID:        map[uuid.UUID]table.Table{},
		occupiedSet: map[uuid.UUID]bool{},
	}
}

func (f *fakeTableRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (table.Table, error) {
	tbl, ok := f.byID[id]
	if !ok {
		return table.Table{}, notFound()
	}
	return tbl, nil
}

func (f *fakeTableRepo) SetOccupied(_ context.Context, _ uuid.UUID, id uuid.UUID, occupied bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.occupiedSet[id] = occupied
	return nil
}

type fakeMessageRepo struct {
	appended []*message.History
}

func (f *fakeMessageRepo) Append(_ context.Context, h *message.History) error {
	f.appended = append(f.appended, h)
	return nil
}

type fakeWaitlistRepo struct {
	byID        map[uuid.UUID]*waitlist.Entry
	created     []*waitlist.Entry
	updateErr   error
	transitions []waitlist.Status
}

func newFakeWaitlistRepo() *fakeWaitlistRepo {
	return &fakeWaitlistRepo{byID: map[uuid.UUID]*waitlist.Entry{}}
}

func (f *fakeWaitlistRepo) Create(_ context.Context, e *waitlist.Entry) error {
	f.created = append(f.created, e)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeWaitlistRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*waitlist.Entry, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, notFound()
	}
	return e, nil
}

func (f *fakeWaitlistRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ uuid.UUID, _, to waitlist.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.transitions = append(f.transitions, to)
	return nil
}

// fakeGateway records every outbound call; error fields make individual
// endpoints fail.
type fakeGateway struct {
	customerID  string
	customerErr error

	bookTableErr error
	bookedTables []string

	smsErr   error
	sentSMS  []string
	checkout string

	checkoutErr error
}

func (f *fakeGateway) EnsureCustomer(_ context.Context, _, _, _ string, _ phone.Number) (string, error) {
	if f.customerErr != nil {
		return "", f.customerErr
	}
	return f.customerID, nil
}

func (f *fakeGateway) BookTable(_ context.Context, tableID string, _ nova.BookTableParams) error {
	if f.bookTableErr != nil {
		return f.bookTableErr
	}
	f.bookedTables = append(f.bookedTables, tableID)
	return nil
}

func (f *fakeGateway) SendSMS(_ context.Context, _ string, _ phone.Number, text string) error {
	if f.smsErr != nil {
		return f.smsErr
	}
	f.sentSMS = append(f.sentSMS, text)
	return nil
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, _ nova.CheckoutParams) (string, error) {
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.checkout, nil
}

type fakePublisher struct {
	published []string // "collection/op"
}

func (f *fakePublisher) Publish(_ context.Context, _ uuid.UUID, collection, op string) {
	f.published = append(f.published, collection+"/"+op)
}

type fakeInvalidator struct {
	dates []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, _ uuid.UUID, date string) {
	f.dates = append(f.dates, date)
}

// thursdayDinner returns a weekly dinner slot for a given restaurant
// covering 18:00-21:00 on Thursdays.
func thursdayDinner(restaurantID uuid.UUID, maxReservations int) schedule.Slot {
	dow := 4
	return schedule.Slot{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		DayOfWeek:       &dow,
		Start:           "18:00",
		End:             "21:00",
		MaxReservations: maxReservations,
		Active:          true,
	}
}

func externalRestaurant() *tenant.Restaurant {
	ref := "merchant-123"
	return &tenant.Restaurant{
		ID:          uuid.New(),
		Name:        "Bella Cucina",
		Slug:        "bella",
		ExternalRef: &ref,
		Reservation: tenant.ReservationSettings{
			AutoConfirm:  true,
			LeadTimeMin:  60,
			MaxPartySize: 12,
			Timezone:     "UTC",
		},
	}
}

func localRestaurant() *tenant.Restaurant {
	r := externalRestaurant()
	r.ExternalRef = nil
	return r
}
