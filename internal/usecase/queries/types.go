package queries

import (
	"time"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"
	"tablebook/internal/domain/waitlist"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID  `json:"id"`
	GuestName      string     `json:"guest_name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	PartySize      int        `json:"party_size"`
	DateTime       time.Time  `json:"date_time"`
	LocalTime      string     `json:"local_time"`
	SlotStart      string     `json:"slot_start"`
	Status         string     `json:"status"`
	TableID        *uuid.UUID `json:"table_id,omitempty"`
	PaymentCents   *int64     `json:"payment_cents,omitempty"`
	Occasion       *string    `json:"occasion,omitempty"`
	SpecialRequest string     `json:"special_request,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SlotAvailability is one bookable window on the public availability
// listing. Times render in the tenant timezone.
type SlotAvailability struct {
	SlotStart    string `json:"slot_start"`
	SlotEnd      string `json:"slot_end"`
	DisplayTime  string `json:"display_time"`
	Remaining    int    `json:"remaining"`
	MaxPartySize int    `json:"max_party_size"`
}

type TableView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Seats    int       `json:"seats"`
	Occupied bool      `json:"occupied"`
	Area     *string   `json:"area,omitempty"`
}

type WaitlistView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	PartySize int       `json:"party_size"`
	Status    string    `json:"status"`
	WaitedMin int       `json:"waited_min"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Phone         string    `json:"phone"`
	Body          string    `json:"body"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type RestaurantView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	Slug        string    `json:"slug"`
	ExternalRef *string   `json:"external_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewReservationView(r *reservation.Reservation, loc *time.Location) *ReservationView {
	return &ReservationView{
		ID:             r.ID(),
		GuestName:      r.Guest().Name(),
		Phone:          r.Guest().Phone().String(),
		Email:          r.Guest().Email(),
		PartySize:      r.PartySize().Value(),
		DateTime:       r.DateTime(),
		LocalTime:      r.DateTime().In(loc).Format("Jan 2, 2006 3:04 PM"),
		SlotStart:      r.SlotStart(),
		Status:         r.Status().String(),
		TableID:        r.TableID(),
		PaymentCents:   r.PaymentCents(),
		Occasion:       r.Occasion(),
		SpecialRequest: r.SpecialRequest().String(),
		CreatedAt:      r.CreatedAt(),
	}
}

func NewTableView(t table.Table) TableView {
	return TableView{
		ID:       t.ID,
		Name:     t.Name,
		Seats:    t.Seats,
		Occupied: t.Occupied,
		Area:     t.Area,
	}
}

func NewWaitlistView(e *waitlist.Entry, now time.Time) WaitlistView {
	waited := int(now.Sub(e.CreatedAt).Minutes())
	if waited < 0 {
		waited = 0
	}
	return WaitlistView{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone.String(),
		PartySize: e.PartySize,
		Status:    string(e.Status),
		WaitedMin: waited,
		CreatedAt: e.CreatedAt,
	}
}

func NewMessageView(h message.History) MessageView {
	return MessageView{
		ID:            h.ID,
		ReservationID: h.ReservationID,
		Phone:         h.Phone,
		Body:          h.Body,
		Status:        string(h.Status),
		CreatedAt:     h.CreatedAt,
	}
}
