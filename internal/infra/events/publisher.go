package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Collections whose changes dashboard sessions care about.
const (
	CollectionReservations = "reservations"
	CollectionWaitlist     = "waitlist_entries"
	CollectionTables       = "tables"
)

// ChangeEvent tells open dashboard sessions that a tenant-scoped collection
// changed. Consumers re-fetch the whole collection; the event carries no
// row data, so out-of-order delivery only causes redundant refreshes.
type ChangeEvent struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Collection   string    `json:"collection"`
	Op           string    `json:"op"`
	At           time.Time `json:"at"`
}

// Publisher pushes change events to NATS. A nil connection degrades to a
// no-op so the service keeps working without the realtime layer.
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewPublisher(conn *nats.Conn, subjectPrefix string) *Publisher {
	return &Publisher{conn: conn, subjectPrefix: subjectPrefix}
}

// Publish is best-effort: a failed publish is logged, never propagated, so
// realtime refresh can never break a booking or a transition.
func (p *Publisher) Publish(_ context.Context, restaurantID uuid.UUID, collection, op string) {
	if p == nil || p.conn == nil {
		return
	}

	event := ChangeEvent{
		RestaurantID: restaurantID,
		Collection:   collection,
		Op:           op,
		At:           time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	subject := p.subjectPrefix + "." + restaurantID.String() + "." + collection
	if err := p.conn.Publish(subject, payload); err != nil {
		slog.Warn("change event publish failed", "subject", subject, "error", err)
	}
}
