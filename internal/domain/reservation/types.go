package reservation

type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusNotified  Status = "notified"
	StatusSeated    Status = "seated"
	StatusCancelled Status = "cancelled"
)

// CountedStatuses is the set of statuses that consume slot capacity.
// Only confirmed reservations count; draft, notified, seated and cancelled
// do not. If the policy ever changes, widen this set rather than editing
// count queries.
var CountedStatuses = []Status{StatusConfirmed}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusNotified, StatusSeated, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusSeated || s == StatusCancelled
}

// CanConfirm reports whether the reservation may move to confirmed,
// either through the payment-success return or a manual staff confirm.
func (s Status) CanConfirm() bool {
	return s == StatusDraft
}

// CanNotify reports whether staff may send a message to the guest.
func (s Status) CanNotify() bool {
	return s == StatusConfirmed || s == StatusNotified
}

// CanSeat reports whether staff may seat the guest at a table.
func (s Status) CanSeat() bool {
	return s == StatusConfirmed || s == StatusNotified
}

// CanCancel reports whether the reservation may be cancelled by staff or
// by the guest through phone lookup.
func (s Status) CanCancel() bool {
	return s == StatusDraft || s == StatusConfirmed || s == StatusNotified
}
