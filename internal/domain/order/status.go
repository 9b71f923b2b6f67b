package order

// Status represents the lifecycle state of a customer order
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipping  Status = "shipping"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status string
func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	return status, status.IsValid()
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipping, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Forward progress never skips to completed; cancellation is allowed from
// any non-terminal state. A pending order may ship before payment (cash on
// delivery).
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusPaid || target == StatusShipping || target == StatusCancelled
	case StatusPaid:
		return target == StatusShipping || target == StatusCancelled
	case StatusShipping:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
