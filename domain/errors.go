package domain

import "errors"

var (
	// ErrPermissionDenied is returned when the invoker lacks the required permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRankTooLow is returned when the invoker's top role is not above the target's.
	ErrRankTooLow = errors.New("invoker does not outrank target")

	// ErrNotBanned is returned when unbanning a user who is not banned.
	ErrNotBanned = errors.New("user is not banned")

	// ErrInvalidDuration is returned when a timeout duration parses to zero.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrConfigurationAbsent is returned when a guild has no log channel configured.
	ErrConfigurationAbsent = errors.New("guild configuration absent")
)

// Rejection is returned when a command is refused before any mutation is made.
// Reply is the text shown to the invoker.
type Rejection struct {
	Reason error
	Reply  string
}

// Error implements the error interface
func (r *Rejection) Error() string {
	return r.Reason.Error()
}

// Unwrap returns the underlying sentinel
func (r *Rejection) Unwrap() error {
	return r.Reason
}

// Reject builds a Rejection for reason with the given reply.
func Reject(reason error, reply string) *Rejection {
	return &Rejection{Reason: reason, Reply: reply}
}
