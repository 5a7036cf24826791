package order

import (
	"errors"
	"fmt"

	"ms-catering/internal/models"
)

var (
	// ErrNotFound means the referenced order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrForbidden means the caller does not own the order or lacks the
	// required role.
	ErrForbidden = errors.New("forbidden")

	// ErrAdvanceInProgress means another staff actor holds the advance
	// lock for this order right now.
	ErrAdvanceInProgress = errors.New("status advance already in progress")
)

// ValidationError reports a malformed or missing request field. The
// operation is never attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IllegalTransitionError reports a status change the transition graph does
// not permit. Current is included for caller diagnostics.
type IllegalTransitionError struct {
	OrderID string
	Current models.OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("order %s cannot move from status %q", e.OrderID, e.Current)
}

// AdvanceConflictError reports a lost conditional update: another actor
// changed the status between our read and write. The record advanced
// exactly one step under them, not under us.
type AdvanceConflictError struct {
	OrderID string
	Current models.OrderStatus
}

func (e *AdvanceConflictError) Error() string {
	return fmt.Sprintf("order %s was updated concurrently, status is now %q", e.OrderID, e.Current)
}
