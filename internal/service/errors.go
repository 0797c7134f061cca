package service

import (
	"fmt"
	"strings"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// ValidationError reports malformed input. Every violated constraint is
// collected before the error is returned, so a caller can fix all issues in
// one round trip.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// InvalidStateError reports an operation that is not permitted in the
// contest's current lifecycle state.
type InvalidStateError struct {
	CurrentStatus model.Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("contest cannot be modified in '%s' state; names may only be updated while the contest is 'new'", e.CurrentStatus)
}

// StartValidationError is the aggregate precondition failure for Start. It
// carries every violated precondition plus a diagnostic snapshot of the
// contest. The contest is left untouched.
type StartValidationError struct {
	Errors   []string
	Snapshot model.ContestSnapshot
}

func (e *StartValidationError) Error() string {
	return "contest cannot be started: " + strings.Join(e.Errors, "; ")
}

// AlreadyExistsError reports a write to the winner registry after a winner
// has been recorded. Existing carries the record already in place.
type AlreadyExistsError struct {
	Existing *model.WinnerRecord
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("a winner already exists: %q", e.Existing.Name)
}
