package scaffold

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Alazar42/CelerisProjectStarter/internal/domain"
)

// StepError is returned when a run fails after input and connectivity checks passed.
// It matches domain.ErrRunFailed as well as the underlying cause.
type StepError struct {
	Stage domain.Stage
	Err   error
	// CleanupErr is set when transient files could not be removed afterwards.
	CleanupErr error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v while %s: %v", domain.ErrRunFailed, e.Stage, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{domain.ErrRunFailed, e.Err}
}

// Describe turns an error returned by Create into a message for the user.
func Describe(err error) string {
	var stepErr *StepError
	var validationErr *domain.ValidationError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &stepErr) && errors.Is(stepErr.Err, context.Canceled):
		return fmt.Sprintf("Project creation canceled while %s.", stepErr.Stage)
	case errors.As(err, &stepErr):
		return fmt.Sprintf("Project creation failed while %s: %v", stepErr.Stage, stepErr.Err)
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s.", validationErr.Field, validationErr.Reason)
	case errors.Is(err, domain.ErrProjectExists),
		errors.Is(err, domain.ErrNoConnectivity),
		errors.Is(err, domain.ErrRunInProgress):
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	default:
		return err.Error()
	}
}
