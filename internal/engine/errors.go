package engine

import "fmt"

// SetupError indicates a first-run step has not been completed yet.
// This is returned by CheckSetup and should be shown to the user.
type SetupError struct {
	Step SetupStep
}

func (e SetupError) Error() string {
	return fmt.Sprintf("setup step '%s' is not completed", e.Step)
}

// ValidationError reports user input that cannot be turned into data.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
