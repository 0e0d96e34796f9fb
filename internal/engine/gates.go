package engine

import "weeklytask/internal/storage"

type SetupStep string

const (
	SetupStepTerms        SetupStep = "terms"
	SetupStepOnboarding   SetupStep = "onboarding"
	SetupStepInitialSetup SetupStep = "initial setup"
)

// CheckSetup returns a SetupError for the first incomplete first-run step:
// terms, then onboarding, then the child profile.
func CheckSetup(d storage.AppData) error {
	switch {
	case !d.Settings.AgreedToTerms:
		return SetupError{Step: SetupStepTerms}
	case !d.Settings.OnboardingCompleted:
		return SetupError{Step: SetupStepOnboarding}
	case !d.Settings.InitialSetupCompleted || d.Child == nil:
		return SetupError{Step: SetupStepInitialSetup}
	default:
		return nil
	}
}

// RequireSetup checks the service's current document.
func (s *Service) RequireSetup() error {
	return CheckSetup(s.data)
}
