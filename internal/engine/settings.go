package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"weeklytask/internal/storage"
)

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	Notifications         *bool
	WeekStart             *int
	AgreedToTerms         *bool
	OnboardingCompleted   *bool
	InitialSetupCompleted *bool
	CurrentGrade          *string
}

func (p SettingsPatch) apply(st *storage.Settings) {
	if p.Notifications != nil {
		st.Notifications = *p.Notifications
	}
	if p.WeekStart != nil {
		st.WeekStart = *p.WeekStart
	}
	if p.AgreedToTerms != nil {
		st.AgreedToTerms = *p.AgreedToTerms
	}
	if p.OnboardingCompleted != nil {
		st.OnboardingCompleted = *p.OnboardingCompleted
	}
	if p.InitialSetupCompleted != nil {
		st.InitialSetupCompleted = *p.InitialSetupCompleted
	}
	if p.CurrentGrade != nil {
		st.CurrentGrade = *p.CurrentGrade
	}
}

func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	return s.mutate(ctx, "update settings", func(d *storage.AppData) {
		patch.apply(&d.Settings)
	})
}

// UpdateChild replaces the child profile. The grade bundles are not touched;
// use SwitchGrade to move to another grade.
func (s *Service) UpdateChild(ctx context.Context, child storage.Child) error {
	return s.mutate(ctx, "update child", func(d *storage.AppData) {
		c := child
		d.Child = &c
	})
}

func (s *Service) UpdateGoals(ctx context.Context, goals storage.Goal) error {
	return s.mutate(ctx, "update goals", func(d *storage.AppData) {
		d.Goals = goals
	})
}

// AgreeToTerms records acceptance of the terms of use.
func (s *Service) AgreeToTerms(ctx context.Context) error {
	return s.mutate(ctx, "agree to terms", func(d *storage.AppData) {
		d.Settings.AgreedToTerms = true
	})
}

func (s *Service) CompleteOnboarding(ctx context.Context) error {
	return s.mutate(ctx, "complete onboarding", func(d *storage.AppData) {
		d.Settings.OnboardingCompleted = true
	})
}

// CompleteSetup stores the child profile and finishes the first-run flow.
// The child's grade becomes the current grade. When a profile already exists
// under another grade, the change goes through the grade switch so the old
// grade's data is archived first.
func (s *Service) CompleteSetup(ctx context.Context, child storage.Child, notifications bool, weekStart int) error {
	err := s.mutate(ctx, "complete setup", func(d *storage.AppData) {
		if d.Child != nil && d.Child.Grade != "" && d.Child.Grade != child.Grade {
			switchGrade(d, child.Grade, child.StartDate, weekStart)
		}
		c := child
		d.Child = &c
		d.Settings.AgreedToTerms = true
		d.Settings.OnboardingCompleted = true
		d.Settings.InitialSetupCompleted = true
		d.Settings.Notifications = notifications
		d.Settings.WeekStart = weekStart
		d.Settings.CurrentGrade = child.Grade
	})
	if err != nil {
		return err
	}
	s.log.Info("setup completed", zap.String("grade", child.Grade), zap.String("start_date", child.StartDate))
	return nil
}

// Reset discards every grade's data and the stored history.
func (s *Service) Reset(ctx context.Context) error {
	s.data = storage.DefaultAppData()
	if err := s.docs.Clear(ctx); err != nil {
		s.log.Error("reset failed", zap.Error(err))
		return fmt.Errorf("reset: %w", err)
	}
	s.log.Info("data reset", zap.String("key", s.docs.Key()))
	return nil
}

// Snapshots lists saved versions of the document, newest first.
func (s *Service) Snapshots(ctx context.Context, limit int) ([]storage.Snapshot, error) {
	return s.docs.Snapshots(ctx, limit)
}

// RestoreSnapshot makes snapshot id the current document and saves it.
// ok is false when no such snapshot exists.
func (s *Service) RestoreSnapshot(ctx context.Context, id int64) (ok bool, err error) {
	d, ok, err := s.docs.LoadSnapshot(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if err := s.mutate(ctx, "restore snapshot", func(cur *storage.AppData) {
		*cur = d
	}); err != nil {
		return false, err
	}
	s.log.Info("snapshot restored", zap.Int64("snapshot", id))
	return true, nil
}
