package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weeklytask/internal/storage"
)

// Service owns the in-memory document. Every mutation is applied to it and
// then the whole document is written back through the DocumentRepo.
type Service struct {
	docs  *storage.DocumentRepo
	log   *zap.Logger
	now   func() time.Time
	newID func() string
	data  storage.AppData
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the uuid generator used for memo, record,
// irregular-task and task-order ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(docs *storage.DocumentRepo, opts ...Option) *Service {
	s := &Service{
		docs:  docs,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
		data:  storage.DefaultAppData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) DocumentRepo() *storage.DocumentRepo { return s.docs }

// Load replaces the in-memory document with the stored one.
func (s *Service) Load(ctx context.Context) error {
	d, err := s.docs.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	s.data = d
	s.log.Debug("document loaded",
		zap.String("key", s.docs.Key()),
		zap.String("grade", d.Settings.CurrentGrade),
		zap.Int("tasks", len(d.Tasks)),
		zap.Int("archived_grades", len(d.GradeDataMap)),
	)
	return nil
}

// Data returns a copy of the current document.
func (s *Service) Data() storage.AppData {
	return cloneAppData(s.data)
}

// Now reads the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today is the current date in the service clock's location.
func (s *Service) Today() string {
	return FormatDate(s.now())
}

func (s *Service) mutate(ctx context.Context, op string, fn func(d *storage.AppData)) error {
	fn(&s.data)
	if err := s.docs.Save(ctx, s.data); err != nil {
		s.log.Error("persist failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("persisted", zap.String("op", op), zap.String("grade", s.data.Settings.CurrentGrade))
	return nil
}

func findTask(tasks []storage.Task, id string) *storage.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
