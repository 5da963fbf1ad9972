package schedule

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/logging"
	"facilitiesdesk/keydesk/internal/table"
)

// Repository is the durability mirror behind a Store.
type Repository interface {
	Load() (*table.Table, error)
	Save(t *table.Table) error
}

// Store owns the cleaned schedule in memory and mirrors it to a file after
// every change.
type Store struct {
	repo     Repository
	logger   *slog.Logger
	schedule *Schedule
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fallbacks and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRepository replaces the file mirror. Open ignores its path argument
// when this option is given.
func WithRepository(r Repository) Option {
	return func(s *Store) {
		s.repo = r
	}
}

// Open loads the cleaned schedule kept at path.
//
// A missing file is created with an empty schedule. A file that cannot be
// read is left untouched: the store starts empty and the returned error
// wraps domain.ErrFileRead. In both fallback cases the returned Store is
// usable.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   table.FileStore{Path: path},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	t, err := s.repo.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("cleaned schedule not found, creating empty one", "path", path)
		s.schedule = Empty()
		return s, s.persist()
	case err != nil:
		s.logger.Warn("failed to load cleaned schedule, starting empty", "path", path, "error", err)
		s.schedule = Empty()
		return s, fmt.Errorf("schedule: %w: %w", domain.ErrFileRead, err)
	}

	sched, err := FromTable(t)
	if err != nil {
		s.logger.Warn("failed to normalize cleaned schedule, starting empty", "path", path, "error", err)
		s.schedule = Empty()
		return s, fmt.Errorf("schedule: %w: %w", domain.ErrFileRead, err)
	}
	s.schedule = sched
	s.logger.Debug("loaded cleaned schedule", "path", path, "rows", sched.Len())
	return s, nil
}

// Schedule returns a copy of the current schedule.
func (s *Store) Schedule() *Schedule {
	return s.schedule.Clone()
}

// Daily returns a copy of the rows held on day.
func (s *Store) Daily(day string) *Schedule {
	return s.schedule.Daily(day)
}

// Import reads a raw extract from rawPath, cleans it and replaces the
// stored schedule with the result.
//
// A read failure leaves the store unchanged. A consolidation failure still
// stores the unmerged fallback and reports domain.ErrProcessing.
func (s *Store) Import(rawPath string) (*Schedule, error) {
	raw, err := table.ReadFile(rawPath)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w: %w", domain.ErrFileRead, err)
	}

	cleaned, cleanErr := Clean(raw)
	if cleanErr != nil {
		s.logger.Warn("consolidation failed, storing unmerged rows", "path", rawPath, "error", cleanErr)
	}
	if len(cleaned.MissingKeys) > 0 {
		s.logger.Warn("raw schedule lacks key columns, rows were not merged", "path", rawPath, "missing", cleaned.MissingKeys)
	}
	s.logger.Info("imported schedule", "path", rawPath, "raw_rows", raw.Len(), "rows", cleaned.Len())

	writeErr := s.Replace(cleaned)
	return cleaned.Clone(), errors.Join(cleanErr, writeErr)
}

// Replace makes sched the stored schedule and rewrites the mirror. A write
// failure is returned wrapping domain.ErrFileWrite; the in-memory
// schedule is replaced regardless.
func (s *Store) Replace(sched *Schedule) error {
	s.schedule = sched.Clone()
	return s.persist()
}

func (s *Store) persist() error {
	if err := s.repo.Save(s.schedule.Table()); err != nil {
		s.logger.Warn("failed to write cleaned schedule", "error", err)
		return fmt.Errorf("schedule: %w: %w", domain.ErrFileWrite, err)
	}
	return nil
}

// SaveAs writes sched to path in the format implied by its extension.
func SaveAs(sched *Schedule, path string) error {
	if err := table.WriteFile(path, sched.Table()); err != nil {
		return fmt.Errorf("schedule: failed to save %s: %w", path, err)
	}
	return nil
}
