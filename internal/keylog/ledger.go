// Package keylog keeps the ledger of classroom keys handed to teachers.
//
// A teacher may hold at most one outstanding key. Records are never
// deleted; a delivery moves to returned exactly once.
package keylog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/logging"
	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"
)

// Repository is the durability mirror behind a Ledger.
type Repository interface {
	Load() (*table.Table, error)
	Save(t *table.Table) error
}

// Ledger owns the key records in memory and rewrites its mirror after
// every change.
type Ledger struct {
	repo    Repository
	now     func() time.Time
	logger  *slog.Logger
	records []Record
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used to stamp deliveries and returns.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger used for fallbacks and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRepository replaces the file mirror.
func WithRepository(r Repository) Option {
	return func(l *Ledger) {
		l.repo = r
	}
}

// Open loads the ledger stored at path.
//
// A missing file is created empty. An unreadable file is left as is, the
// ledger starts empty and the error wraps domain.ErrFileRead. The returned
// Ledger is usable in every case.
func Open(path string, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		repo:   table.FileStore{Path: path},
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	t, err := l.repo.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Info("key ledger not found, creating empty one", "path", path)
		return l, l.persist()
	case err != nil:
		l.logger.Warn("failed to load key ledger, starting empty", "path", path, "error", err)
		return l, fmt.Errorf("ledger: %w: %w", domain.ErrFileRead, err)
	}

	l.records = Records(t)
	l.logger.Debug("loaded key ledger", "path", path, "records", len(l.records))
	return l, nil
}

// Delivery describes a key being handed out.
type Delivery struct {
	TeacherID string
	Teacher   string
	Subject   string
	Room      string
	Day       string
	TimeRange string
	Notes     string
}

// Deliver records a key hand-out stamped with the ledger clock.
//
// It fails with domain.ErrDuplicateActiveDelivery when the teacher already
// holds a key. If the mirror cannot be rewritten the record still stands
// and is returned along with an error wrapping domain.ErrFileWrite.
func (l *Ledger) Deliver(d Delivery) (Record, error) {
	if err := util.ValidateTeacherID(d.TeacherID); err != nil {
		return Record{}, fmt.Errorf("ledger: %w", err)
	}
	id := util.NormalizeTeacherID(d.TeacherID)
	if l.active(id) >= 0 {
		return Record{}, fmt.Errorf("ledger: %w: %s", domain.ErrDuplicateActiveDelivery, id)
	}

	now := l.now()
	rec := Record{
		DeliveryDate: now.Format(util.DateLayout),
		DeliveryTime: now.Format(timeLayout),
		Day:          d.Day,
		Subject:      d.Subject,
		Room:         d.Room,
		Teacher:      d.Teacher,
		TeacherID:    id,
		TimeRange:    d.TimeRange,
		Status:       StatusDelivered,
		Notes:        d.Notes,
	}
	l.records = append(l.records, rec)
	l.logger.Info("key delivered", "teacher_id", id, "room", d.Room)
	return rec, l.persist()
}

// Return marks the teacher's outstanding key as returned now.
//
// It fails with domain.ErrNoActiveDelivery when no key is outstanding.
// Mirror failures follow the same policy as Deliver.
func (l *Ledger) Return(teacherID string) (Record, error) {
	id := util.NormalizeTeacherID(teacherID)
	i := l.active(id)
	if i < 0 {
		return Record{}, fmt.Errorf("ledger: %w: %s", domain.ErrNoActiveDelivery, id)
	}

	now := l.now()
	rec := &l.records[i]
	rec.ReturnDate = now.Format(util.DateLayout)
	rec.ReturnTime = now.Format(timeLayout)
	rec.Status = StatusReturned
	l.logger.Info("key returned", "teacher_id", id, "room", rec.Room)
	return *rec, l.persist()
}

// active returns the index of the most recent outstanding record for id,
// or -1.
func (l *Ledger) active(id string) int {
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].TeacherID == id && l.records[i].Outstanding() {
			return i
		}
	}
	return -1
}

func (l *Ledger) persist() error {
	if err := l.repo.Save(Table(l.records)); err != nil {
		l.logger.Warn("failed to write key ledger", "error", err)
		return fmt.Errorf("ledger: %w: %w", domain.ErrFileWrite, err)
	}
	return nil
}

// History returns a copy of every record in insertion order.
func (l *Ledger) History() []Record {
	return slices.Clone(l.records)
}

// Outstanding returns the keys that have not been returned.
func (l *Ledger) Outstanding() []Record {
	return l.Query(Query{Outstanding: true})
}
