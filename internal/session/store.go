// Package session keeps the in-memory sheets behind the page, one per
// browser session. Nothing is persisted: a sheet lives until it is deleted or
// sits idle longer than the configured limit.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"feesheet/internal/logging"
	"feesheet/internal/sheet"
)

var (
	ErrNotFound = errors.New("sheet not found")
	ErrFull     = errors.New("sheet limit reached")
)

// Options configures a Store.
type Options struct {
	InitialRows int
	MaxIdle     time.Duration
	MaxSheets   int
	Logger      *slog.Logger
	Now         func() time.Time
}

type entry struct {
	mu       sync.Mutex
	sheet    *sheet.Sheet
	lastUsed time.Time
	removed  bool
}

// Store maps sheet ids to sheets. Operations on one sheet are serialized;
// different sheets proceed independently.
type Store struct {
	mu     sync.Mutex
	sheets map[string]*entry

	initialRows int
	maxIdle     time.Duration
	maxSheets   int
	now         func() time.Time
	logger      *slog.Logger
}

// NewStore builds an empty store.
func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		sheets:      make(map[string]*entry),
		initialRows: opts.InitialRows,
		maxIdle:     opts.MaxIdle,
		maxSheets:   opts.MaxSheets,
		now:         now,
		logger:      logging.NewComponentLogger(opts.Logger, "sessions"),
	}
}

// Create allocates a new sheet and returns its id.
func (s *Store) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if s.maxSheets > 0 && len(s.sheets) >= s.maxSheets {
		return "", fmt.Errorf("%w (%d)", ErrFull, s.maxSheets)
	}
	id := uuid.NewString()
	sh := sheet.New(s.initialRows)
	logger := s.logger.With(logging.String(logging.FieldSheetID, id))
	sh.OnTotals(func(t sheet.Totals) {
		logger.Debug("totals updated",
			logging.Int64("movie", t.Movie),
			logging.Int64("series", t.Series),
			logging.Int64("grand", t.Grand),
		)
	})
	s.sheets[id] = &entry{sheet: sh, lastUsed: now}
	s.logger.Debug("sheet created",
		logging.String(logging.FieldSheetID, id),
		logging.Int("sheets", len(s.sheets)),
	)
	return id, nil
}

// With runs fn with exclusive access to the sheet. A sheet deleted or
// expired while fn waited for its turn reports ErrNotFound.
func (s *Store) With(id string, fn func(*sheet.Sheet) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	e.lastUsed = s.now()
	return fn(e.sheet)
}

// Delete discards a sheet and waits for any operation running on it. It
// reports whether the sheet existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.sheets[id]
	if ok {
		delete(s.sheets, id)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	s.logger.Debug("sheet deleted", logging.String(logging.FieldSheetID, id))
	return true
}

// Len returns the number of live sheets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sheets)
}

func (s *Store) lookup(id string) (*entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	e, ok := s.sheets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

func (s *Store) sweepLocked(now time.Time) {
	if s.maxIdle <= 0 {
		return
	}
	for id, e := range s.sheets {
		if !e.mu.TryLock() {
			continue
		}
		idle := now.Sub(e.lastUsed)
		if idle <= s.maxIdle {
			e.mu.Unlock()
			continue
		}
		e.removed = true
		e.mu.Unlock()
		delete(s.sheets, id)
		s.logger.Info("idle sheet expired",
			logging.String(logging.FieldSheetID, id),
			logging.Duration("idle", idle),
			logging.String(logging.FieldEventType, "sheet_expired"),
		)
	}
}
