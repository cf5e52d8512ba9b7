// Package store holds the application document in memory and persists it
// through a backend after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"quotedesk/models"
	"quotedesk/persistence"
)

// ErrNotFound is returned when an id does not name an existing entity.
var ErrNotFound = errors.New("store: not found")

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store: closed")

// ErrInvalidDocument is returned for a backup that is not a valid document.
var ErrInvalidDocument = errors.New("store: invalid document")

const saveTimeout = 30 * time.Second

type saveJob struct {
	seq  uint64
	blob []byte
}

// Store is the application state. Reads return deep copies; writes are
// persisted in the background, newest document first.
type Store struct {
	mu     sync.RWMutex
	data   models.AppData
	seq    uint64
	closed bool

	now   func() time.Time
	newID func() string

	backend persistence.Backend
	saves   chan saveJob
	done    chan struct{}

	notifyMu sync.Mutex
	written  uint64
	saveErr  error
	wake     chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open loads the document from backend, or starts an empty one and saves it
// when the backend holds nothing.
func Open(ctx context.Context, backend persistence.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		now:     time.Now,
		newID:   uuid.NewString,
		backend: backend,
		saves:   make(chan saveJob, 1),
		done:    make(chan struct{}),
		wake:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	blob, err := backend.Load(ctx)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		s.data = models.NewAppData()
	case err != nil:
		return nil, fmt.Errorf("store: load: %w", err)
	default:
		data, err := decode(blob)
		if err != nil {
			return nil, fmt.Errorf("store: load: %w", err)
		}
		s.data = data
	}

	go s.run()
	if errors.Is(err, persistence.ErrNotFound) {
		s.mu.Lock()
		s.persistLocked()
		s.mu.Unlock()
	}
	return s, nil
}

// decode parses a persisted document. Settings absent from the JSON keep
// their defaults and missing lists become empty.
func decode(blob []byte) (models.AppData, error) {
	data := models.NewAppData()
	if err := json.Unmarshal(blob, &data); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if data.Clients == nil {
		data.Clients = []models.Client{}
	}
	if data.Estimates == nil {
		data.Estimates = []models.Estimate{}
	}
	if data.Quotes == nil {
		data.Quotes = []models.Quote{}
	}
	return data, nil
}

func (s *Store) run() {
	defer close(s.done)
	for job := range s.saves {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.backend.Save(ctx, job.blob)
		cancel()
		if err != nil {
			log.Printf("store: save #%d: %v", job.seq, err)
		}

		s.notifyMu.Lock()
		s.written = job.seq
		s.saveErr = err
		close(s.wake)
		s.wake = make(chan struct{})
		s.notifyMu.Unlock()
	}
}

// persistLocked queues the current document for saving, replacing a queued
// older one. The caller holds s.mu for writing.
func (s *Store) persistLocked() {
	if s.closed {
		return
	}
	blob, err := json.Marshal(s.data)
	if err != nil {
		log.Printf("store: marshal document: %v", err)
		return
	}
	s.seq++
	job := saveJob{seq: s.seq, blob: blob}
	select {
	case s.saves <- job:
	default:
		select {
		case <-s.saves:
		default:
		}
		s.saves <- job
	}
}

// Flush waits until every mutation made before the call has been written and
// returns the error of the latest write.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	target := s.seq
	s.mu.RUnlock()

	for {
		s.notifyMu.Lock()
		if s.written >= target {
			err := s.saveErr
			s.notifyMu.Unlock()
			return err
		}
		wake := s.wake
		s.notifyMu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close flushes pending writes and stops the writer. Later mutations fail
// with ErrClosed.
func (s *Store) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.saves)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

// mutate runs fn under the write lock and persists when it succeeds.
func (s *Store) mutate(fn func(d *models.AppData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := fn(&s.data); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

// clone deep-copies v so callers never share memory with the store.
func clone[T any](v T) T {
	var out T
	if err := deepcopy.Copy(&out, v); err != nil {
		// Only reachable with unsupported types, which the models do not use.
		panic(fmt.Sprintf("store: deep copy: %v", err))
	}
	return out
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data)
}

// ExportJSON returns the document as indented JSON for backups.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.data, "", "  ")
}

// ImportJSON replaces the whole document with a backup.
func (s *Store) ImportJSON(blob []byte) error {
	data, err := decode(blob)
	if err != nil {
		return err
	}
	return s.mutate(func(d *models.AppData) error {
		*d = data
		return nil
	})
}

// Clear resets the document to an empty one with default settings.
func (s *Store) Clear() error {
	return s.mutate(func(d *models.AppData) error {
		*d = models.NewAppData()
		return nil
	})
}
