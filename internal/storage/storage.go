package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

// Storage owns the database file. A single mutex serializes every read and
// every read-modify-write of the document, so at most one store operation
// runs at any instant.
type Storage struct {
	path    string
	mu      sync.Mutex
	numbers account.NumberSource
	now     func() time.Time
	audit   logging.Auditor
}

type Option func(*Storage)

// WithClock overrides the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

// WithNumberSource overrides the account number generator.
func WithNumberSource(numbers account.NumberSource) Option {
	return func(s *Storage) { s.numbers = numbers }
}

func WithAuditor(audit logging.Auditor) Option {
	return func(s *Storage) { s.audit = audit }
}

// NewStorage opens the database file, seeding it when it does not exist.
func NewStorage(env *config.Config, opts ...Option) (*Storage, error) {
	s := &Storage{
		path: env.Storage.Path,
		numbers: func() int {
			return account.MinAccountNumber + rand.Intn(account.MaxAccountNumber-account.MinAccountNumber+1)
		},
		now:   time.Now,
		audit: logging.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrFileOpen, err)
		}
	}
	if err := saveDocument(s.path, seedDocument()); err != nil {
		return err
	}
	s.audit.Log("Database file created with seed accounts.")
	return nil
}

// Path returns the location of the database file.
func (s *Storage) Path() string {
	return s.path
}

// Read loads the current document under the global lock and returns a reader
// over that private copy.
func (s *Storage) Read(ctx context.Context) (*Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return NewReader(doc), nil
}

// Write takes the global lock and loads the document for modification. The
// lock is held until Commit or Rollback is called on the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	doc, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return newWriter(s, doc), nil
}

func (s *Storage) load() (account.Document, error) {
	doc, err := loadDocument(s.path)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileMissing):
			s.audit.Log("Database file doesn't exist.")
		case errors.Is(err, ErrParse):
			s.audit.Log("Failed to parse JSON.")
		default:
			s.audit.Log("Failed to open database file for reading.")
		}
		return nil, err
	}
	return doc, nil
}

func (s *Storage) save(doc account.Document) error {
	if err := saveDocument(s.path, doc); err != nil {
		s.audit.Log("Failed to open file for writing.")
		return err
	}
	return nil
}
