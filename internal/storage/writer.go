package storage

import (
	"errors"
	"time"

	"github.com/carson-networks/bank-server/internal/storage/account"
)

var ErrWriterClosed = errors.New("writer already committed or rolled back")

// Writer is one read-modify-write of the document. Mutations apply to an
// in-memory copy; Commit persists the copy and Rollback discards it. Either
// call releases the global lock.
type Writer struct {
	store   *Storage
	doc     account.Document
	now     time.Time
	closed  bool
	Account *account.Writer
}

func newWriter(s *Storage, doc account.Document) *Writer {
	return &Writer{
		store:   s,
		doc:     doc,
		now:     s.now().Truncate(time.Second),
		Account: account.NewWriter(doc, s.numbers),
	}
}

// Now is the timestamp for every record written through this writer.
func (w *Writer) Now() time.Time {
	return w.now
}

func (w *Writer) Audit(message string) {
	w.store.audit.Log(message)
}

func (w *Writer) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	defer w.store.mu.Unlock()
	return w.store.save(w.doc)
}

func (w *Writer) Rollback() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.store.mu.Unlock()
	return nil
}
