package actions

import (
	"context"

	"github.com/carson-networks/bank-server/internal/storage"
)

// IAction is one mutation of the store document. Perform runs with the
// global lock held; returning an error discards everything it changed.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
