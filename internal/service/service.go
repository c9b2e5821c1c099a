package service

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

// documentReader loads a consistent snapshot of the store document.
type documentReader interface {
	Read(ctx context.Context) (*storage.Reader, error)
}

// actionProcessor runs a mutating action inside one storage write.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
}

// NewService wires both services to the same store and operator.
func NewService(store documentReader, op actionProcessor, audit logging.Auditor) *Service {
	return &Service{
		Account:     NewAccountService(store, op, audit),
		Transaction: NewTransactionService(store, op, audit),
	}
}
