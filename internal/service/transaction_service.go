package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage/account"
	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

// TransactionService handles balances, history and money movement.
type TransactionService struct {
	store documentReader
	op    actionProcessor
	audit logging.Auditor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store documentReader, op actionProcessor, audit logging.Auditor) *TransactionService {
	return &TransactionService{store: store, op: op, audit: audit}
}

func (s *TransactionService) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	_, acc, err := reader.Accounts.FindByNumber(accountNumber)
	if err != nil {
		s.audit.Log("User: " + accountNumber + " not found.")
		return decimal.Zero, err
	}
	s.audit.Log("Return balance of the user.")
	return acc.AccountBalance, nil
}

// GetHistory returns up to count transactions, most recent first. A
// non-positive count returns the whole history.
func (s *TransactionService) GetHistory(ctx context.Context, accountNumber string, count int) ([]transaction.Transaction, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	_, acc, err := reader.Accounts.FindByNumber(accountNumber)
	if err != nil {
		s.audit.Log("User: " + accountNumber + " not found.")
		return nil, err
	}
	if len(acc.TransactionHistory) == 0 {
		s.audit.Log("No transactions history of the user found.")
		return nil, account.ErrNoHistory
	}

	s.audit.Log("Return transactions history of the user.")
	return transaction.Latest(acc.TransactionHistory, count), nil
}

// MakeTransaction applies a signed amount and returns the new balance.
func (s *TransactionService) MakeTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	action := &actions.MakeTransaction{
		AccountNumber: accountNumber,
		Amount:        amount,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return decimal.Zero, err
	}
	return action.Balance, nil
}

// Transfer moves amount from sender to receiver atomically.
func (s *TransactionService) Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) error {
	return s.op.Process(ctx, &actions.TransferAmount{
		SenderAccountNumber:   sender,
		ReceiverAccountNumber: receiver,
		Amount:                amount,
	})
}
