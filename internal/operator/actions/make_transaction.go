package actions

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

type MakeTransaction struct {
	AccountNumber string
	Amount        decimal.Decimal

	// Balance is the committed balance once Perform succeeds.
	Balance decimal.Decimal
}

func (t *MakeTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.ApplyTransaction(t.AccountNumber, t.Amount, writer.Now())
	if err != nil {
		auditTransactionFailure(writer, t.AccountNumber, err)
		return err
	}

	t.Balance = acc.AccountBalance
	writer.Audit("Transaction done successful.")
	return nil
}

func auditTransactionFailure(writer *storage.Writer, number string, err error) {
	switch {
	case errors.Is(err, account.ErrInsufficientFunds):
		writer.Audit("Insufficient funds.")
	case errors.Is(err, account.ErrAccountNotFound):
		writer.Audit("User: " + number + " not found.")
	default:
		writer.Audit("Transaction rejected: " + err.Error())
	}
}
