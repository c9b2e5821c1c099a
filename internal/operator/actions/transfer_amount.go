package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

// TransferAmount debits the sender and credits the receiver inside one
// document write. Both records carry the writer's timestamp.
type TransferAmount struct {
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                decimal.Decimal
}

func (t *TransferAmount) Perform(ctx context.Context, writer *storage.Writer) error {
	if !t.Amount.IsPositive() {
		return account.ErrInvalidAmount
	}
	if _, _, err := writer.Account.FindByNumber(t.ReceiverAccountNumber); err != nil {
		writer.Audit("User: " + t.ReceiverAccountNumber + " receiver not found.")
		return account.ErrReceiverNotFound
	}

	if _, err := writer.Account.ApplyTransaction(t.SenderAccountNumber, t.Amount.Neg(), writer.Now()); err != nil {
		auditTransactionFailure(writer, t.SenderAccountNumber, err)
		writer.Audit("Sender transaction failed.")
		return err
	}
	if _, err := writer.Account.ApplyTransaction(t.ReceiverAccountNumber, t.Amount, writer.Now()); err != nil {
		auditTransactionFailure(writer, t.ReceiverAccountNumber, err)
		writer.Audit("Receiver transaction failed.")
		return err
	}

	writer.Audit("Transfer done successful.")
	return nil
}
