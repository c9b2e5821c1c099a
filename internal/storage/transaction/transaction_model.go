package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04:05"
)

// TransactionType is the direction of a balance change.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "Deposit"
	TransactionTypeWithdraw TransactionType = "Withdraw"
)

// Transaction represents one committed balance change. Records are appended
// to an account's history and never edited afterwards.
type Transaction struct {
	Date   string          `json:"Date"`
	Time   string          `json:"Time"`
	Type   TransactionType `json:"Type"`
	Amount decimal.Decimal `json:"Amount"`
}

// TransactionCreate is the input for recording a balance change.
type TransactionCreate struct {
	Amount decimal.Decimal
	At     time.Time // local wall clock, truncated to seconds
}

// New builds the record for a signed amount at the given instant.
func New(create TransactionCreate) Transaction {
	at := create.At.Local()
	kind := TransactionTypeDeposit
	if create.Amount.IsNegative() {
		kind = TransactionTypeWithdraw
	}
	return Transaction{
		Date:   at.Format(DateLayout),
		Time:   at.Format(TimeLayout),
		Type:   kind,
		Amount: create.Amount,
	}
}

// Latest returns up to count records, most recent first. A non-positive
// count returns the whole history.
func Latest(history []Transaction, count int) []Transaction {
	if count <= 0 || count > len(history) {
		count = len(history)
	}
	result := make([]Transaction, 0, count)
	for i := len(history) - 1; i >= 0 && len(result) < count; i-- {
		result = append(result, history[i])
	}
	return result
}
