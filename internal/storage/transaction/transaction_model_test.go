package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func makeHistory(amounts ...string) []Transaction {
	history := make([]Transaction, len(amounts))
	for i, amount := range amounts {
		history[i] = Transaction{Amount: decimal.RequireFromString(amount)}
	}
	return history
}

func TestNew_Deposit(t *testing.T) {
	at := time.Date(2026, 10, 17, 14, 3, 11, 0, time.Local)

	tx := New(TransactionCreate{Amount: decimal.RequireFromString("100"), At: at})

	assert.Equal(t, "17-10-2026", tx.Date)
	assert.Equal(t, "14:03:11", tx.Time)
	assert.Equal(t, TransactionTypeDeposit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
}

func TestNew_Withdraw(t *testing.T) {
	tx := New(TransactionCreate{Amount: decimal.RequireFromString("-12.50"), At: time.Now()})

	assert.Equal(t, TransactionTypeWithdraw, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-12.5")))
}

func TestLatest_MostRecentFirst(t *testing.T) {
	history := makeHistory("1", "2", "3", "4")

	latest := Latest(history, 2)

	assert.Len(t, latest, 2)
	assert.Equal(t, "4", latest[0].Amount.String())
	assert.Equal(t, "3", latest[1].Amount.String())
}

func TestLatest_TruncatesToHistory(t *testing.T) {
	latest := Latest(makeHistory("1", "2"), 10)

	assert.Len(t, latest, 2)
	assert.Equal(t, "2", latest[0].Amount.String())
}

func TestLatest_NonPositiveCountReturnsAll(t *testing.T) {
	history := makeHistory("1", "2", "3")

	assert.Len(t, Latest(history, 0), 3)
	assert.Len(t, Latest(history, -5), 3)
	assert.Equal(t, "1", Latest(history, 0)[2].Amount.String())
}

func TestLatest_DoesNotModifyHistory(t *testing.T) {
	history := makeHistory("1", "2", "3")

	_ = Latest(history, 3)

	assert.Equal(t, "1", history[0].Amount.String())
	assert.Equal(t, "3", history[2].Amount.String())
}
