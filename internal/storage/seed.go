package storage

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/account"
	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

// seedDocument is written when no database file exists at startup.
func seedDocument() account.Document {
	return account.Document{
		"Ahmed25": {
			FullName:           "Ahmed Aseel",
			AccountNumber:      "100",
			Age:                "24",
			Password:           "252000",
			IsAdmin:            true,
			AccountBalance:     decimal.Zero,
			TransactionHistory: []transaction.Transaction{},
		},
		"Shimaa98": {
			FullName:           "Shimaa Aseel",
			AccountNumber:      "200",
			Age:                "26",
			Password:           "891998",
			IsAdmin:            false,
			AccountBalance:     decimal.Zero,
			TransactionHistory: []transaction.Transaction{},
		},
	}
}
