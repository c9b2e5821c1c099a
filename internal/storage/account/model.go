package account

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

const (
	MinAccountNumber = 1
	MaxAccountNumber = 999
)

// Account represents one entry of the store document. The owning username is
// the document key and is not repeated inside the record.
type Account struct {
	FullName           string                    `json:"FullName"`
	AccountNumber      string                    `json:"AccountNumber"`
	Age                string                    `json:"Age"`
	Password           string                    `json:"Password"`
	IsAdmin            bool                      `json:"IsAdmin"`
	AccountBalance     decimal.Decimal           `json:"AccountBalance"`
	TransactionHistory []transaction.Transaction `json:"TransactionHistory"`
}

// Document maps username to account and is persisted as a single JSON object.
type Document map[string]*Account

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserName string
	Password string
	FullName string
	Age      string
	IsAdmin  bool
}

// AccountUpdate carries the optional changes for an existing account. Empty
// strings leave the field unchanged; IsAdmin is always applied.
type AccountUpdate struct {
	AccountNumber string
	UserName      string
	Password      string
	FullName      string
	Age           string
	IsAdmin       bool
}
