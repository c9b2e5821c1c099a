package account

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

// NumberSource returns a candidate account number in [MinAccountNumber, MaxAccountNumber].
type NumberSource func() int

type Writer struct {
	numbers NumberSource
	Reader
}

func NewWriter(doc Document, numbers NumberSource) *Writer {
	return &Writer{
		numbers: numbers,
		Reader: Reader{
			doc: doc,
		},
	}
}

// Create inserts a new zero-balance account and returns its account number.
func (w *Writer) Create(create *AccountCreate) (string, error) {
	if _, exists := w.doc[create.UserName]; exists {
		return "", ErrUserNameTaken
	}
	if len(w.doc) >= MaxAccountNumber-MinAccountNumber+1 {
		return "", ErrAccountNumbersExhausted
	}

	var number string
	for {
		number = strconv.Itoa(w.numbers())
		if !w.numberInUse(number) {
			break
		}
	}

	w.doc[create.UserName] = &Account{
		FullName:           create.FullName,
		AccountNumber:      number,
		Age:                create.Age,
		Password:           create.Password,
		IsAdmin:            create.IsAdmin,
		AccountBalance:     decimal.Zero,
		TransactionHistory: []transaction.Transaction{},
	}
	return number, nil
}

func (w *Writer) Update(update *AccountUpdate) error {
	name, acc, err := w.FindByNumber(update.AccountNumber)
	if err != nil {
		return err
	}

	if update.UserName != "" && update.UserName != name {
		if _, taken := w.doc[update.UserName]; taken {
			return ErrRenameTaken
		}
	}

	acc.IsAdmin = update.IsAdmin
	if update.FullName != "" {
		acc.FullName = update.FullName
	}
	if update.Password != "" {
		acc.Password = update.Password
	}
	if update.Age != "" {
		acc.Age = update.Age
	}

	if update.UserName != "" && update.UserName != name {
		delete(w.doc, name)
		w.doc[update.UserName] = acc
	}
	return nil
}

func (w *Writer) Delete(number string) error {
	name, _, err := w.FindByNumber(number)
	if err != nil {
		return err
	}
	delete(w.doc, name)
	return nil
}

// ApplyTransaction adds a signed amount to the balance and records it. The
// account is left untouched when the result would be negative.
func (w *Writer) ApplyTransaction(number string, amount decimal.Decimal, at time.Time) (*Account, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	_, acc, err := w.FindByNumber(number)
	if err != nil {
		return nil, err
	}

	newBalance := acc.AccountBalance.Add(amount)
	if newBalance.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	acc.AccountBalance = newBalance
	acc.TransactionHistory = append(acc.TransactionHistory, transaction.New(transaction.TransactionCreate{
		Amount: amount,
		At:     at,
	}))
	return acc, nil
}
