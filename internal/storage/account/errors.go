package account

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrReceiverNotFound        = errors.New("receiver account not found")
	ErrWrongPassword           = errors.New("wrong password")
	ErrUserNameTaken           = errors.New("username already taken")
	ErrRenameTaken             = errors.New("target username already taken")
	ErrAccountNumbersExhausted = errors.New("no free account numbers")
	ErrStoreEmpty              = errors.New("store is empty")
	ErrNoHistory               = errors.New("account has no transactions")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInvalidAmount           = errors.New("invalid amount")
)
