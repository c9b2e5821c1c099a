package protocol

import (
	"errors"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

// Reason is the negative failure code carried by a response with State=false.
type Reason int

const (
	ReasonNone           Reason = 0
	ReasonNotFound       Reason = -1
	ReasonRejected       Reason = -2
	ReasonParse          Reason = -3
	ReasonFileOpen       Reason = -4
	ReasonFileMissing    Reason = -5
	ReasonIntegrity      Reason = -6
	ReasonUnknownRequest Reason = -7
)

var (
	ErrIntegrity      = errors.New("integrity check failed")
	ErrUnknownRequest = errors.New("unknown request id")
	ErrBadValue       = errors.New("malformed request value")
)

// ReasonFor classifies err into the wire taxonomy. Errors outside the known
// set are reported as a file failure.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, account.ErrReceiverNotFound),
		errors.Is(err, account.ErrUserNameTaken),
		errors.Is(err, account.ErrStoreEmpty),
		errors.Is(err, account.ErrAccountNumbersExhausted):
		return ReasonNotFound
	case errors.Is(err, account.ErrWrongPassword),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrNoHistory),
		errors.Is(err, account.ErrRenameTaken):
		return ReasonRejected
	case errors.Is(err, storage.ErrParse),
		errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, ErrBadValue):
		return ReasonParse
	case errors.Is(err, storage.ErrFileMissing):
		return ReasonFileMissing
	case errors.Is(err, ErrIntegrity):
		return ReasonIntegrity
	case errors.Is(err, ErrUnknownRequest):
		return ReasonUnknownRequest
	default:
		return ReasonFileOpen
	}
}
