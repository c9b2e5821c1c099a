package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/account"
	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

// Text is a scalar sent as a JSON string. Numbers are accepted on input so
// clients that send AccountNumber or Amount unquoted still work.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrBadValue, data)
		}
		*t = Text(n.String())
		return nil
	}
}

func (t Text) String() string {
	return string(t)
}

// Decimal parses the value as a decimal amount.
func (t Text) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(t))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrBadValue, string(t))
	}
	return d, nil
}

// Int parses the value as an integer. An empty value is zero.
func (t Text) Int() (int, error) {
	if t == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: count %q", ErrBadValue, string(t))
	}
	return n, nil
}

// Request is the union of every request payload. Only the fields relevant to
// RequestID are read.
type Request struct {
	RequestID             RequestID `json:"RequestID"`
	UserName              string    `json:"UserName,omitempty"`
	Password              string    `json:"Password,omitempty"`
	FullName              string    `json:"FullName,omitempty"`
	Age                   Text      `json:"Age,omitempty"`
	IsAdmin               bool      `json:"IsAdmin,omitempty"`
	AccountNumber         Text      `json:"AccountNumber,omitempty"`
	Count                 Text      `json:"Count,omitempty"`
	Amount                Text      `json:"Amount,omitempty"`
	SenderAccountNumber   Text      `json:"SenderAccountNumber,omitempty"`
	ReceiverAccountNumber Text      `json:"ReceiverAccountNumber,omitempty"`
	Hash                  string    `json:"Hash,omitempty"`
}

// Response is the union of every response payload.
type Response struct {
	ResponseID     RequestID                 `json:"ResponseID"`
	State          bool                      `json:"State"`
	Reason         Reason                    `json:"Reason,omitempty"`
	UserName       string                    `json:"UserName,omitempty"`
	AccountNumber  string                    `json:"AccountNumber,omitempty"`
	IsAdmin        *bool                     `json:"IsAdmin,omitempty"`
	AccountBalance *decimal.Decimal          `json:"AccountBalance,omitempty"`
	Transactions   []transaction.Transaction `json:"Transactions,omitempty"`
	DataBase       account.Document          `json:"DataBase,omitempty"`
	Hash           string                    `json:"Hash,omitempty"`
}

// Success builds an empty successful response for id.
func Success(id RequestID) *Response {
	return &Response{ResponseID: id, State: true}
}

// Failure builds a failed response for id classified from err.
func Failure(id RequestID, err error) *Response {
	return &Response{ResponseID: id, Reason: ReasonFor(err)}
}
