package storage

import (
	"github.com/carson-networks/bank-server/internal/storage/account"
)

type Reader struct {
	Accounts *account.Reader
}

func NewReader(doc account.Document) *Reader {
	return &Reader{
		Accounts: account.NewReader(doc),
	}
}
