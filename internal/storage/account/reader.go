package account

import (
	"sort"
)

type Reader struct {
	doc Document
}

func NewReader(doc Document) *Reader {
	return &Reader{doc: doc}
}

// FindByUserName returns the account owned by name.
func (r *Reader) FindByUserName(name string) (*Account, error) {
	acc, ok := r.doc[name]
	if !ok {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

// FindByNumber scans the document for the account number and returns the
// owning username with the account.
func (r *Reader) FindByNumber(number string) (string, *Account, error) {
	for name, acc := range r.doc {
		if acc.AccountNumber == number {
			return name, acc, nil
		}
	}
	return "", nil, ErrAccountNotFound
}

// List returns the whole document.
func (r *Reader) List() (Document, error) {
	if len(r.doc) == 0 {
		return nil, ErrStoreEmpty
	}
	return r.doc, nil
}

// UserNames returns the document keys in sorted order.
func (r *Reader) UserNames() []string {
	names := make([]string, 0, len(r.doc))
	for name := range r.doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Reader) Count() int {
	return len(r.doc)
}

func (r *Reader) numberInUse(number string) bool {
	_, _, err := r.FindByNumber(number)
	return err == nil
}
