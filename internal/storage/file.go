package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/carson-networks/bank-server/internal/storage/account"
	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

const documentIndent = "    "

func loadDocument(path string) (account.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	var doc account.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc == nil {
		doc = account.Document{}
	}
	for name, acc := range doc {
		if acc == nil {
			return nil, fmt.Errorf("%w: account %q is null", ErrParse, name)
		}
		if acc.TransactionHistory == nil {
			acc.TransactionHistory = []transaction.Transaction{}
		}
	}
	return doc, nil
}

// saveDocument replaces the file wholesale: the document is written to a temp
// file in the same directory, synced, then renamed over the target.
func saveDocument(path string, doc account.Document) error {
	data, err := json.MarshalIndent(doc, "", documentIndent)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	return nil
}
