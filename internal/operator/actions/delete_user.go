package actions

import (
	"context"

	"github.com/carson-networks/bank-server/internal/storage"
)

type DeleteUser struct {
	AccountNumber string
}

func (d *DeleteUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Account.Delete(d.AccountNumber); err != nil {
		writer.Audit("User: " + d.AccountNumber + " not found.")
		return err
	}

	writer.Audit("User: " + d.AccountNumber + " deleted successfully.")
	return nil
}
