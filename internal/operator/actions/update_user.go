package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

type UpdateUser struct {
	AccountNumber string
	UserName      string
	Password      string
	FullName      string
	Age           string
	IsAdmin       bool
}

func (u *UpdateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	err := writer.Account.Update(&account.AccountUpdate{
		AccountNumber: u.AccountNumber,
		UserName:      u.UserName,
		Password:      u.Password,
		FullName:      u.FullName,
		Age:           u.Age,
		IsAdmin:       u.IsAdmin,
	})
	switch {
	case errors.Is(err, account.ErrRenameTaken):
		writer.Audit("User: " + u.UserName + " already exists.")
		return err
	case err != nil:
		writer.Audit("User: " + u.AccountNumber + " not found.")
		return err
	}

	writer.Audit("User: " + u.AccountNumber + " updated successfully.")
	return nil
}
