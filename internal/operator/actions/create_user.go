package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

type CreateUser struct {
	UserName string
	Password string
	FullName string
	Age      string
	IsAdmin  bool

	// AccountNumber is set once Perform succeeds.
	AccountNumber string
}

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	number, err := writer.Account.Create(&account.AccountCreate{
		UserName: c.UserName,
		Password: c.Password,
		FullName: c.FullName,
		Age:      c.Age,
		IsAdmin:  c.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, account.ErrUserNameTaken) {
			writer.Audit("Username already taken.")
		}
		return err
	}

	c.AccountNumber = number
	writer.Audit("User: " + c.UserName + " created successfully.")
	return nil
}
