package service

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

// AccountService handles login and user administration.
type AccountService struct {
	store documentReader
	op    actionProcessor
	audit logging.Auditor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store documentReader, op actionProcessor, audit logging.Auditor) *AccountService {
	return &AccountService{store: store, op: op, audit: audit}
}

// LogIn checks the password of userName by exact comparison.
func (s *AccountService) LogIn(ctx context.Context, userName, password string) (*LoginResult, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := reader.Accounts.FindByUserName(userName)
	if err != nil {
		s.audit.Log("Incorrect Username.")
		return nil, err
	}
	if acc.Password != password {
		s.audit.Log("Incorrect Password.")
		return nil, account.ErrWrongPassword
	}

	s.audit.Log("User: " + userName + " has logged in successfully.")
	return &LoginResult{
		UserName:      userName,
		AccountNumber: acc.AccountNumber,
		IsAdmin:       acc.IsAdmin,
	}, nil
}

// CreateUser creates a zero-balance account and returns its account number.
func (s *AccountService) CreateUser(ctx context.Context, user User) (string, error) {
	action := &actions.CreateUser{
		UserName: user.UserName,
		Password: user.Password,
		FullName: user.FullName,
		Age:      user.Age,
		IsAdmin:  user.IsAdmin,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return "", err
	}
	return action.AccountNumber, nil
}

func (s *AccountService) UpdateUser(ctx context.Context, update UserUpdate) error {
	return s.op.Process(ctx, &actions.UpdateUser{
		AccountNumber: update.AccountNumber,
		UserName:      update.UserName,
		Password:      update.Password,
		FullName:      update.FullName,
		Age:           update.Age,
		IsAdmin:       update.IsAdmin,
	})
}

func (s *AccountService) DeleteUser(ctx context.Context, accountNumber string) error {
	return s.op.Process(ctx, &actions.DeleteUser{AccountNumber: accountNumber})
}

// ViewAll returns the whole document keyed by username.
func (s *AccountService) ViewAll(ctx context.Context) (account.Document, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := reader.Accounts.List()
	if err != nil {
		s.audit.Log("Database is empty.")
		return nil, err
	}
	s.audit.Log("Return the database content.")
	return doc, nil
}

func (s *AccountService) GetAccountNumber(ctx context.Context, userName string) (string, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return "", err
	}

	acc, err := reader.Accounts.FindByUserName(userName)
	if err != nil {
		s.audit.Log("User: " + userName + " not found.")
		return "", err
	}
	s.audit.Log("Return account number of the user.")
	return acc.AccountNumber, nil
}

// CountAccounts reports how many accounts the document holds.
func (s *AccountService) CountAccounts(ctx context.Context) (int, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	return reader.Accounts.Count(), nil
}
