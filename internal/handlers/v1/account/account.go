// Package account serves the login and user administration requests.
package account

import (
	"github.com/carson-networks/bank-server/internal/protocol"
)

// Service is everything the account handlers need from the record store.
type Service interface {
	logInService
	userCreator
	userUpdater
	userDeleter
	accountLister
	accountNumberFinder
}

// RegisterAll binds every account handler to router.
func RegisterAll(router protocol.Router, svc Service) {
	NewLogInHandler(svc).Register(router)
	NewCreateUserHandler(svc).Register(router)
	NewUpdateUserHandler(svc).Register(router)
	NewDeleteUserHandler(svc).Register(router)
	NewViewAllHandler(svc).Register(router)
	NewGetAccountNumberHandler(svc).Register(router)
}
