package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/service"
)

// userCreator is the interface for creating accounts.
type userCreator interface {
	CreateUser(ctx context.Context, user service.User) (string, error)
}

// CreateUserHandler handles RequestID 1.
type CreateUserHandler struct {
	AccountService userCreator
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{AccountService: svc}
}

func (h *CreateUserHandler) Register(router protocol.Router) {
	router.Register(protocol.CreateUser, h)
}

func (h *CreateUserHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createUserMs")
	}
	number, err := h.AccountService.CreateUser(ctx, service.User{
		UserName: req.UserName,
		Password: req.Password,
		FullName: req.FullName,
		Age:      req.Age.String(),
		IsAdmin:  req.IsAdmin,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, err
	}

	if logData != nil {
		logData.AddData("accountNumber", number)
	}
	return &protocol.Response{AccountNumber: number}, nil
}
