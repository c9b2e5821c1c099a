package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
)

type userDeleter interface {
	DeleteUser(ctx context.Context, accountNumber string) error
}

// DeleteUserHandler handles RequestID 3.
type DeleteUserHandler struct {
	AccountService userDeleter
}

func NewDeleteUserHandler(svc userDeleter) *DeleteUserHandler {
	return &DeleteUserHandler{AccountService: svc}
}

func (h *DeleteUserHandler) Register(router protocol.Router) {
	router.Register(protocol.DeleteUser, h)
}

func (h *DeleteUserHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountNumber", req.AccountNumber.String())
	}

	if err := h.AccountService.DeleteUser(ctx, req.AccountNumber.String()); err != nil {
		return nil, err
	}
	return &protocol.Response{}, nil
}
