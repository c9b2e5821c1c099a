package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/service"
)

type userUpdater interface {
	UpdateUser(ctx context.Context, update service.UserUpdate) error
}

// UpdateUserHandler handles RequestID 2.
type UpdateUserHandler struct {
	AccountService userUpdater
}

func NewUpdateUserHandler(svc userUpdater) *UpdateUserHandler {
	return &UpdateUserHandler{AccountService: svc}
}

func (h *UpdateUserHandler) Register(router protocol.Router) {
	router.Register(protocol.UpdateUser, h)
}

func (h *UpdateUserHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountNumber", req.AccountNumber.String())
	}

	err := h.AccountService.UpdateUser(ctx, service.UserUpdate{
		AccountNumber: req.AccountNumber.String(),
		UserName:      req.UserName,
		Password:      req.Password,
		FullName:      req.FullName,
		Age:           req.Age.String(),
		IsAdmin:       req.IsAdmin,
	})
	if err != nil {
		return nil, err
	}
	return &protocol.Response{}, nil
}
