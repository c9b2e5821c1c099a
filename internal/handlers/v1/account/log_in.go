package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/service"
)

// logInService is the interface for checking credentials.
type logInService interface {
	LogIn(ctx context.Context, userName, password string) (*service.LoginResult, error)
}

// LogInHandler handles RequestID 0.
type LogInHandler struct {
	AccountService logInService
}

// NewLogInHandler creates a new LogInHandler.
func NewLogInHandler(svc logInService) *LogInHandler {
	return &LogInHandler{AccountService: svc}
}

func (h *LogInHandler) Register(router protocol.Router) {
	router.Register(protocol.LogIn, h)
}

func (h *LogInHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("userName", req.UserName)
	}

	result, err := h.AccountService.LogIn(ctx, req.UserName, req.Password)
	if err != nil {
		return nil, err
	}

	isAdmin := result.IsAdmin
	return &protocol.Response{
		UserName:      result.UserName,
		AccountNumber: result.AccountNumber,
		IsAdmin:       &isAdmin,
	}, nil
}
