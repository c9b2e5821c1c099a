package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/protocol"
)

type accountNumberFinder interface {
	GetAccountNumber(ctx context.Context, userName string) (string, error)
}

// GetAccountNumberHandler handles RequestID 5.
type GetAccountNumberHandler struct {
	AccountService accountNumberFinder
}

func NewGetAccountNumberHandler(svc accountNumberFinder) *GetAccountNumberHandler {
	return &GetAccountNumberHandler{AccountService: svc}
}

func (h *GetAccountNumberHandler) Register(router protocol.Router) {
	router.Register(protocol.GetAccountNumber, h)
}

func (h *GetAccountNumberHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	number, err := h.AccountService.GetAccountNumber(ctx, req.UserName)
	if err != nil {
		return nil, err
	}
	return &protocol.Response{AccountNumber: number}, nil
}
