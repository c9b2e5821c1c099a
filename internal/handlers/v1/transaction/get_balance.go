package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/protocol"
)

type balanceReader interface {
	GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
}

// GetBalanceHandler handles RequestID 6.
type GetBalanceHandler struct {
	TransactionService balanceReader
}

func NewGetBalanceHandler(svc balanceReader) *GetBalanceHandler {
	return &GetBalanceHandler{TransactionService: svc}
}

func (h *GetBalanceHandler) Register(router protocol.Router) {
	router.Register(protocol.GetBalance, h)
}

func (h *GetBalanceHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	balance, err := h.TransactionService.GetBalance(ctx, req.AccountNumber.String())
	if err != nil {
		return nil, err
	}
	return &protocol.Response{AccountBalance: &balance}, nil
}
