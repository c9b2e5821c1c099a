package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
)

// transactionMaker is the interface for deposits and withdrawals.
type transactionMaker interface {
	MakeTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error)
}

// MakeTransactionHandler handles RequestID 8.
type MakeTransactionHandler struct {
	TransactionService transactionMaker
}

// NewMakeTransactionHandler creates a new MakeTransactionHandler.
func NewMakeTransactionHandler(svc transactionMaker) *MakeTransactionHandler {
	return &MakeTransactionHandler{TransactionService: svc}
}

func (h *MakeTransactionHandler) Register(router protocol.Router) {
	router.Register(protocol.MakeTransaction, h)
}

func (h *MakeTransactionHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)

	amount, err := req.Amount.Decimal()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("accountNumber", req.AccountNumber.String())
		stopTimer = logData.AddTiming("makeTransactionMs")
	}
	balance, err := h.TransactionService.MakeTransaction(ctx, req.AccountNumber.String(), amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, err
	}
	return &protocol.Response{AccountBalance: &balance}, nil
}
