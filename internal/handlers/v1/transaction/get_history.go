package transaction

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/storage/transaction"
)

// historyReader is the interface for reading recent transactions.
type historyReader interface {
	GetHistory(ctx context.Context, accountNumber string, count int) ([]transaction.Transaction, error)
}

// GetHistoryHandler handles RequestID 7.
type GetHistoryHandler struct {
	TransactionService historyReader
}

// NewGetHistoryHandler creates a new GetHistoryHandler.
func NewGetHistoryHandler(svc historyReader) *GetHistoryHandler {
	return &GetHistoryHandler{TransactionService: svc}
}

func (h *GetHistoryHandler) Register(router protocol.Router) {
	router.Register(protocol.GetHistory, h)
}

func (h *GetHistoryHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)

	// An unreadable count means the whole history, like an absent one.
	count, err := req.Count.Int()
	if err != nil {
		count = 0
		if logData != nil {
			logData.AddData("badCount", req.Count.String())
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getHistoryMs")
	}
	history, err := h.TransactionService.GetHistory(ctx, req.AccountNumber.String(), count)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, err
	}

	if logData != nil {
		logData.AddData("transactions", len(history))
	}
	return &protocol.Response{Transactions: history}, nil
}
