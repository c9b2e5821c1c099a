package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
)

type amountTransferrer interface {
	Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) error
}

// TransferAmountHandler handles RequestID 9.
type TransferAmountHandler struct {
	TransactionService amountTransferrer
}

func NewTransferAmountHandler(svc amountTransferrer) *TransferAmountHandler {
	return &TransferAmountHandler{TransactionService: svc}
}

func (h *TransferAmountHandler) Register(router protocol.Router) {
	router.Register(protocol.TransferAmount, h)
}

func (h *TransferAmountHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)

	amount, err := req.Amount.Decimal()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("sender", req.SenderAccountNumber.String())
		logData.AddData("receiver", req.ReceiverAccountNumber.String())
		stopTimer = logData.AddTiming("transferMs")
	}
	err = h.TransactionService.Transfer(ctx, req.SenderAccountNumber.String(), req.ReceiverAccountNumber.String(), amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, err
	}
	return &protocol.Response{}, nil
}
