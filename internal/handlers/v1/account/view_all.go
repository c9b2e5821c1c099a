package account

import (
	"context"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

// accountLister is the interface for reading the whole document.
type accountLister interface {
	ViewAll(ctx context.Context) (account.Document, error)
}

// ViewAllHandler handles RequestID 4.
type ViewAllHandler struct {
	AccountService accountLister
}

func NewViewAllHandler(svc accountLister) *ViewAllHandler {
	return &ViewAllHandler{AccountService: svc}
}

func (h *ViewAllHandler) Register(router protocol.Router) {
	router.Register(protocol.ViewAll, h)
}

func (h *ViewAllHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	logData := logging.GetLogData(ctx)

	doc, err := h.AccountService.ViewAll(ctx)
	if err != nil {
		return nil, err
	}

	if logData != nil {
		logData.AddData("accounts", len(doc))
	}
	return &protocol.Response{DataBase: doc}, nil
}
