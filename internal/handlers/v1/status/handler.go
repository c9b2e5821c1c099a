package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/bank-server/internal/logging"
)

// accountCounter reports how many accounts the document holds.
type accountCounter interface {
	CountAccounts(ctx context.Context) (int, error)
}

type Handler struct {
	Accounts accountCounter
}

func NewHandler(accounts accountCounter) Handler {
	return Handler{Accounts: accounts}
}

type statusBody struct {
	Status   string `json:"status"`
	Accounts int    `json:"accounts"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	count, err := h.Accounts.CountAccounts(req.Context())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return err
	}
	logData.AddData("accounts", count)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(statusBody{Status: "ok", Accounts: count})
}
