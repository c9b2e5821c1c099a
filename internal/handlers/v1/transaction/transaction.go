// Package transaction serves the balance, history and money movement requests.
package transaction

import (
	"github.com/carson-networks/bank-server/internal/protocol"
)

// Service is everything the transaction handlers need from the record store.
type Service interface {
	balanceReader
	historyReader
	transactionMaker
	amountTransferrer
}

// RegisterAll binds every transaction handler to router.
func RegisterAll(router protocol.Router, svc Service) {
	NewGetBalanceHandler(svc).Register(router)
	NewGetHistoryHandler(svc).Register(router)
	NewMakeTransactionHandler(svc).Register(router)
	NewTransferAmountHandler(svc).Register(router)
}
