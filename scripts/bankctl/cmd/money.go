package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-server/internal/protocol"
)

var balanceAccount string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if balanceAccount == "" {
			return fmt.Errorf("--account is required")
		}
		req := &protocol.Request{
			RequestID:     protocol.GetBalance,
			AccountNumber: protocol.Text(balanceAccount),
		}
		return send(cmd, req, printBalance)
	},
}

var (
	historyAccount string
	historyCount   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent transactions of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyAccount == "" {
			return fmt.Errorf("--account is required")
		}
		req := &protocol.Request{
			RequestID:     protocol.GetHistory,
			AccountNumber: protocol.Text(historyAccount),
			Count:         protocol.Text(fmt.Sprint(historyCount)),
		}
		return send(cmd, req, func(w io.Writer, resp *protocol.Response) {
			rows := make([][]string, len(resp.Transactions))
			for i, tx := range resp.Transactions {
				rows[i] = []string{tx.Date, tx.Time, string(tx.Type), tx.Amount.String()}
			}
			printTable(w, []string{"DATE", "TIME", "TYPE", "AMOUNT"}, rows)
		})
	},
}

var (
	transactionAccount string
	transactionAmount  string
)

var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Deposit (positive amount) or withdraw (negative amount)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if transactionAccount == "" || transactionAmount == "" {
			return fmt.Errorf("--account and --amount are required")
		}
		req := &protocol.Request{
			RequestID:     protocol.MakeTransaction,
			AccountNumber: protocol.Text(transactionAccount),
			Amount:        protocol.Text(transactionAmount),
		}
		return send(cmd, req, printBalance)
	},
}

var (
	transferFrom   string
	transferTo     string
	transferAmount string
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move money between two accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if transferFrom == "" || transferTo == "" || transferAmount == "" {
			return fmt.Errorf("--from, --to and --amount are required")
		}
		req := &protocol.Request{
			RequestID:             protocol.TransferAmount,
			SenderAccountNumber:   protocol.Text(transferFrom),
			ReceiverAccountNumber: protocol.Text(transferTo),
			Amount:                protocol.Text(transferAmount),
		}
		return send(cmd, req, printDone)
	},
}

func printBalance(w io.Writer, resp *protocol.Response) {
	if resp.AccountBalance == nil {
		fmt.Fprintln(w, "0")
		return
	}
	fmt.Fprintln(w, resp.AccountBalance.String())
}

func init() {
	balanceCmd.Flags().StringVar(&balanceAccount, "account", "", "Account number (required)")

	historyCmd.Flags().StringVar(&historyAccount, "account", "", "Account number (required)")
	historyCmd.Flags().IntVar(&historyCount, "count", 0, "Number of transactions; 0 shows all")

	transactionCmd.Flags().StringVar(&transactionAccount, "account", "", "Account number (required)")
	transactionCmd.Flags().StringVar(&transactionAmount, "amount", "", "Signed amount (required)")

	transferCmd.Flags().StringVar(&transferFrom, "from", "", "Sender account number (required)")
	transferCmd.Flags().StringVar(&transferTo, "to", "", "Receiver account number (required)")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "Amount (required)")

	rootCmd.AddCommand(balanceCmd, historyCmd, transactionCmd, transferCmd)
}
