// Package cmd contains all CLI commands for bankctl.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-server/internal/client"
	"github.com/carson-networks/bank-server/internal/protocol"
)

var (
	// Global flags
	serverAddr string
	output     string
	timeout    time.Duration
)

// send dials the server, performs one request and prints the response.
func send(cmd *cobra.Command, req *protocol.Request, table func(w io.Writer, resp *protocol.Response)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	c, err := client.Dial(ctx, serverAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	resp, err := c.Do(ctx, req)
	var rejected *client.ErrRejected
	if err != nil && !errors.As(err, &rejected) {
		return err
	}

	w := cmd.OutOrStdout()
	if output == "json" {
		if perr := printJSON(w, resp); perr != nil {
			return perr
		}
		return err
	}
	if rejected != nil {
		return fmt.Errorf("%s failed: reason %d (%s)", rejected.RequestID, rejected.Reason, describeReason(rejected.Reason))
	}
	table(w, resp)
	return nil
}

func describeReason(reason protocol.Reason) string {
	switch reason {
	case protocol.ReasonNotFound:
		return "not found or invalid"
	case protocol.ReasonRejected:
		return "rejected"
	case protocol.ReasonParse:
		return "parse failure"
	case protocol.ReasonFileOpen:
		return "database unavailable"
	case protocol.ReasonFileMissing:
		return "database missing"
	case protocol.ReasonIntegrity:
		return "integrity check failed"
	case protocol.ReasonUnknownRequest:
		return "unknown request"
	default:
		return "unknown reason"
	}
}

// printJSON formats and prints JSON output
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTable prints data in a simple table format
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		fmt.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)

	for i := range headers {
		fmt.Fprintf(w, "%s  ", strings.Repeat("-", widths[i]))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(w, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w)
	}
}

func printDone(w io.Writer, _ *protocol.Response) {
	fmt.Fprintln(w, "Done.")
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bankctl",
	Short: "Command-line client for the bank server",
	Long: `bankctl sends single requests to a bank server over its TCP protocol.

Every request is sealed with the integrity hash and every response is
verified before it is printed.

Examples:
  # Log in
  bankctl login --user Ahmed25 --password 252000

  # Deposit 100 into account 417
  bankctl transaction --account 417 --amount 100

  # Show the five most recent transactions
  bankctl history --account 417 --count 5

Environment Variables:
  BANKCTL_ADDR  Address of the bank server (default: localhost:4040)`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverAddr, "addr", "a", getEnvOrDefault("BANKCTL_ADDR", "localhost:4040"), "Bank server address")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, json")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
