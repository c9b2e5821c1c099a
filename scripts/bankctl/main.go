// Package main provides bankctl, a command-line client for the bank server.
package main

import (
	"os"

	"github.com/carson-networks/bank-server/scripts/bankctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
