package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-server/internal/protocol"
)

var (
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a username and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginUser == "" {
			return fmt.Errorf("--user is required")
		}
		req := &protocol.Request{
			RequestID: protocol.LogIn,
			UserName:  loginUser,
			Password:  loginPassword,
		}
		return send(cmd, req, func(w io.Writer, resp *protocol.Response) {
			isAdmin := resp.IsAdmin != nil && *resp.IsAdmin
			printTable(w, []string{"USERNAME", "ACCOUNT", "ADMIN"}, [][]string{
				{resp.UserName, resp.AccountNumber, strconv.FormatBool(isAdmin)},
			})
		})
	},
}

var (
	createUser     string
	createPassword string
	createFullName string
	createAge      string
	createAdmin    bool
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if createUser == "" {
			return fmt.Errorf("--user is required")
		}
		req := &protocol.Request{
			RequestID: protocol.CreateUser,
			UserName:  createUser,
			Password:  createPassword,
			FullName:  createFullName,
			Age:       protocol.Text(createAge),
			IsAdmin:   createAdmin,
		}
		return send(cmd, req, func(w io.Writer, resp *protocol.Response) {
			fmt.Fprintf(w, "User '%s' created with account number %s.\n", createUser, resp.AccountNumber)
		})
	},
}

var (
	updateAccount  string
	updateUser     string
	updatePassword string
	updateFullName string
	updateAge      string
	updateAdmin    bool
)

var updateUserCmd = &cobra.Command{
	Use:   "update-user",
	Short: "Update an account; empty fields are left unchanged",
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateAccount == "" {
			return fmt.Errorf("--account is required")
		}
		req := &protocol.Request{
			RequestID:     protocol.UpdateUser,
			AccountNumber: protocol.Text(updateAccount),
			UserName:      updateUser,
			Password:      updatePassword,
			FullName:      updateFullName,
			Age:           protocol.Text(updateAge),
			IsAdmin:       updateAdmin,
		}
		return send(cmd, req, printDone)
	},
}

var deleteAccount string

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user",
	Short: "Delete an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteAccount == "" {
			return fmt.Errorf("--account is required")
		}
		req := &protocol.Request{
			RequestID:     protocol.DeleteUser,
			AccountNumber: protocol.Text(deleteAccount),
		}
		return send(cmd, req, printDone)
	},
}

var viewAllCmd = &cobra.Command{
	Use:   "view-all",
	Short: "List every account",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &protocol.Request{RequestID: protocol.ViewAll}
		return send(cmd, req, func(w io.Writer, resp *protocol.Response) {
			names := make([]string, 0, len(resp.DataBase))
			for name := range resp.DataBase {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				acc := resp.DataBase[name]
				rows = append(rows, []string{
					name,
					acc.AccountNumber,
					acc.FullName,
					acc.Age,
					strconv.FormatBool(acc.IsAdmin),
					acc.AccountBalance.String(),
					strconv.Itoa(len(acc.TransactionHistory)),
				})
			}
			printTable(w, []string{"USERNAME", "ACCOUNT", "FULL NAME", "AGE", "ADMIN", "BALANCE", "TRANSACTIONS"}, rows)
		})
	},
}

var accountNumberUser string

var accountNumberCmd = &cobra.Command{
	Use:   "account-number",
	Short: "Look up the account number of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if accountNumberUser == "" {
			return fmt.Errorf("--user is required")
		}
		req := &protocol.Request{
			RequestID: protocol.GetAccountNumber,
			UserName:  accountNumberUser,
		}
		return send(cmd, req, func(w io.Writer, resp *protocol.Response) {
			fmt.Fprintln(w, resp.AccountNumber)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginUser, "user", "", "Username (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")

	createUserCmd.Flags().StringVar(&createUser, "user", "", "Username (required)")
	createUserCmd.Flags().StringVar(&createPassword, "password", "", "Password")
	createUserCmd.Flags().StringVar(&createFullName, "full-name", "", "Full name")
	createUserCmd.Flags().StringVar(&createAge, "age", "", "Age")
	createUserCmd.Flags().BoolVar(&createAdmin, "admin", false, "Create an administrator")

	updateUserCmd.Flags().StringVar(&updateAccount, "account", "", "Account number (required)")
	updateUserCmd.Flags().StringVar(&updateUser, "user", "", "New username")
	updateUserCmd.Flags().StringVar(&updatePassword, "password", "", "New password")
	updateUserCmd.Flags().StringVar(&updateFullName, "full-name", "", "New full name")
	updateUserCmd.Flags().StringVar(&updateAge, "age", "", "New age")
	updateUserCmd.Flags().BoolVar(&updateAdmin, "admin", false, "Administrator flag (always applied)")

	deleteUserCmd.Flags().StringVar(&deleteAccount, "account", "", "Account number (required)")

	accountNumberCmd.Flags().StringVar(&accountNumberUser, "user", "", "Username (required)")

	rootCmd.AddCommand(loginCmd, createUserCmd, updateUserCmd, deleteUserCmd, viewAllCmd, accountNumberCmd)
}
