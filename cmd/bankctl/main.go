// bankctl is a small operator CLI against the ledger service, sharing the
// gateway's typed client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bank-dashboard/internal/ledger"
	"bank-dashboard/internal/models"
)

const usage = `usage: bankctl <command> [flags]

commands:
  list                        list all accounts
  show      -account N        show one account with its history
  create    -holder NAME [-balance X]
  deposit   -account N -amount X [-desc TEXT]
  withdraw  -account N -amount X [-desc TEXT]
  transfer  -from N -to N -amount X
  close     -account N
  history   [-account N]      transaction feed
  summary                     bank-wide totals
`

func main() {
	log.SetFlags(0)

	if err := godotenv.Load(); err != nil && os.Getenv("ENV") != "docker" {
		// fall back to plain environment variables
	}
	ledgerURL := os.Getenv("LEDGER_URL")
	if ledgerURL == "" {
		ledgerURL = "http://127.0.0.1:8000/api"
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	client := ledger.NewClient(ledgerURL, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, client)
	case "show":
		err = runShow(ctx, client, os.Args[2:])
	case "create":
		err = runCreate(ctx, client, os.Args[2:])
	case "deposit":
		err = runMutate(ctx, client.Deposit, os.Args[2:])
	case "withdraw":
		err = runMutate(ctx, client.Withdraw, os.Args[2:])
	case "transfer":
		err = runTransfer(ctx, client, os.Args[2:])
	case "close":
		err = runClose(ctx, client, os.Args[2:])
	case "history":
		err = runHistory(ctx, client, os.Args[2:])
	case "summary":
		err = runSummary(ctx, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("bankctl: %v", err)
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func printAccounts(accounts []models.Account) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tHOLDER\tBALANCE\tSTATUS\tCREATED")
	for _, account := range accounts {
		status := "active"
		if !account.IsActive {
			status = "closed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			account.AccountNumber,
			account.HolderName,
			account.Balance.StringFixed(2),
			status,
			account.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func printTransactions(transactions []models.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tKIND\tAMOUNT\tBALANCE AFTER\tDESCRIPTION")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Kind,
			tx.Amount.StringFixed(2),
			tx.BalanceAfter.StringFixed(2),
			tx.Description)
	}
	w.Flush()
}

func runList(ctx context.Context, client *ledger.Client) error {
	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return err
	}
	printAccounts(accounts)
	return nil
}

func runShow(ctx context.Context, client *ledger.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	account := fs.String("account", "", "account number")
	fs.Parse(args)
	if *account == "" {
		return fmt.Errorf("-account is required")
	}

	acc, err := client.GetAccount(ctx, *account)
	if err != nil {
		return err
	}
	printAccounts([]models.Account{*acc})

	transactions, err := client.AccountTransactions(ctx, *account)
	if err != nil {
		return err
	}
	models.SortByTimestamp(transactions)
	fmt.Println()
	printTransactions(transactions)
	return nil
}

func runCreate(ctx context.Context, client *ledger.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	holder := fs.String("holder", "", "account holder name")
	balance := fs.String("balance", "0", "initial balance")
	fs.Parse(args)
	if *holder == "" {
		return fmt.Errorf("-holder is required")
	}
	initial, err := parseAmount(*balance)
	if err != nil {
		return err
	}

	account, err := client.CreateAccount(ctx, *holder, initial)
	if err != nil {
		return err
	}
	fmt.Printf("created account %s for %s\n", account.AccountNumber, account.HolderName)
	return nil
}

type mutateFunc func(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error)

func runMutate(ctx context.Context, op mutateFunc, args []string) error {
	fs := flag.NewFlagSet("mutate", flag.ExitOnError)
	account := fs.String("account", "", "account number")
	amountRaw := fs.String("amount", "", "amount")
	description := fs.String("desc", "", "description")
	fs.Parse(args)
	if *account == "" || *amountRaw == "" {
		return fmt.Errorf("-account and -amount are required")
	}
	amount, err := parseAmount(*amountRaw)
	if err != nil {
		return err
	}

	updated, err := op(ctx, *account, amount, *description)
	if err != nil {
		return err
	}
	fmt.Printf("account %s balance is now %s\n", updated.AccountNumber, updated.Balance.StringFixed(2))
	return nil
}

func runTransfer(ctx context.Context, client *ledger.Client, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	from := fs.String("from", "", "source account number")
	to := fs.String("to", "", "destination account number")
	amountRaw := fs.String("amount", "", "amount")
	fs.Parse(args)
	if *from == "" || *to == "" || *amountRaw == "" {
		return fmt.Errorf("-from, -to and -amount are required")
	}
	amount, err := parseAmount(*amountRaw)
	if err != nil {
		return err
	}

	result, err := client.Transfer(ctx, *from, *to, amount)
	if err != nil {
		return err
	}
	fmt.Printf("transferred %s: %s now %s, %s now %s\n",
		amount.StringFixed(2),
		result.FromAccount.AccountNumber, result.FromAccount.Balance.StringFixed(2),
		result.ToAccount.AccountNumber, result.ToAccount.Balance.StringFixed(2))
	return nil
}

func runClose(ctx context.Context, client *ledger.Client, args []string) error {
	fs := flag.NewFlagSet("close", flag.ExitOnError)
	account := fs.String("account", "", "account number")
	fs.Parse(args)
	if *account == "" {
		return fmt.Errorf("-account is required")
	}

	closed, err := client.Close(ctx, *account)
	if err != nil {
		return err
	}
	fmt.Printf("account %s closed\n", closed.AccountNumber)
	return nil
}

func runHistory(ctx context.Context, client *ledger.Client, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	account := fs.String("account", "", "narrow to one account")
	fs.Parse(args)

	transactions, err := client.Transactions(ctx, *account)
	if err != nil {
		return err
	}
	models.SortByTimestamp(transactions)
	printTransactions(transactions)
	return nil
}

func runSummary(ctx context.Context, client *ledger.Client) error {
	summary, err := client.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("accounts:      %d (%d active)\n", summary.TotalAccounts, summary.ActiveAccounts)
	fmt.Printf("total deposits: %s\n", summary.TotalDeposits.StringFixed(2))
	fmt.Printf("transactions:  %d\n", summary.TotalTransactions)
	return nil
}
