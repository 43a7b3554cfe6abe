package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

const usage = `Usage: fintrack <command> [flags]

Commands:
  summary   print category totals, monthly trend and budget-vs-actual
  export    write users, expenses and budgets as a JSON document

Flags:
  -user <id>   act on this user (default: first user in the store)
  -o <path>    export output file (default: stdout)
`

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	userID := flags.String("user", "", "user id to act on")
	outPath := flags.String("o", "", "export output file")
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	ctx := context.Background()
	store := cli.InitStore(ctx, logger, cfg)
	defer store.Close()

	users := services.NewUsers(store)
	expenses := services.NewExpenses(store,
		cache.NewLRUCache[[]core.Expense](cfg.CacheSize, cfg.CacheTTL))
	budgets := services.NewBudgets(store,
		cache.NewLRUCache[[]core.Budget](cfg.CacheSize, cfg.CacheTTL))

	if *userID == "" {
		all, err := users.List(ctx)
		if err != nil || len(all) == 0 {
			logger.Error("No user available", applog.FieldError, err)
			os.Exit(1)
		}
		*userID = all[0].ID
	}

	var err error
	switch command {
	case "summary":
		err = runSummary(ctx, *userID, expenses, budgets)
	case "export":
		err = runExport(ctx, *userID, *outPath, users, expenses, budgets)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", applog.FieldError, err, applog.FieldUserID, *userID)
		os.Exit(1)
	}
}

func runSummary(ctx context.Context, userID string, expenses *services.Expenses, budgets *services.Budgets) error {
	exps, err := expenses.List(ctx, userID)
	if err != nil {
		return err
	}
	buds, err := budgets.List(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Printf("Spending by category:\n")
	for _, ct := range core.TotalsByCategory(exps, core.TypeExpense) {
		fmt.Printf("  %-20s %10.2f\n", ct.Category, ct.Total)
	}

	fmt.Printf("\nMonthly trend:\n")
	for _, mt := range core.TotalsByMonth(exps) {
		fmt.Printf("  %s  income %10.2f  expenses %10.2f\n", mt.Month, mt.IncomeTotal, mt.ExpenseTotal)
	}

	fmt.Printf("\nBudgets this month:\n")
	for _, ba := range core.BudgetVsActual(buds, exps) {
		fmt.Printf("  %-20s %10.2f of %10.2f\n", ba.Category, ba.ActualAmount, ba.BudgetAmount)
	}
	return nil
}

func runExport(ctx context.Context, userID, outPath string, users *services.Users, expenses *services.Expenses, budgets *services.Budgets) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return export.Write(ctx, out, userID, users, expenses, budgets)
}
