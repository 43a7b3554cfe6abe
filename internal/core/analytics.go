// Package core holds the entity types and the pure aggregation
// functions that turn already-fetched expense and budget lists into
// chart-ready summaries. Nothing in this package performs I/O.
package core

import (
	"sort"
	"time"
)

type (
	// CategoryTotal is the summed amount for one category.
	CategoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}

	// MonthTotal accumulates income and expense amounts for one
	// YYYY-MM bucket.
	MonthTotal struct {
		Month        string  `json:"month"`
		IncomeTotal  float64 `json:"income_total"`
		ExpenseTotal float64 `json:"expense_total"`
	}

	// BudgetActual pairs a budget ceiling with the spend recorded
	// against it in the current calendar month.
	BudgetActual struct {
		Category     string  `json:"category"`
		BudgetAmount float64 `json:"budget_amount"`
		ActualAmount float64 `json:"actual_amount"`
	}
)

// TotalsByCategory sums amounts of the given transaction type grouped
// by category, sorted descending by total. The relative order of
// categories with equal totals is unspecified.
func TotalsByCategory(expenses []Expense, typ TxnType) []CategoryTotal {
	sums := make(map[string]float64)
	for _, e := range expenses {
		if e.Type != typ {
			continue
		}
		sums[e.Category] += e.Amount
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	return totals
}

// TotalsByMonth buckets expenses by the YYYY-MM prefix of their date,
// keeping income and expense sums apart. Buckets are returned in
// ascending month order; for well-formed ISO dates that is
// chronological.
func TotalsByMonth(expenses []Expense) []MonthTotal {
	buckets := make(map[string]*MonthTotal)
	for _, e := range expenses {
		if len(e.Date) < 7 {
			continue
		}
		month := e.Date[:7]
		b, ok := buckets[month]
		if !ok {
			b = &MonthTotal{Month: month}
			buckets[month] = b
		}
		switch e.Type {
		case TypeIncome:
			b.IncomeTotal += e.Amount
		case TypeExpense:
			b.ExpenseTotal += e.Amount
		}
	}

	totals := make([]MonthTotal, 0, len(buckets))
	for _, b := range buckets {
		totals = append(totals, *b)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month < totals[j].Month
	})
	return totals
}

// BudgetVsActual compares each budget against the expense-typed
// transactions recorded in its category during the current calendar
// month, by the local clock. A budget whose category has no matching
// expenses reports an actual of 0.
func BudgetVsActual(budgets []Budget, expenses []Expense) []BudgetActual {
	return BudgetVsActualAt(budgets, expenses, time.Now())
}

// BudgetVsActualAt is BudgetVsActual with an explicit reference time.
func BudgetVsActualAt(budgets []Budget, expenses []Expense, now time.Time) []BudgetActual {
	month := now.Format("2006-01")

	spent := make(map[string]float64)
	for _, e := range expenses {
		if e.Type != TypeExpense {
			continue
		}
		if len(e.Date) < 7 || e.Date[:7] != month {
			continue
		}
		spent[e.Category] += e.Amount
	}

	results := make([]BudgetActual, 0, len(budgets))
	for _, b := range budgets {
		results = append(results, BudgetActual{
			Category:     b.Category,
			BudgetAmount: b.Amount,
			ActualAmount: spent[b.Category],
		})
	}
	return results
}
