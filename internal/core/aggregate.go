package core

import (
	"sort"
	"time"
)

// KPISet holds the month's headline figures. Balance is income minus
// expense; because investment contributions are ordinary expense
// transactions and redemptions ordinary income, no separate investment
// adjustment belongs here.
type KPISet struct {
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Balance  float64 `json:"balance"`
	Invested float64 `json:"invested"`
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FilterByMonth keeps the transactions dated in the given month.
func FilterByMonth(transactions []Transaction, year int, month time.Month) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if t.Date.SameMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}

// ComputeKPIs aggregates the filtered month. Invested is the portfolio's
// current value plus the balances of goals with no linked investments;
// linked goal value already lives inside an investment's current value and
// would double count.
func ComputeKPIs(filtered []Transaction, investments []InvestmentAsset, goals []Goal) KPISet {
	var income, expense float64
	for _, t := range filtered {
		switch t.Type {
		case Income:
			income += t.Amount
		case Expense:
			expense += t.Amount
		}
	}

	var invested float64
	for _, inv := range investments {
		invested += inv.CurrentValue
	}
	for _, g := range goals {
		if !g.Linked() {
			invested += g.CurrentAmount
		}
	}

	return KPISet{
		Income:   income,
		Expense:  expense,
		Balance:  income - expense,
		Invested: invested,
	}
}

// SumByType totals the amounts of the given type.
func SumByType(transactions []Transaction, txType TransactionType) float64 {
	var sum float64
	for _, t := range transactions {
		if t.Type == txType {
			sum += t.Amount
		}
	}
	return sum
}

// ExpenseByCategory aggregates the month's expense transactions per
// category, largest first.
func ExpenseByCategory(filtered []Transaction) []CategoryAmount {
	totals := make(map[string]float64)
	for _, t := range filtered {
		if t.Type == Expense {
			totals[t.Category] += t.Amount
		}
	}
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SortByDateDesc orders transactions newest first, stable for equal dates.
func SortByDateDesc(transactions []Transaction) []Transaction {
	out := append([]Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Time.After(out[j].Date.Time)
	})
	return out
}

// WeekExpenses keeps the window's expense transactions, excluding
// investment contributions so the weekly rollup reflects consumption only.
func WeekExpenses(transactions []Transaction, window WeeklyWindow) []Transaction {
	if window.StartDate == "" || window.EndDate == "" {
		return nil
	}
	var out []Transaction
	for _, t := range transactions {
		if t.Type != Expense || t.Category == InvestmentCategory {
			continue
		}
		d := t.Date.String()
		if d >= window.StartDate && d <= window.EndDate {
			out = append(out, t)
		}
	}
	return out
}
