package core

import (
	"testing"
	"time"
)

func tx(title string, amount float64, txType TransactionType, category, date string) Transaction {
	d, _ := ParseDate(date)
	return Transaction{Title: title, Amount: amount, Type: txType, Category: category, Date: d}
}

func TestFilterByMonth(t *testing.T) {
	transactions := []Transaction{
		tx("salário", 5000, Income, "Salário", "2024-03-05"),
		tx("mercado", 300, Expense, "Mercado", "2024-03-10"),
		tx("aluguel", 1200, Expense, "Casa", "2024-02-28"),
		tx("bonus", 800, Income, "Extras", "2023-03-15"),
	}

	got := FilterByMonth(transactions, 2024, time.March)
	if len(got) != 2 {
		t.Fatalf("FilterByMonth() kept %d transactions, want 2", len(got))
	}
	for _, tr := range got {
		if !tr.Date.SameMonth(2024, time.March) {
			t.Errorf("transaction %q outside requested month", tr.Title)
		}
	}
}

func TestComputeKPIs(t *testing.T) {
	tests := []struct {
		name        string
		filtered    []Transaction
		investments []InvestmentAsset
		goals       []Goal
		want        KPISet
	}{
		{
			name: "income minus expense",
			filtered: []Transaction{
				tx("salário", 5000, Income, "Salário", "2024-03-05"),
				tx("contas", 4000, Expense, "Casa", "2024-03-10"),
			},
			want: KPISet{Income: 5000, Expense: 4000, Balance: 1000},
		},
		{
			name: "invested counts portfolio and unlinked goals only",
			investments: []InvestmentAsset{
				{ID: "a", CurrentValue: 3000},
				{ID: "b", CurrentValue: 2000},
			},
			goals: []Goal{
				{Name: "linked", LinkedInvestmentIDs: []string{"a"}, CurrentAmount: 3000},
				{Name: "cash", CurrentAmount: 700},
			},
			want: KPISet{Invested: 5700},
		},
		{
			name: "empty month",
			want: KPISet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeKPIs(tt.filtered, tt.investments, tt.goals)
			if got != tt.want {
				t.Errorf("ComputeKPIs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeKPIs_ContributionIsPlainExpense(t *testing.T) {
	// A contribution's mirrored expense lowers the balance once; no second
	// correction for investment flow is applied.
	filtered := []Transaction{
		tx("salário", 5000, Income, "Salário", "2024-03-05"),
		tx("contas", 4000, Expense, "Casa", "2024-03-10"),
		tx("Investimento: CDB", 1000, Expense, InvestmentCategory, "2024-03-15"),
	}
	got := ComputeKPIs(filtered, []InvestmentAsset{{ID: "x", CurrentValue: 1000}}, nil)

	if got.Expense != 5000 {
		t.Errorf("Expense = %v, want 5000", got.Expense)
	}
	if got.Balance != 0 {
		t.Errorf("Balance = %v, want 0", got.Balance)
	}
	if got.Invested != 1000 {
		t.Errorf("Invested = %v, want 1000", got.Invested)
	}
}

func TestExpenseByCategory(t *testing.T) {
	filtered := []Transaction{
		tx("mercado", 300, Expense, "Mercado", "2024-03-01"),
		tx("feira", 200, Expense, "Mercado", "2024-03-08"),
		tx("cinema", 80, Expense, "Lazer", "2024-03-09"),
		tx("salário", 5000, Income, "Salário", "2024-03-05"),
	}

	got := ExpenseByCategory(filtered)
	if len(got) != 2 {
		t.Fatalf("ExpenseByCategory() returned %d categories, want 2", len(got))
	}
	if got[0].Name != "Mercado" || got[0].Amount != 500 {
		t.Errorf("top category = %+v, want Mercado 500", got[0])
	}
	if got[1].Name != "Lazer" || got[1].Amount != 80 {
		t.Errorf("second category = %+v, want Lazer 80", got[1])
	}
}

func TestSortByDateDesc(t *testing.T) {
	transactions := []Transaction{
		tx("old", 1, Expense, "Casa", "2024-01-01"),
		tx("new", 2, Expense, "Casa", "2024-03-01"),
		tx("mid", 3, Expense, "Casa", "2024-02-01"),
	}

	got := SortByDateDesc(transactions)
	if got[0].Title != "new" || got[1].Title != "mid" || got[2].Title != "old" {
		t.Errorf("SortByDateDesc() order = %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
	}
	if transactions[0].Title != "old" {
		t.Error("SortByDateDesc() mutated its input")
	}
}

func TestWeekExpenses(t *testing.T) {
	window := WeeklyWindow{WeekIndex: 0, StartDate: "2024-03-01", EndDate: "2024-03-07"}
	transactions := []Transaction{
		tx("mercado", 300, Expense, "Mercado", "2024-03-03"),
		tx("aporte", 500, Expense, InvestmentCategory, "2024-03-04"),
		tx("salário", 5000, Income, "Salário", "2024-03-05"),
		tx("fora", 100, Expense, "Lazer", "2024-03-10"),
	}

	got := WeekExpenses(transactions, window)
	if len(got) != 1 || got[0].Title != "mercado" {
		t.Errorf("WeekExpenses() = %v, want only mercado", got)
	}

	inactive := WeeklyWindow{WeekIndex: 4}
	if got := WeekExpenses(transactions, inactive); got != nil {
		t.Errorf("WeekExpenses() on inactive window = %v, want nil", got)
	}
}
