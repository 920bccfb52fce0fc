package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/caiograbovskii/financaspro/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionCRUD(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		ID:       "t1",
		Title:    "Mercado",
		Amount:   250.5,
		Type:     core.Expense,
		Category: "Alimentação",
		Date:     core.NewDate(2024, time.March, 10),
		UserID:   "u1",
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	got, err := repo.GetTransaction(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if got.Title != "Mercado" || got.Amount != 250.5 || got.Type != core.Expense {
		t.Errorf("got %+v", got)
	}
	if got.Date.String() != "2024-03-10" {
		t.Errorf("date = %s, want 2024-03-10", got.Date)
	}

	got.Amount = 300
	if err := repo.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	list, err := repo.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(list) != 1 || list[0].Amount != 300 {
		t.Errorf("list = %+v", list)
	}

	// Other users see nothing.
	other, err := repo.ListTransactions(ctx, "u2")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("foreign user got %d transactions", len(other))
	}

	if err := repo.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := repo.GetTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("after delete, error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	goal := core.Goal{
		ID:                  "g1",
		Name:                "Carro",
		TargetAmount:        50000,
		CurrentAmount:       1200,
		LinkedInvestmentIDs: []string{"a", "b"},
		Deadline:            core.NewDate(2025, time.June, 1),
		Reason:              "troca do usado",
		UserID:              "u1",
	}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goals, err := repo.ListGoals(ctx, "u1")
	if err != nil {
		t.Fatalf("ListGoals() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	got := goals[0]
	if len(got.LinkedInvestmentIDs) != 2 || got.LinkedInvestmentIDs[0] != "a" {
		t.Errorf("linked ids = %v", got.LinkedInvestmentIDs)
	}
	if got.Deadline.String() != "2025-06-01" {
		t.Errorf("deadline = %s", got.Deadline)
	}

	got.LinkedInvestmentIDs = nil
	got.CurrentAmount = 0
	if err := repo.UpdateGoal(ctx, got); err != nil {
		t.Fatalf("UpdateGoal() error = %v", err)
	}
	goals, _ = repo.ListGoals(ctx, "u1")
	if len(goals[0].LinkedInvestmentIDs) != 0 {
		t.Errorf("links not cleared: %v", goals[0].LinkedInvestmentIDs)
	}

	if err := repo.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
}

func TestInvestmentRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	inv := core.InvestmentAsset{
		ID:            "i1",
		Ticker:        "PETR4",
		Category:      "RENDA VARIÁVEL",
		PurchaseDate:  core.NewDate(2024, time.January, 10),
		TotalInvested: 1000,
		CurrentValue:  1100,
		History: []core.HistoryEntry{
			{ID: "h1", Date: core.NewDate(2024, time.January, 10), Amount: 1000, Description: "Aporte Inicial", Kind: core.Contribution},
			{ID: "h2", Date: core.NewDate(2024, time.February, 1), Amount: 100, Description: "Rendimento de Saldo", Kind: core.Yield},
		},
		UserID: "u1",
	}
	if err := repo.CreateInvestment(ctx, inv); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	list, err := repo.ListInvestments(ctx, "u1")
	if err != nil {
		t.Fatalf("ListInvestments() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d investments, want 1", len(list))
	}
	got := list[0]
	if len(got.History) != 2 || got.History[1].Kind != core.Yield {
		t.Errorf("history = %+v", got.History)
	}
	if got.PurchaseDate.String() != "2024-01-10" {
		t.Errorf("purchase date = %s", got.PurchaseDate)
	}
}

func TestApplyLifecycle(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	inv := core.InvestmentAsset{ID: "i1", Ticker: "PETR4", CurrentValue: 500, UserID: "u1"}
	if err := repo.CreateInvestment(ctx, inv); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	goal := core.Goal{ID: "g1", Name: "Carro", TargetAmount: 5000, LinkedInvestmentIDs: []string{"i1"}, CurrentAmount: 500, UserID: "u1"}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	t.Run("deletion with ledger entries", func(t *testing.T) {
		goal.LinkedInvestmentIDs = nil
		goal.CurrentAmount = 0
		txs := []core.Transaction{{
			ID: "t1", Title: "Resgate: PETR4", Amount: 500, Type: core.Income,
			Category: core.RedemptionCategory, Date: core.NewDate(2024, time.March, 15), UserID: "u1",
		}}

		if err := repo.ApplyLifecycle(ctx, nil, []string{"i1"}, []core.Goal{goal}, txs); err != nil {
			t.Fatalf("ApplyLifecycle() error = %v", err)
		}

		if invs, _ := repo.ListInvestments(ctx, "u1"); len(invs) != 0 {
			t.Errorf("investment not removed: %+v", invs)
		}
		if goals, _ := repo.ListGoals(ctx, "u1"); goals[0].CurrentAmount != 0 {
			t.Errorf("goal not reconciled: %+v", goals[0])
		}
		if txs, _ := repo.ListTransactions(ctx, "u1"); len(txs) != 1 {
			t.Errorf("ledger entry missing: %+v", txs)
		}
	})

	t.Run("failure rolls everything back", func(t *testing.T) {
		// Duplicate transaction id forces the insert to fail.
		dup := []core.Transaction{{
			ID: "t1", Title: "x", Amount: 1, Type: core.Expense,
			Category: "x", Date: core.NewDate(2024, time.March, 16), UserID: "u1",
		}}
		newInv := core.InvestmentAsset{ID: "i2", Ticker: "CDB", CurrentValue: 100, UserID: "u1"}

		if err := repo.ApplyLifecycle(ctx, []core.InvestmentAsset{newInv}, nil, nil, dup); err == nil {
			t.Fatal("ApplyLifecycle() with duplicate transaction id succeeded")
		}
		if invs, _ := repo.ListInvestments(ctx, "u1"); len(invs) != 0 {
			t.Errorf("partial write survived rollback: %+v", invs)
		}
	})
}

func TestCategoryConfig(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	got, err := repo.GetCategoryConfig(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCategoryConfig() error = %v", err)
	}
	if got != nil {
		t.Errorf("unsaved config = %s, want nil", got)
	}

	if err := repo.SaveCategoryConfig(ctx, "u1", []byte(`{"expense":{"CASA":["Aluguel"]}}`)); err != nil {
		t.Fatalf("SaveCategoryConfig() error = %v", err)
	}
	if err := repo.SaveCategoryConfig(ctx, "u1", []byte(`{"expense":{}}`)); err != nil {
		t.Fatalf("SaveCategoryConfig() overwrite error = %v", err)
	}

	got, err = repo.GetCategoryConfig(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCategoryConfig() error = %v", err)
	}
	if string(got) != `{"expense":{}}` {
		t.Errorf("config = %s", got)
	}
}

func TestSyncQueue(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, id := range []string{"t1", "t2"} {
		tx := core.Transaction{
			ID: id, Title: "x", Amount: 10, Type: core.Expense,
			Category: "x", Date: core.NewDate(2024, time.March, 10), UserID: "u1",
		}
		if err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
	}

	pending, err := repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}

	if err := repo.MarkSynced(ctx, "t1"); err != nil {
		t.Fatalf("MarkSynced() error = %v", err)
	}
	if err := repo.MarkSyncError(ctx, "t2"); err != nil {
		t.Fatalf("MarkSyncError() error = %v", err)
	}

	pending, err = repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("still pending after marks: %+v", pending)
	}

	if err := repo.MarkSynced(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("MarkSynced(missing) error = %v, want ErrNotFound", err)
	}
}
