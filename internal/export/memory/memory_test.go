package memory

import (
	"context"
	"testing"
	"time"

	"github.com/caiograbovskii/financaspro/internal/core"
)

func TestStore_Append(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx := core.Transaction{
		ID:       "t1",
		Title:    "Mercado",
		Amount:   100,
		Type:     core.Expense,
		Category: "Alimentação",
		Date:     core.NewDate(2024, time.March, 10),
	}

	ref, err := s.Append(ctx, tx)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %s, want mem:1", ref)
	}

	if got := s.Transactions(); len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("Transactions() = %+v", got)
	}

	t.Run("rejects invalid transaction", func(t *testing.T) {
		if _, err := s.Append(ctx, core.Transaction{}); err == nil {
			t.Error("Append() accepted an empty transaction")
		}
	})
}
