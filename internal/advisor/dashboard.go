package advisor

import (
	"fmt"
	"time"

	"github.com/caiograbovskii/financaspro/internal/core"
)

const (
	receivableHorizonDays = 3
	inflationMinimum      = 50
	inflationFactor       = 1.3
	inflationLookback     = 3
)

// DashboardInsights runs the lighter always-on battery shown on the
// dashboard: upcoming income, category inflation against the recent
// average, and a month balance status when nothing else fires.
func DashboardInsights(transactions []core.Transaction, year int, month time.Month, today core.Date) []Insight {
	monthTxs := core.FilterByMonth(transactions, year, month)

	var insights []Insight

	// Income arriving within the next few days.
	horizon := core.Date{Time: today.Time.AddDate(0, 0, receivableHorizonDays)}
	var incoming float64
	var found bool
	for _, t := range transactions {
		if t.Type != core.Income {
			continue
		}
		if !t.Date.Time.Before(today.Time) && t.Date.BeforeOrEqual(horizon) {
			incoming += t.Amount
			found = true
		}
	}
	if found {
		insights = append(insights, Insight{
			ID:      "receivable",
			Type:    TypeInfo,
			Title:   "Entradas à Vista",
			Message: fmt.Sprintf("Previsão de R$ %.2f para os próximos 3 dias.", incoming),
			Color:   "blue",
		})
	}

	// Categories spending well above their recent average.
	for _, cat := range expenseCategories(monthTxs) {
		currentTotal := categoryTotal(monthTxs, cat)
		if currentTotal < inflationMinimum {
			continue
		}

		var pastTotal float64
		var monthsCount int
		for i := 1; i <= inflationLookback; i++ {
			prev := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			sum := categoryTotal(core.FilterByMonth(transactions, prev.Year(), prev.Month()), cat)
			if sum > 0 {
				pastTotal += sum
				monthsCount++
			}
		}
		if monthsCount == 0 {
			continue
		}

		avg := pastTotal / float64(monthsCount)
		if currentTotal > avg*inflationFactor {
			insights = append(insights, Insight{
				ID:      fmt.Sprintf("inflation-%s-%d", cat, int(month)-1),
				Type:    TypeWarning,
				Title:   "Alerta de Inflação",
				Message: fmt.Sprintf("Seus gastos com %s estão %.0f%% acima da média recente.", cat, currentTotal/avg*100-100),
				Color:   "orange",
			})
		}
	}

	if len(insights) > 0 {
		return insights
	}

	// Quiet month: report the plain balance status.
	income := core.SumByType(monthTxs, core.Income)
	expense := core.SumByType(monthTxs, core.Expense)
	if income == 0 && expense == 0 {
		return nil
	}

	balance := income - expense
	status := Insight{
		ID:    fmt.Sprintf("balance-status-%d", int(month)-1),
		Type:  TypeSuccess,
		Title: "Saldo Positivo",
		Color: "emerald",
	}
	if balance >= 0 {
		status.Message = fmt.Sprintf("Você está no azul! Sobra de R$ %.2f.", balance)
	} else {
		status.Type = TypeWarning
		status.Title = "Cuidado"
		status.Color = "rose"
		status.Message = fmt.Sprintf("Gastos excederam receitas em R$ %.2f.", -balance)
	}
	return []Insight{status}
}

func expenseCategories(monthTxs []core.Transaction) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range monthTxs {
		if t.Type != core.Expense {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// categoryTotal sums every transaction in the category regardless of type,
// matching how the dashboard has always measured category volume.
func categoryTotal(monthTxs []core.Transaction, category string) float64 {
	var sum float64
	for _, t := range monthTxs {
		if t.Category == category {
			sum += t.Amount
		}
	}
	return sum
}
