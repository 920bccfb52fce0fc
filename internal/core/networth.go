package core

import "time"

// EvolutionPoint is one month of the trailing net-worth series.
type EvolutionPoint struct {
	Label    string  `json:"name"`
	Date     string  `json:"date"`
	Cash     float64 `json:"cash"`
	Invested float64 `json:"invested"`
	Total    float64 `json:"total"`
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthLabel returns the 3-letter Portuguese month prefix.
func MonthLabel(month time.Month) string {
	name := monthNames[int(month)-1]
	return string([]rune(name)[:3])
}

// BuildEvolution produces the trailing six-month net-worth series, oldest
// first. Cash is the cumulative income minus expense over all recorded
// history up to each month's end. Invested is the present-day current value
// of investments purchased by then; this is a snapshot, not a historical
// mark-to-market.
func BuildEvolution(transactions []Transaction, investments []InvestmentAsset, reference Date) []EvolutionPoint {
	const monthsBack = 6

	points := make([]EvolutionPoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		first := time.Date(reference.Time.Year(), reference.Time.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		eom := Date{Time: time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC)}

		var accIncome, accExpense float64
		for _, t := range transactions {
			if !t.Date.BeforeOrEqual(eom) {
				continue
			}
			switch t.Type {
			case Income:
				accIncome += t.Amount
			case Expense:
				accExpense += t.Amount
			}
		}
		cash := accIncome - accExpense

		var invested float64
		for _, inv := range investments {
			if inv.PurchaseDate.IsZero() || inv.PurchaseDate.BeforeOrEqual(eom) {
				invested += inv.CurrentValue
			}
		}

		points = append(points, EvolutionPoint{
			Label:    MonthLabel(first.Month()),
			Date:     eom.String(),
			Cash:     cash,
			Invested: invested,
			Total:    cash + invested,
		})
	}
	return points
}
