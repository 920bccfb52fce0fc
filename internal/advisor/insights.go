// Package advisor derives the financial health score and the rule-based
// insight battery from a month's data. Everything here is deterministic
// over its inputs; the seed only varies score commentary phrasing.
package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/caiograbovskii/financaspro/internal/core"
)

// InsightType classifies an insight card.
type InsightType string

const (
	TypeSuccess InsightType = "success"
	TypeWarning InsightType = "warning"
	TypeInfo    InsightType = "info"
	TypeIdea    InsightType = "idea"
)

// Insight is one rule-check result. IDs are stable per rule so the caller
// can filter out dismissed cards.
type Insight struct {
	ID      string      `json:"id"`
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Color   string      `json:"color"`
}

// Report is the full advisor output for a month.
type Report struct {
	Insights   []Insight   `json:"insights"`
	Score      HealthScore `json:"score"`
	DailyQuote Quote       `json:"dailyQuote"`
}

// Input carries the snapshot the rules run against. Today is passed
// explicitly so results are reproducible.
type Input struct {
	Transactions []core.Transaction
	Goals        []core.Goal
	Investments  []core.InvestmentAsset
	Config       core.CategoryConfig
	Year         int
	Month        time.Month
	Seed         int
	Today        core.Date
}

const (
	smallPurchaseLimit     = 50
	lattePurchaseThreshold = 400
	latteIncomeShare       = 0.05
	lifestyleIncomeShare   = 0.20
	goalRiskIncomeShare    = 0.3
	surplusThreshold       = 500
	surplusCutoffDay       = 5
	maxInsightsBeforeTip   = 3
)

var lifestyleKeywords = []string{
	"restaurante", "ifood", "uber", "lazer", "bar", "cinema",
	"streaming", "assinatura", "delivery",
}

// Analyze runs the fixed rule battery against the month's transactions and
// the portfolio, returning the insight list, health score, and the quote of
// the day.
func Analyze(in Input) Report {
	monthTxs := core.FilterByMonth(in.Transactions, in.Year, in.Month)

	income := core.SumByType(monthTxs, core.Income)
	expense := core.SumByType(monthTxs, core.Expense)

	var invested float64
	for _, inv := range in.Investments {
		invested += inv.CurrentValue
	}

	progress := make([]float64, len(in.Goals))
	for i, g := range in.Goals {
		progress[i] = g.ProgressRatio()
	}

	health := Score(income, expense, invested, progress)
	health.Details = phrase(health.Score, in.Seed)

	var insights []Insight

	// Small purchases piling up.
	var smallPurchases float64
	for _, t := range monthTxs {
		if t.Type == core.Expense && t.Amount < smallPurchaseLimit {
			smallPurchases += t.Amount
		}
	}
	if smallPurchases > lattePurchaseThreshold || (income > 0 && smallPurchases > income*latteIncomeShare) {
		insights = append(insights, Insight{
			ID:      "latte-effect",
			Type:    TypeWarning,
			Title:   "Atenção aos Pequenos Gastos",
			Message: fmt.Sprintf("Pequenas compras acumularam R$ %.2f este mês.", smallPurchases),
			Color:   "orange",
		})
	}

	// Lifestyle spending against income.
	var lifestyle float64
	for _, t := range monthTxs {
		if t.Type != core.Expense {
			continue
		}
		cat := strings.ToLower(t.Category)
		for _, k := range lifestyleKeywords {
			if strings.Contains(cat, k) {
				lifestyle += t.Amount
				break
			}
		}
	}
	if income > 0 && lifestyle > income*lifestyleIncomeShare {
		insights = append(insights, Insight{
			ID:      "lifestyle-alert",
			Type:    TypeWarning,
			Title:   "Gastos com Estilo de Vida",
			Message: fmt.Sprintf("Lazer e conveniência consumiram %.0f%% da sua renda (R$ %.2f).", lifestyle/income*100, lifestyle),
			Color:   "rose",
		})
	}

	// Praise or alarm by score.
	if health.Score >= 80 {
		insights = append(insights, Insight{
			ID:      "great-score",
			Type:    TypeSuccess,
			Title:   "Excelente Gestão! 👑",
			Message: fmt.Sprintf("Seu Score Financeiro é %d/100. Você está construindo riqueza sólida.", health.Score),
			Color:   "emerald",
		})
	} else if health.Score <= 40 {
		insights = append(insights, Insight{
			ID:      "crisis-mode",
			Type:    TypeWarning,
			Title:   "Atenção Necessária",
			Message: fmt.Sprintf("Seu Score é %d/100. Revise seus gastos essenciais para equilibrar o orçamento.", health.Score),
			Color:   "rose",
		})
	}

	// First goal at risk of missing its deadline.
	for _, g := range in.Goals {
		if !goalAtRisk(g, income, in.Today) {
			continue
		}
		insights = append(insights, Insight{
			ID:      "goal-risk",
			Type:    TypeInfo,
			Title:   "Meta Desafiadora",
			Message: fmt.Sprintf("A meta %q exige atenção para ser atingida no prazo.", g.Name),
			Color:   "blue",
		})
		break
	}

	daySeed := in.Today.Time.Year()*1000 + (int(in.Today.Time.Month())-1)*31 + in.Today.Time.Day()

	// Idle cash after this month's contributions.
	var outflow float64
	for _, inv := range in.Investments {
		for _, h := range inv.History {
			if h.Amount > 0 && h.Date.SameMonth(in.Year, in.Month) {
				outflow += h.Amount
			}
		}
	}
	realBalance := income - expense - outflow
	if in.Today.Time.Day() > surplusCutoffDay && realBalance > surplusThreshold {
		insights = append(insights, Insight{
			ID:      "invest-opp",
			Type:    TypeIdea,
			Title:   "Excedente de Caixa",
			Message: fmt.Sprintf("Você tem R$ %.2f disponíveis. Que tal aportar em seus investimentos?", realBalance),
			Color:   "purple",
		})
	}

	// Fill quiet months with a tip of the day.
	if len(insights) < maxInsightsBeforeTip {
		insights = append(insights, Insight{
			ID:      "daily-tip",
			Type:    TypeInfo,
			Title:   "Dica do Dia 💡",
			Message: dailyTips[daySeed%len(dailyTips)],
			Color:   "indigo",
		})
	}

	return Report{
		Insights:   insights,
		Score:      health,
		DailyQuote: dailyQuotes[daySeed%len(dailyQuotes)],
	}
}

// goalAtRisk reports whether the goal has missed its deadline with a
// shortfall, or demands more than 30% of monthly income to finish on time.
// Remaining time is measured in 30-day months.
func goalAtRisk(g core.Goal, income float64, today core.Date) bool {
	if g.Deadline.IsZero() {
		return false
	}
	remainingAmount := g.TargetAmount - g.CurrentAmount
	remainingMonths := g.Deadline.Time.Sub(today.Time).Hours() / (24 * 30)
	if remainingMonths <= 0 {
		return remainingAmount > 0
	}
	return remainingAmount/remainingMonths > income*goalRiskIncomeShare
}
