package advisor

// Status is the health score tier.
type Status string

const (
	StatusCritico   Status = "Critico"
	StatusAtencao   Status = "Atencao"
	StatusBom       Status = "Bom"
	StatusExcelente Status = "Excelente"
)

// HealthScore is the bounded 0..100 financial rating plus its tier and a
// seed-selected commentary phrase.
type HealthScore struct {
	Score   int    `json:"score"`
	Status  Status `json:"status"`
	Details string `json:"details"`
}

// Score rates the month's finances. Starting from a base of 50:
//
//	savings rate >= 20%            +20
//	savings rate in [10%, 20%)     +10
//	savings rate negative          -20
//	invested > 6 months of expense +10
//	mean goal progress > 50%       +10
//
// The result is clamped to [0, 100]. Same inputs, same score.
func Score(income, expense, invested float64, goalProgress []float64) HealthScore {
	score := 50

	var savingsRate float64
	if income > 0 {
		savingsRate = (income - expense) / income
	}

	switch {
	case savingsRate >= 0.20:
		score += 20
	case savingsRate >= 0.10:
		score += 10
	case savingsRate < 0:
		score -= 20
	}

	if invested > expense*6 {
		score += 10
	}

	if len(goalProgress) > 0 {
		var sum float64
		for _, p := range goalProgress {
			sum += p
		}
		if sum/float64(len(goalProgress)) > 0.5 {
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	status := StatusAtencao
	switch {
	case score >= 80:
		status = StatusExcelente
	case score >= 60:
		status = StatusBom
	case score <= 30:
		status = StatusCritico
	}

	return HealthScore{Score: score, Status: status}
}

// phrase picks the commentary wording for the score. The seed only chooses
// among equivalent phrasings within the tier.
func phrase(score, seed int) string {
	var pool []string
	switch {
	case score >= 80:
		pool = scorePhrases.high
	case score >= 60:
		pool = scorePhrases.mid
	default:
		pool = scorePhrases.low
	}
	return pool[seed%len(pool)]
}
