package advisor

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		income       float64
		expense      float64
		invested     float64
		goalProgress []float64
		wantScore    int
		wantStatus   Status
	}{
		{
			name:       "base case no signals",
			income:     1000,
			expense:    950,
			wantScore:  50,
			wantStatus: StatusAtencao,
		},
		{
			name:       "strong savings rate",
			income:     5000,
			expense:    3500,
			wantScore:  70,
			wantStatus: StatusBom,
		},
		{
			name:       "moderate savings rate",
			income:     5000,
			expense:    4400,
			wantScore:  60,
			wantStatus: StatusBom,
		},
		{
			name:       "negative savings rate",
			income:     3000,
			expense:    3500,
			wantScore:  30,
			wantStatus: StatusCritico,
		},
		{
			name:       "six month buffer adds ten",
			income:     5000,
			expense:    1000,
			invested:   6001,
			wantScore:  80,
			wantStatus: StatusExcelente,
		},
		{
			name:         "goal progress adds ten",
			income:       5000,
			expense:      3500,
			goalProgress: []float64{0.6, 0.7},
			wantScore:    80,
			wantStatus:   StatusExcelente,
		},
		{
			name:         "all signals max out at 90",
			income:       5000,
			expense:      500,
			invested:     10000,
			goalProgress: []float64{1.0},
			wantScore:    90,
			wantStatus:   StatusExcelente,
		},
		{
			name:       "zero income means zero rate",
			income:     0,
			expense:    2000,
			wantScore:  50,
			wantStatus: StatusAtencao,
		},
		{
			name:         "low goal progress adds nothing",
			income:       1000,
			expense:      990,
			goalProgress: []float64{0.1, 0.2},
			wantScore:    50,
			wantStatus:   StatusAtencao,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.income, tt.expense, tt.invested, tt.goalProgress)
			if got.Score != tt.wantScore {
				t.Errorf("Score() = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	cases := []struct {
		income, expense, invested float64
		progress                  []float64
	}{
		{income: 0, expense: 100000},
		{income: 100000, expense: 0, invested: 1e9, progress: []float64{10, 10}},
		{income: -1, expense: -1},
	}
	for _, c := range cases {
		got := Score(c.income, c.expense, c.invested, c.progress)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("Score(%v, %v, %v, %v) = %d, out of [0,100]", c.income, c.expense, c.invested, c.progress, got.Score)
		}
	}
}

func TestScore_MonotoneInSavingsRate(t *testing.T) {
	// Fixed income, decreasing expense (increasing savings rate) must never
	// lower the score.
	const income = 5000.0
	prev := -1
	for expense := 6000.0; expense >= 0; expense -= 100 {
		got := Score(income, expense, 0, nil).Score
		if got < prev {
			t.Fatalf("score dropped from %d to %d at expense %v", prev, got, expense)
		}
		prev = got
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := Score(5000, 3500, 10000, []float64{0.6})
	b := Score(5000, 3500, 10000, []float64{0.6})
	if a != b {
		t.Errorf("Score not deterministic: %+v vs %+v", a, b)
	}
}

func TestPhrase_SeedSelectsWithinTier(t *testing.T) {
	for seed := 0; seed < 10; seed++ {
		p := phrase(85, seed)
		found := false
		for _, candidate := range scorePhrases.high {
			if p == candidate {
				found = true
			}
		}
		if !found {
			t.Errorf("phrase(85, %d) = %q not in high tier", seed, p)
		}
	}

	if phrase(70, 0) != scorePhrases.mid[0] {
		t.Errorf("phrase(70, 0) should come from mid tier")
	}
	if phrase(40, 1) != scorePhrases.low[1] {
		t.Errorf("phrase(40, 1) should come from low tier")
	}
}
