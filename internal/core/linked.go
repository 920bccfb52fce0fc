package core

// LinkedAmount sums the current value of the investments referenced by ids.
// Unknown ids contribute nothing; an empty id set yields 0.
func LinkedAmount(ids []string, investments []InvestmentAsset) float64 {
	if len(ids) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var sum float64
	for _, inv := range investments {
		if _, ok := wanted[inv.ID]; ok {
			sum += inv.CurrentValue
		}
	}
	return sum
}

// EffectiveAmount returns the goal's display balance: the linked total when
// investments are linked, the user-entered amount otherwise.
func (g Goal) EffectiveAmount(investments []InvestmentAsset) float64 {
	if g.Linked() {
		return LinkedAmount(g.LinkedInvestmentIDs, investments)
	}
	return g.CurrentAmount
}

// ProgressRatio returns the goal's completion ratio. A zero target counts
// as a full denominator of 1 to avoid dividing by zero.
func (g Goal) ProgressRatio() float64 {
	target := g.TargetAmount
	if target == 0 {
		target = 1
	}
	return g.CurrentAmount / target
}

// Reconcile recomputes CurrentAmount for every linked goal against the given
// investment set. Unlinked goals are returned untouched.
func Reconcile(goals []Goal, investments []InvestmentAsset) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		if g.Linked() {
			g.CurrentAmount = LinkedAmount(g.LinkedInvestmentIDs, investments)
		}
		out[i] = g
	}
	return out
}
