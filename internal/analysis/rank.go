package analysis

import "sort"

// RankBySavings sorts outcomes descending by monthly savings. Ties go to
// the smaller system; capacity past full coverage earns nothing in this
// billing model.
func RankBySavings(outcomes []SizingOutcome) []SizingOutcome {
	out := make([]SizingOutcome, len(outcomes))
	copy(out, outcomes)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Savings != out[j].Savings {
			return out[i].Savings > out[j].Savings
		}
		return out[i].RatedPowerKw < out[j].RatedPowerKw
	})
	return out
}
