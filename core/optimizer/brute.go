package optimizer

import "github.com/kilianp07/pitchstream/core/model"

// BruteForce enumerates every subset and returns the best feasible total.
// It exists to cross-check the branch-and-bound search on small instances
// and is exponential in the candidate count.
func BruteForce(cands []model.Candidate, budget int, capacity model.WeekCapacity) ([]model.Candidate, float64) {
	n := len(cands)
	days := capacity.Days()

	var (
		best    = -1.0
		bestSet []int
	)
	for mask := 0; mask < 1<<n; mask++ {
		use := make([]int, days)
		total := 0.0
		count := 0
		feasible := true
		for i := 0; i < n && feasible; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			count++
			if count > budget {
				feasible = false
				break
			}
			for _, d := range cands[i].PitchDays {
				use[d]++
				if use[d] > capacity.On(d) {
					feasible = false
					break
				}
			}
			total += cands[i].TotalExpectedPoints()
		}
		if feasible && total > best {
			best = total
			bestSet = bestSet[:0]
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					bestSet = append(bestSet, i)
				}
			}
		}
	}

	if best < 0 {
		return nil, 0
	}
	out := make([]model.Candidate, 0, len(bestSet))
	for _, i := range bestSet {
		out = append(out, cands[i])
	}
	return out, best
}
