package feed

import (
	"context"

	"github.com/kilianp07/pitchstream/core/model"
)

// StaticFeed serves a fixed candidate list, trimmed to starts on or after the
// requested day.
type StaticFeed struct {
	Pool []model.Candidate
}

// Candidates returns the pool entries with at least one remaining start.
func (f StaticFeed) Candidates(_ context.Context, day int) ([]model.Candidate, error) {
	var out []model.Candidate
	for _, c := range f.Pool {
		var remaining []int
		for _, d := range c.PitchDays {
			if d >= day {
				remaining = append(remaining, d)
			}
		}
		if len(remaining) == 0 {
			continue
		}
		c.PitchDays = remaining
		out = append(out, c)
	}
	return out, nil
}

// MapOracle answers availability from a map. Unknown ids are available.
type MapOracle struct {
	Claimed map[string]bool
}

// Available reports false only for ids marked claimed.
func (o MapOracle) Available(_ context.Context, id string) (bool, error) {
	if o.Claimed == nil {
		return true, nil
	}
	return !o.Claimed[id], nil
}
