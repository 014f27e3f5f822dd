// Package feed defines the inbound boundaries of the engine: where candidate
// pitchers come from and how roster availability is checked at commit time.
// Implementations live outside the core; the engine only consumes these
// interfaces.
package feed

import (
	"context"

	"github.com/kilianp07/pitchstream/core/model"
)

// CandidateFeed supplies the streamable candidates visible on a given horizon
// day. Callers rebuild candidates on every pass and never cache them across
// days.
type CandidateFeed interface {
	Candidates(ctx context.Context, day int) ([]model.Candidate, error)
}

// AvailabilityOracle answers whether a candidate is still unclaimed at the
// moment of a commit. A false answer means a competitor got there first.
type AvailabilityOracle interface {
	Available(ctx context.Context, candidateID string) (bool, error)
}
