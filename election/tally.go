// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"
)

// Scored pairs a candidate with their summed rank across all ballots.
type Scored struct {
	Score int
	Name  Name
}

// Tally sums ranks per candidate across every ballot, ascending by score.
//
// Abstentions (rank 0) contribute nothing to the score but still count as an
// entry, so a candidate everyone abstained on appears with score 0. A
// candidate nobody ranked at all is absent from the result.
//
// The shuffle before the stable sort is deliberate: it randomizes the order
// among equal scores, so ties break fairly instead of favoring insertion or
// lexicographic order. Pass a seeded rng to make the outcome reproducible.
func (e *Election) Tally(rng *rand.Rand) []Scored {
	scores := make(map[Name]int)
	for _, ballot := range e.Ballots {
		for name, rank := range ballot.Votes {
			scores[name] += rank
		}
	}

	results := make([]Scored, 0, len(scores))
	for name, score := range scores {
		results = append(results, Scored{Score: score, Name: name})
	}

	rng.Shuffle(len(results), func(i, j int) {
		results[i], results[j] = results[j], results[i]
	})
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	return results
}

// Assign walks the tally from the highest score downward and fills offices
// greedily: a reserved slot matching the candidate's region first, then an
// unreserved slot, otherwise the candidate is passed over and the walk
// continues. Assignment is single-pass: a later candidate never bumps an
// earlier one, even if an optimal matching would fill more reserved slots.
//
// Winners come back sorted by name for deterministic display. ok is false
// when the candidate pool runs out before every office is filled; callers
// present that as an incomplete election, not an internal error.
func (e *Election) Assign(results []Scored) (winners []Name, ok bool) {
	reserved := make([]Region, len(e.ReservedOffices))
	copy(reserved, e.ReservedOffices)
	unreserved := e.Offices - len(reserved)

	for len(winners) < e.Offices {
		if len(results) == 0 {
			return nil, false
		}
		top := results[len(results)-1]
		results = results[:len(results)-1]

		region := e.Candidates[top.Name]
		if ix := indexOf(reserved, region); ix >= 0 {
			winners = append(winners, top.Name)
			reserved = append(reserved[:ix], reserved[ix+1:]...)
			slog.Debug("candidate takes reserved office",
				"candidate", top.Name, "region", region, "remaining_reserved", len(reserved))
		} else if unreserved > 0 {
			winners = append(winners, top.Name)
			unreserved--
			slog.Debug("candidate takes unreserved office",
				"candidate", top.Name, "remaining_unreserved", unreserved)
		} else {
			slog.Debug("could not assign candidate", "candidate", top.Name, "region", region)
		}
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })
	return winners, true
}

// Run tallies and assigns with production randomness.
func (e *Election) Run() ([]Name, bool) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return e.Assign(e.Tally(rng))
}

func indexOf(regions []Region, r Region) int {
	for i, candidate := range regions {
		if candidate == r {
			return i
		}
	}
	return -1
}
