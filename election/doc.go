// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the election domain model and the tally engine.

# Data Model

  - Name: unique candidate key within one election
  - Region: quota group for reserved offices (not unique)
  - Ballot: Name → rank; 0 is an explicit abstention, higher is better
  - Election: owner, office count, candidates, reserved offices, one ballot
    per voter

Candidate ordering is always lexicographic by name (CandidateNames); nothing
depends on Go map iteration order.

# Tally

Tally sums ranks per candidate over every ballot. A rank-0 abstention keeps
the candidate in the result with nothing added; a candidate no ballot mentions
is excluded entirely. Equal scores are tie-broken by a uniform shuffle applied
before a stable ascending sort; inject a seeded *rand.Rand to make tests
deterministic.

# Assignment

Assign pops candidates from the high end of the tally and fills offices
greedily: a reserved slot for the candidate's region if one is open, else an
unreserved slot, else the candidate is skipped. The walk is single-pass and
never revisits an assignment. If the pool empties before all offices fill,
the election is infeasible, an expected outcome, reported as such.

# Setup Parsing

ParseReservations and ParseCandidates handle the organizer-facing setup
strings ("AMER,EMEA" and "alice;AMER,bob;EMEA"). A malformed candidate entry
rejects the whole list so no half-built election is ever created.
*/
package election
