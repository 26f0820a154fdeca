// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"sort"
)

var (
	ErrTooManyReservations = errors.New("more reserved offices than offices")
	ErrMalformedCandidate  = errors.New("malformed candidate entry")
)

// Name is the unique key for a candidate within one election.
type Name string

// Region groups candidates for reserved-office quotas. Regions need not be
// unique across candidates.
type Region string

// Ballot maps candidate names to ranks. Rank 0 is an explicit abstention;
// higher ranks are more preferred.
type Ballot struct {
	Votes map[Name]int `json:"votes"`
}

func NewBallot() Ballot {
	return Ballot{Votes: make(map[Name]int)}
}

// Set records a rank, allocating the vote map on first use so that
// zero-valued ballots loaded from disk stay usable.
func (b *Ballot) Set(name Name, rank int) {
	if b.Votes == nil {
		b.Votes = make(map[Name]int)
	}
	b.Votes[name] = rank
}

// Names returns the ranked candidate names in lexicographic order.
func (b *Ballot) Names() []Name {
	names := make([]Name, 0, len(b.Votes))
	for name := range b.Votes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Election is one multi-office ranked election. Elections are created by the
// setup command, mutated by ballot submission and removal, and never deleted,
// so past results stay queryable.
type Election struct {
	Owner           string          `json:"owner"`
	Offices         int             `json:"offices"`
	Candidates      map[Name]Region `json:"candidates"`
	ReservedOffices []Region        `json:"reserved_offices"`

	// Ballots is keyed by voter identity; one ballot per voter.
	Ballots map[string]Ballot `json:"ballots"`
}

func New(owner string, offices int) *Election {
	return &Election{
		Owner:           owner,
		Offices:         offices,
		Candidates:      make(map[Name]Region),
		ReservedOffices: []Region{},
		Ballots:         make(map[string]Ballot),
	}
}

// ReserveOffice pre-commits one office slot to a region. The invariant
// len(ReservedOffices) <= Offices is enforced here and never relaxed.
func (e *Election) ReserveOffice(region Region) error {
	if len(e.ReservedOffices)+1 > e.Offices {
		return ErrTooManyReservations
	}
	e.ReservedOffices = append(e.ReservedOffices, region)
	return nil
}

func (e *Election) AddCandidate(name Name, region Region) {
	if e.Candidates == nil {
		e.Candidates = make(map[Name]Region)
	}
	e.Candidates[name] = region
}

// CandidateNames returns candidates in canonical (lexicographic) order. All
// display and ballot-walk ordering goes through this, never map iteration.
func (e *Election) CandidateNames() []Name {
	names := make([]Name, 0, len(e.Candidates))
	for name := range e.Candidates {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// NextUnranked returns the first candidate in canonical order that the ballot
// has no entry for. The scan is what makes the ballot walk robust to
// candidates being stored in map order; a position counter would not be.
func (e *Election) NextUnranked(b *Ballot) (Name, bool) {
	for _, name := range e.CandidateNames() {
		if _, answered := b.Votes[name]; !answered {
			return name, true
		}
	}
	return "", false
}

// Vote records a single rank directly on a voter's ballot.
func (e *Election) Vote(user string, name Name, rank int) {
	ballot, ok := e.Ballots[user]
	if !ok {
		ballot = NewBallot()
	}
	ballot.Set(name, rank)
	e.Ballots[user] = ballot
}

func (e *Election) VoterCount() int {
	return len(e.Ballots)
}
