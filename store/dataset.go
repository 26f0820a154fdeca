// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/election"
)

var (
	// ErrElectionNotFound usually means the election predates the current
	// data file (e.g. created before a restore from backup).
	ErrElectionNotFound = errors.New("no election found")

	// ErrSessionExpired is distinct from ErrElectionNotFound: the election
	// may be fine, but this voter's in-progress ballot is gone.
	ErrSessionExpired = errors.New("no vote in progress")
)

// SessionTTL bounds how long a voter can sit on an unfinished ballot.
const SessionTTL = time.Hour

// VoteSession is one voter's in-flight multi-step ballot. It references its
// election by ID only and re-resolves on every use, so it tolerates the
// election being absent after a restart or restore.
type VoteSession struct {
	User  string `json:"user"`
	Token string `json:"token"`

	Election actions.ElectionID `json:"election"`

	// Where the final voter-count refresh must be posted back to.
	Channel         string `json:"channel"`
	ElectionMessage string `json:"election_message"`

	PartialBallot election.Ballot `json:"partial_ballot"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// ElectionMap owns a guild's elections and the monotonic ID counter.
type ElectionMap struct {
	NextElectionID actions.ElectionID                        `json:"next_election_id"`
	Elections      map[actions.ElectionID]*election.Election `json:"elections"`
}

// Create validates and commits a fully-formed election in one step. On any
// validation failure nothing is stored and the ID counter does not advance.
func (m *ElectionMap) Create(owner string, offices int, reserved []election.Region, candidates []election.Candidate) (actions.ElectionID, error) {
	e := election.New(owner, offices)
	for _, region := range reserved {
		if err := e.ReserveOffice(region); err != nil {
			return 0, err
		}
	}
	for _, c := range candidates {
		e.AddCandidate(c.Name, c.Region)
	}

	if m.Elections == nil {
		m.Elections = make(map[actions.ElectionID]*election.Election)
	}
	id := m.NextElectionID
	m.NextElectionID++
	m.Elections[id] = e
	return id, nil
}

// Get resolves an election from either action branch: an ElectionAction
// directly, a VoteAction through the session's stored election ID. The same
// call site works for both, which is the point of actions.Target.
func (m *ElectionMap) Get(a actions.Action, votes *VoteMap) (*election.Election, error) {
	target := a.Target()
	id := target.Election
	if target.IsVote {
		session, err := votes.Get(target.Vote)
		if err != nil {
			return nil, err
		}
		id = session.Election
	}

	e, ok := m.Elections[id]
	if !ok {
		return nil, fmt.Errorf("%w: election %d", ErrElectionNotFound, id)
	}
	return e, nil
}

// VoteMap owns a guild's in-progress ballot sessions and their ID counter.
type VoteMap struct {
	NextVoteID actions.VoteID                  `json:"next_vote_id"`
	Votes      map[actions.VoteID]*VoteSession `json:"votes"`
}

// Start allocates a session with an empty partial ballot and a one-hour
// expiry, returning the new ID for embedding in the first prompt's tokens.
func (m *VoteMap) Start(electionID actions.ElectionID, user, token, channel, messageID string, now time.Time) actions.VoteID {
	if m.Votes == nil {
		m.Votes = make(map[actions.VoteID]*VoteSession)
	}
	id := m.NextVoteID
	m.NextVoteID++
	m.Votes[id] = &VoteSession{
		User:            user,
		Token:           token,
		Election:        electionID,
		Channel:         channel,
		ElectionMessage: messageID,
		PartialBallot:   election.NewBallot(),
		ExpiresAt:       now.Add(SessionTTL),
	}
	return id
}

func (m *VoteMap) Get(id actions.VoteID) (*VoteSession, error) {
	session, ok := m.Votes[id]
	if !ok {
		return nil, fmt.Errorf("%w: vote %d", ErrSessionExpired, id)
	}
	return session, nil
}

// Remove destroys a session, returning it if it existed.
func (m *VoteMap) Remove(id actions.VoteID) *VoteSession {
	session, ok := m.Votes[id]
	if !ok {
		return nil
	}
	delete(m.Votes, id)
	return session
}

// SaveBallot moves the session's partial ballot into the election, wholly
// replacing any previous ballot from the same voter.
func (m *VoteMap) SaveBallot(id actions.VoteID, elections *ElectionMap) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}
	e, err := elections.Get(actions.VoteAction{ID: id, Kind: actions.SelectVote}, m)
	if err != nil {
		return err
	}

	e.Ballots[session.User] = session.PartialBallot
	session.PartialBallot = election.NewBallot()
	return nil
}

// Expire removes every session whose expiry has passed. Called at the top of
// every dataset access rather than from a timer, so staleness is bounded by
// the access interval, acceptable at this request rate.
func (m *VoteMap) Expire(now time.Time) {
	for id, session := range m.Votes {
		if !session.ExpiresAt.After(now) {
			delete(m.Votes, id)
		}
	}
}
