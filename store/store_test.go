// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/election"
)

func testCandidates() []election.Candidate {
	return []election.Candidate{
		{Name: "alice", Region: "AMER"},
		{Name: "bob", Region: "EMEA"},
	}
}

func TestCreateIsAtomic(t *testing.T) {
	var m ElectionMap

	// Three reservations for two offices must create nothing.
	_, err := m.Create("owner", 2, []election.Region{"AMER", "EMEA", "APAC"}, testCandidates())
	if !errors.Is(err, election.ErrTooManyReservations) {
		t.Fatalf("Expected ErrTooManyReservations, got %v", err)
	}
	if len(m.Elections) != 0 {
		t.Errorf("Failed create must store nothing, have %d elections", len(m.Elections))
	}
	if m.NextElectionID != 0 {
		t.Errorf("Failed create must not burn an ID, counter at %d", m.NextElectionID)
	}

	id, err := m.Create("owner", 2, []election.Region{"AMER"}, testCandidates())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != 0 || m.NextElectionID != 1 {
		t.Errorf("Expected first ID 0 and counter 1, got %d and %d", id, m.NextElectionID)
	}
}

func TestElectionIDsNeverReused(t *testing.T) {
	var m ElectionMap
	first, _ := m.Create("owner", 1, nil, testCandidates())
	second, _ := m.Create("owner", 1, nil, testCandidates())
	if first == second {
		t.Fatalf("IDs must be unique, got %d twice", first)
	}
	if second != first+1 {
		t.Errorf("Counter must only increment, got %d then %d", first, second)
	}
}

func TestGetResolvesBothActionBranches(t *testing.T) {
	var elections ElectionMap
	var votes VoteMap

	id, err := elections.Create("owner", 1, nil, testCandidates())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Direct election action.
	if _, err := elections.Get(actions.ElectionAction{ID: id, Kind: actions.GetResult}, &votes); err != nil {
		t.Errorf("Get by election action failed: %v", err)
	}

	// Indirect through a vote session.
	voteID := votes.Start(id, "user-1", "tok", "chan", "msg", time.Now())
	if _, err := elections.Get(actions.VoteAction{ID: voteID, Kind: actions.SelectVote}, &votes); err != nil {
		t.Errorf("Get by vote action failed: %v", err)
	}

	// Missing election vs missing session are different conditions.
	_, err = elections.Get(actions.ElectionAction{ID: 999, Kind: actions.GetResult}, &votes)
	if !errors.Is(err, ErrElectionNotFound) {
		t.Errorf("Expected ErrElectionNotFound, got %v", err)
	}
	_, err = elections.Get(actions.VoteAction{ID: 999, Kind: actions.SelectVote}, &votes)
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	var elections ElectionMap
	var votes VoteMap
	id, _ := elections.Create("owner", 1, nil, testCandidates())

	now := time.Now()
	voteID := votes.Start(id, "user-1", "tok", "chan", "msg", now)

	// Present before the TTL elapses.
	votes.Expire(now.Add(SessionTTL - time.Minute))
	if _, err := votes.Get(voteID); err != nil {
		t.Fatalf("Session should survive before expiry: %v", err)
	}

	// Absent once the TTL has passed.
	votes.Expire(now.Add(SessionTTL))
	if _, err := votes.Get(voteID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Expected ErrSessionExpired after sweep, got %v", err)
	}
}

func TestSaveBallotOverwrites(t *testing.T) {
	var elections ElectionMap
	var votes VoteMap
	id, _ := elections.Create("owner", 1, nil, testCandidates())
	e := elections.Elections[id]

	// Pre-existing ballot with different entries.
	e.Vote("user-1", "alice", 5)
	e.Vote("user-1", "bob", 5)

	voteID := votes.Start(id, "user-1", "tok", "chan", "msg", time.Now())
	session, _ := votes.Get(voteID)
	session.PartialBallot.Set("alice", 2)

	if err := votes.SaveBallot(voteID, &elections); err != nil {
		t.Fatalf("SaveBallot failed: %v", err)
	}

	// Full replacement, not a merge: bob's old rank must be gone.
	ballot := e.Ballots["user-1"]
	if len(ballot.Votes) != 1 || ballot.Votes["alice"] != 2 {
		t.Errorf("Expected ballot wholly replaced, got %v", ballot.Votes)
	}
}

func TestGuildDataMigration(t *testing.T) {
	raw := `{
		"version": "1",
		"next_election_id": 7,
		"elections": {
			"3": {"owner": "user-9", "offices": 2, "candidates": {"alice": "AMER"}, "reserved_offices": ["AMER"], "ballots": {}}
		},
		"next_vote_id": 4,
		"votes_in_progress": {
			"2": {"user": "user-5", "token": "tok", "election": 3, "channel": "c", "election_message": "m", "partial_ballot": {"votes": {}}, "expires_at": "2099-01-01T00:00:00Z"}
		}
	}`

	var g GuildData
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("Unmarshal v1 failed: %v", err)
	}
	if _, current := g.TryLatest(); current {
		t.Fatal("v1 payload must not report as latest before migration")
	}

	data := g.Latest(time.Now())
	if data.Elections.NextElectionID != 7 || data.Votes.NextVoteID != 4 {
		t.Errorf("Counters must carry over verbatim, got %d and %d",
			data.Elections.NextElectionID, data.Votes.NextVoteID)
	}
	if _, ok := data.Elections.Elections[3]; !ok {
		t.Error("Election 3 lost in migration")
	}
	session, err := data.Votes.Get(2)
	if err != nil {
		t.Fatalf("Vote session lost in migration: %v", err)
	}
	if session.Election != 3 || session.User != "user-5" {
		t.Errorf("Session fields mangled: %+v", session)
	}

	// Only the latest shape is ever written back.
	out, err := json.Marshal(&g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"version":"2"`) {
		t.Errorf("Expected version 2 on the wire, got %s", out)
	}
	if strings.Contains(string(out), "votes_in_progress") {
		t.Errorf("v1 field leaked into output: %s", out)
	}
}

func TestGuildDataRoundTripV2(t *testing.T) {
	g := NewGuildData()
	data := g.Latest(time.Now())
	id, _ := data.Elections.Create("owner", 2, []election.Region{"AMER"}, testCandidates())
	data.Elections.Elections[id].Vote("user-1", "alice", 4)

	out, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back GuildData
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	restored, ok := back.TryLatest()
	if !ok {
		t.Fatal("Round-tripped payload must be latest version")
	}
	e, err := restored.Elections.Get(actions.ElectionAction{ID: id, Kind: actions.GetResult}, &restored.Votes)
	if err != nil {
		t.Fatalf("Election lost in round trip: %v", err)
	}
	if e.Ballots["user-1"].Votes["alice"] != 4 {
		t.Errorf("Ballot lost in round trip: %+v", e.Ballots)
	}
}

func TestUnknownVersionRejected(t *testing.T) {
	var g GuildData
	err := json.Unmarshal([]byte(`{"version": "99"}`), &g)
	if err == nil {
		t.Fatal("Expected an error for unknown schema version")
	}
}

func TestGuildMutCreatesLazily(t *testing.T) {
	d := NewGlobalData()
	if _, ok := d.Guild("g1"); ok {
		t.Fatal("Guild must not exist before first mutable access")
	}
	g := d.GuildMut("g1")
	if g == nil {
		t.Fatal("GuildMut returned nil")
	}
	if again, ok := d.Guild("g1"); !ok || again != g {
		t.Error("Second access must return the same dataset")
	}
}
