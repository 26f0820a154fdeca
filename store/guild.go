// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/election"
)

// Dataset is the current (version "2") per-guild shape: elections and vote
// sessions each under their own counter.
type Dataset struct {
	Elections ElectionMap `json:"elections"`
	Votes     VoteMap     `json:"votes"`
}

// v1Data is the flat original schema, kept only as migration input.
type v1Data struct {
	NextElectionID actions.ElectionID                        `json:"next_election_id"`
	Elections      map[actions.ElectionID]*election.Election `json:"elections"`

	NextVoteID      actions.VoteID                  `json:"next_vote_id"`
	VotesInProgress map[actions.VoteID]*VoteSession `json:"votes_in_progress"`
}

// GuildData is a guild payload of any known on-disk version. Old versions are
// migrated in memory the first time the data is touched; only the latest
// shape is ever written back out.
type GuildData struct {
	v2 *Dataset
	v1 *v1Data
}

func NewGuildData() *GuildData {
	return &GuildData{v2: &Dataset{}}
}

// Latest migrates to the current shape if needed, sweeps expired sessions,
// and returns the live dataset. All mutating access goes through here.
func (g *GuildData) Latest(now time.Time) *Dataset {
	g.migrate()
	g.v2.Votes.Expire(now)
	return g.v2
}

// TryLatest returns the dataset only if it is already current. Read-only
// paths use this so they never mutate under a read lock.
func (g *GuildData) TryLatest() (*Dataset, bool) {
	if g.v2 == nil {
		return nil, false
	}
	return g.v2, true
}

// migrate constructs the new shape from the old and discards the old; it
// never rewrites v1 data in place. Counters and entity maps carry verbatim.
func (g *GuildData) migrate() {
	if g.v2 != nil {
		return
	}
	old := g.v1
	g.v1 = nil
	g.v2 = &Dataset{
		Elections: ElectionMap{
			NextElectionID: old.NextElectionID,
			Elections:      old.Elections,
		},
		Votes: VoteMap{
			NextVoteID: old.NextVoteID,
			Votes:      old.VotesInProgress,
		},
	}
}

type versionProbe struct {
	Version string `json:"version"`
}

func (g *GuildData) UnmarshalJSON(data []byte) error {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Version {
	case "1":
		var v1 v1Data
		if err := json.Unmarshal(data, &v1); err != nil {
			return err
		}
		*g = GuildData{v1: &v1}
		return nil
	case "2":
		var v2 Dataset
		if err := json.Unmarshal(data, &v2); err != nil {
			return err
		}
		*g = GuildData{v2: &v2}
		return nil
	default:
		return fmt.Errorf("unknown guild data version %q", probe.Version)
	}
}

func (g *GuildData) MarshalJSON() ([]byte, error) {
	g.migrate()
	return json.Marshal(struct {
		Version string `json:"version"`
		*Dataset
	}{Version: "2", Dataset: g.v2})
}
