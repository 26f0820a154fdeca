// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package actions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDecode is returned for tokens this codec did not produce.
// Callers log and drop the event; a stale or foreign token is never fatal.
var ErrDecode = errors.New("unrecognized action token")

// ElectionID identifies an election within a guild. IDs are issued from a
// per-guild counter that only increments, so an ID is never reused.
type ElectionID uint64

// VoteID identifies an in-progress ballot session within a guild.
type VoteID uint64

// ElectionKind enumerates actions scoped to an election message.
type ElectionKind int

const (
	InitiateVote ElectionKind = iota
	GetResult
)

// VoteKind enumerates actions scoped to a ballot session.
type VoteKind int

const (
	ConfirmInitiateVote VoteKind = iota
	SelectVote
	SkipVote
	CancelVote
	VoidBallot
)

// Action is the closed union embedded in UI callback tokens. The only
// implementations are ElectionAction and VoteAction.
type Action interface {
	// Target resolves the action to the ID space it addresses, so stores can
	// share one lookup path for both branches.
	Target() Target

	isAction()
}

type ElectionAction struct {
	ID   ElectionID
	Kind ElectionKind
}

type VoteAction struct {
	ID   VoteID
	Kind VoteKind
}

func (ElectionAction) isAction() {}
func (VoteAction) isAction()     {}

// Target is the Either of the two ID spaces an action can address.
type Target struct {
	Election ElectionID
	Vote     VoteID
	IsVote   bool
}

func (a ElectionAction) Target() Target {
	return Target{Election: a.ID}
}

func (a VoteAction) Target() Target {
	return Target{Vote: a.ID, IsVote: true}
}

// Wire discriminators. These are persisted inside rendered messages, so they
// must stay stable across releases: buttons rendered before a restart must
// remain decodable after.
const (
	prefixElection = "el"
	prefixVote     = "vt"
)

var electionKindTokens = map[ElectionKind]string{
	InitiateVote: "init",
	GetResult:    "res",
}

var voteKindTokens = map[VoteKind]string{
	ConfirmInitiateVote: "conf",
	SelectVote:          "sel",
	SkipVote:            "skip",
	CancelVote:          "keep",
	VoidBallot:          "void",
}

// Encode serializes an action into an opaque callback token, e.g. "el:3:init"
// or "vt:12:sel". The encoding embeds no timestamps or salts.
func Encode(a Action) string {
	switch a := a.(type) {
	case ElectionAction:
		return fmt.Sprintf("%s:%d:%s", prefixElection, a.ID, electionKindTokens[a.Kind])
	case VoteAction:
		return fmt.Sprintf("%s:%d:%s", prefixVote, a.ID, voteKindTokens[a.Kind])
	default:
		// The union is closed; this is unreachable for real actions.
		panic(fmt.Sprintf("actions: unknown action type %T", a))
	}
}

// Decode parses a callback token back into an action. Tokens with unknown
// prefixes or kind discriminators yield ErrDecode rather than a panic, so
// future or foreign tokens degrade to a dropped event.
func Decode(token string) (Action, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrDecode, token)
	}

	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad id in %q", ErrDecode, token)
	}

	switch parts[0] {
	case prefixElection:
		for kind, tok := range electionKindTokens {
			if tok == parts[2] {
				return ElectionAction{ID: ElectionID(id), Kind: kind}, nil
			}
		}
	case prefixVote:
		for kind, tok := range voteKindTokens {
			if tok == parts[2] {
				return VoteAction{ID: VoteID(id), Kind: kind}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrDecode, token)
}
