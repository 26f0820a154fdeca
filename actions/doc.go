// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package actions defines the action codec for interactive UI callbacks.

Every button and select menu the bot renders carries an opaque token produced
by Encode. When the platform delivers the interaction back, Decode recovers
which election or ballot session the click belongs to, since the process keeps no
per-message state, so the token is the only link.

# Action Union

Two branches, each with a closed set of kinds:

  - ElectionAction: InitiateVote, GetResult
  - VoteAction: ConfirmInitiateVote, SelectVote, SkipVote, CancelVote, VoidBallot

Adding a kind means adding a wire discriminator here; the type switch in the
interaction dispatcher is exhaustive over the union.

# Wire Format

Tokens are colon-delimited and deliberately dumb:

	el:<election_id>:init
	vt:<vote_id>:sel

No timestamps, no salts, no versions: a token rendered before a process
restart decodes identically after it. Unknown tokens return ErrDecode and the
event is dropped; a stale button from last month must never crash the loop.

# ID Resolution

Target collapses both branches to "which ID space does this address", so the
election store can accept either an ElectionAction (direct lookup) or a
VoteAction (indirect through the session's stored ElectionID) at the same
call site.
*/
package actions
