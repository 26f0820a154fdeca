// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns the process-wide election and vote-session state.

# Shape

	GlobalState (one RW lock)
	  └─ GlobalData: guild id → GuildData
	       └─ Dataset (version "2")
	            ├─ ElectionMap: next_election_id, election id → Election
	            └─ VoteMap: next_vote_id, vote id → VoteSession

Vote sessions reference their election by ID only, never a pointer, and
resolve through ElectionMap.Get on every use. A missing session surfaces as
ErrSessionExpired; a missing election as ErrElectionNotFound. The two read
differently to the voter and must stay distinct.

# Locking Discipline

All mutating flows run inside GlobalState.Update (write lock) for their whole
critical section, outbound message rendering and persistence included; result
queries run inside View (read lock). Nothing else synchronizes, so nothing
outside Update/View may touch the aggregate.

# Versioned Schema

Guild payloads carry a "version" discriminator on disk. Version "1" (flat
maps) is migrated to "2" in memory on first access: the new shape is built,
counters and maps carried over verbatim, and the old value discarded. Only
version "2" is ever marshalled.

# Session Expiry

Sessions expire one hour after start. GuildData.Latest sweeps expired
sessions opportunistically on every access; there is no background timer, so
a session may linger up to one access interval past its expiry.
*/
package store
