// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit keeps an append-only SQLite log of handled interactions.

Each dispatched action writes one row: guild, actor, action token, timestamp.
Ballot contents are deliberately never recorded; the log answers "who was
clicking what, when" for operational debugging, not "who voted for whom".

Audit writes are best-effort: a failure is logged by the caller and the
interaction proceeds. The JSON dataset in package persist stays the single
source of truth.
*/
package audit
