// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface: election setup and component
interaction dispatch.

# Setup

POST /elections validates the organizer's request (office count, reserved
regions, "name;region" candidate entries) before taking the write lock, then
creates the election and returns the rendered embed for the platform glue to
post. Validation failures never advance the election ID counter.

# Interactions

POST /interactions carries one component event: a button click or a menu
selection. The custom ID decodes to an action; tokens the codec does not
recognize are logged and dropped with a 200, since the component namespace is
shared with other integrations.

The ballot walk advances exactly one candidate per interaction. The next
candidate is always recomputed as the first unranked name in canonical order,
never tracked as a counter, so a re-delivered event cannot double-advance the
walk. Skip records rank 0; Stop Voting deletes any committed ballot; the walk
completing commits the partial ballot as a whole, replacing any previous
ballot from the same voter.

# Locking and persistence

Every mutating flow runs inside one GlobalState.Update critical section that
ends with a synchronous persist. If the persist fails the mutation is kept in
memory and the response is a 500: the voter's action took effect, durability
did not. Result computation runs under the read lock and never mutates.

# Rendering

All outbound prompts go through platform.Renderer. Handlers are tested
against a recording fake; the production wiring uses the webhook client.
*/
package handlers
