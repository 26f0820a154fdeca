// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the HTTP surface.

# Request Types

  - CreateElectionRequest: guild_id, user_id, offices, reserved_offices,
    candidates (the setup command payload)
  - platform.Interaction doubles as the inbound body of POST /interactions

# Response Types

  - CreateElectionResponse: election_id plus the rendered election message
  - AckResponse: status for dispatched (or dropped) interactions
  - ErrorResponse: error, message

The interactive prompt shapes (embeds, buttons, menus) live in package
platform, since they are the contract with the chat platform rather than
with this API's callers.
*/
package models
