// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers.

  - WithLogging: request start/completion logging with a per-request UUID
  - JSONResponse / ErrorResponse: JSON writing helpers
  - ParseJSONBody: request body decoding

Handlers never write to the ResponseWriter directly; everything goes through
JSONResponse so content types and error shapes stay uniform.
*/
package middleware
