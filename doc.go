// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Elect API server.

Quickly Elect runs ranked elections inside a chat workspace: an organizer
posts an election with a fixed number of offices (some optionally reserved
for a region), members rank candidates 1-5 one at a time through ephemeral
prompts, and the organizer reads back a quota-aware greedy assignment of
candidates to offices.

# Starting the Server

The server requires a platform callback URL, via environment or CLI flags:

	PLATFORM_URL=https://chat.example/api go run .

Or with flags:

	go run . -p 3319 -u "https://chat.example/api"

# Configuration

Required settings:

  - PLATFORM_URL (-u): Base URL for chat platform callbacks

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATA_PATH (-f): Data file path base, ".json" appended (default: elections)
  - BACKUP_DIR (-b): Backup rotation directory (default: bku)
  - AUDIT_DB (-a): Audit log SQLite path (default: audit.db)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: Election setup and interaction dispatch
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, JSON helpers
  - models: Request/response types
  - actions: Callback token codec
  - election: Ballots, tally, office assignment
  - store: In-memory state, versioned guild datasets, the global lock
  - persist: JSON persistence with rotating backups
  - platform: Chat platform types and webhook renderer
  - audit: SQLite interaction log
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
