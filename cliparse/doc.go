// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

Flags take priority, environment variables fill the gaps, and storage paths
have working defaults so a bare `quickly-elect -u <url>` runs:

  - PORT (-p): HTTP port (default 3319)
  - PLATFORM_URL (-u): chat platform callback base URL (required)
  - DATA_PATH (-f): data file path base, ".json" appended (default "elections")
  - BACKUP_DIR (-b): backup generations directory (default "bku")
  - AUDIT_DB (-a): audit log SQLite path (default "audit.db")

Secrets for the platform connection itself (signing keys etc.) belong to the
platform glue, not here.
*/
package cliparse
