// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Log is an append-only record of handled interactions: who triggered which
// action kind in which guild, and when. It stores action kinds only, never
// ballot contents, so it can't be used to reconstruct anyone's votes.
type Log struct {
	db *sql.DB
}

// Entry is one recorded interaction.
type Entry struct {
	GuildID string    `json:"guild_id"`
	UserID  string    `json:"user_id"`
	Action  string    `json:"action"`
	At      time.Time `json:"at"`
}

// Open opens (creating if needed) the audit database at path.
// Safe to call on an existing file - the schema uses IF NOT EXISTS.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one interaction. Failures here are reported but never fail
// the interaction itself; the store, not the audit log, is authoritative.
func (l *Log) Record(guildID, userID, action string) error {
	_, err := l.db.Exec(`
		INSERT INTO interaction_log (guild_id, user_id, action, at)
		VALUES (?, ?, ?, ?)
	`, guildID, userID, action, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}
	return nil
}

// Recent returns the newest entries for a guild, newest first.
func (l *Log) Recent(guildID string, limit int) ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT guild_id, user_id, action, at
		FROM interaction_log
		WHERE guild_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.GuildID, &e.UserID, &e.Action, &e.At); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const schema = `
-- Handled interactions, one row per dispatched action
CREATE TABLE IF NOT EXISTS interaction_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    action TEXT NOT NULL,
    at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interaction_log_guild ON interaction_log(guild_id, id);
`
