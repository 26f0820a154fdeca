// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"path/filepath"
	"testing"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Failed to open audit log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLog(t)

	actions := []string{"el:0:init", "vt:0:sel", "vt:0:sel", "el:0:res"}
	for _, a := range actions {
		if err := l.Record("guild-1", "user-1", a); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := l.Record("guild-2", "user-9", "el:4:init"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := l.Recent("guild-1", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries for guild-1, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Action != "el:0:res" {
		t.Errorf("Expected newest entry first, got %q", entries[0].Action)
	}
	for _, e := range entries {
		if e.GuildID != "guild-1" {
			t.Errorf("Foreign guild entry leaked: %+v", e)
		}
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	l := openTestLog(t)
	for range 10 {
		if err := l.Record("guild-1", "user-1", "vt:1:skip"); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := l.Recent("guild-1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record("g", "u", "el:0:init"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	entries, err := second.Recent("g", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Entry lost across reopen, got %d", len(entries))
	}
}
