// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Retention limits per backup generation.
const (
	keepHistory = 20
	keepHourly  = 24
	keepDaily   = 30
	keepMonthly = math.MaxInt // monthly snapshots are kept forever
)

// Bucket widths in seconds. A persist within the same bucket overwrites the
// same backup file instead of adding one.
const (
	hourSeconds  = 60 * 60
	daySeconds   = hourSeconds * 24
	monthSeconds = daySeconds * 28
)

// Manager writes the dataset to a primary JSON file and maintains four
// rotating backup generations beside it. It is not itself synchronized;
// callers invoke Persist while holding the store's write lock.
type Manager struct {
	// PathBase is the primary file path without the ".json" suffix.
	PathBase string

	// BackupDir holds the history/, hourly/, daily/ and monthly/ generations.
	BackupDir string

	// Now is the clock used for bucket keys. Overridable in tests.
	Now func() time.Time
}

func NewManager(pathBase, backupDir string) *Manager {
	return &Manager{
		PathBase:  pathBase,
		BackupDir: backupDir,
		Now:       time.Now,
	}
}

func (m *Manager) primaryPath() string {
	return m.PathBase + ".json"
}

// Persist snapshots the previous primary into the history generation, writes
// the new primary, then refreshes the bucketed generations. Any I/O failure
// is returned to the caller as a failed operation; the in-memory state the
// caller holds is unaffected and will ride along with the next persist.
func (m *Manager) Persist(data any) error {
	now := m.Now().Unix()
	name := filepath.Base(m.PathBase)

	if err := m.persistFolder("history", fmt.Sprintf("%s-%d.json", name, now), keepHistory); err != nil {
		return fmt.Errorf("while rotating history backups: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("while formatting json: %w", err)
	}
	if err := os.WriteFile(m.primaryPath(), encoded, 0o644); err != nil {
		return fmt.Errorf("while writing data file: %w", err)
	}

	generations := []struct {
		folder string
		bucket int64
		keep   int
	}{
		{"hourly", now / hourSeconds, keepHourly},
		{"daily", now / daySeconds, keepDaily},
		{"monthly", now / monthSeconds, keepMonthly},
	}
	for _, g := range generations {
		filename := fmt.Sprintf("%s-%d.json", name, g.bucket)
		if err := m.persistFolder(g.folder, filename, g.keep); err != nil {
			return fmt.Errorf("while rotating %s backups: %w", g.folder, err)
		}
	}

	return nil
}

// persistFolder copies the current primary file into a generation directory
// under the given name, then prunes the oldest files (by path sort) down to
// the retention limit.
func (m *Manager) persistFolder(folder, filename string, keep int) error {
	dir := filepath.Join(m.BackupDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	src, err := os.ReadFile(m.primaryPath())
	if os.IsNotExist(err) {
		// Nothing to snapshot yet (first ever persist).
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, filename), src, 0o644); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) > keep {
		for _, stale := range names[:len(names)-keep] {
			if err := os.Remove(filepath.Join(dir, stale)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Load reads the primary file into v. A missing file is not an error: it
// reports found=false so a fresh deployment starts empty.
func (m *Manager) Load(v any) (found bool, err error) {
	contents, err := os.ReadFile(m.primaryPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("while reading data file: %w", err)
	}
	if err := json.Unmarshal(contents, v); err != nil {
		return true, fmt.Errorf("while parsing data file: %w", err)
	}
	return true, nil
}
