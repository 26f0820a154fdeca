// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "sync"

// GlobalData is the process-wide aggregate: every guild's dataset, persisted
// as one unit. Guild datasets are created lazily and live for the process
// lifetime.
type GlobalData struct {
	Guilds map[string]*GuildData `json:"guilds"`
}

func NewGlobalData() *GlobalData {
	return &GlobalData{Guilds: make(map[string]*GuildData)}
}

// Guild returns an existing guild dataset without creating one.
func (d *GlobalData) Guild(id string) (*GuildData, bool) {
	g, ok := d.Guilds[id]
	return g, ok
}

// GuildMut returns the guild dataset, creating it on first access.
func (d *GlobalData) GuildMut(id string) *GuildData {
	if d.Guilds == nil {
		d.Guilds = make(map[string]*GuildData)
	}
	g, ok := d.Guilds[id]
	if !ok {
		g = NewGuildData()
		d.Guilds[id] = g
	}
	return g
}

// Migrate upgrades every guild payload to the latest shape. Called once after
// load, before the state is shared.
func (d *GlobalData) Migrate() {
	for _, g := range d.Guilds {
		g.migrate()
	}
}

// GlobalState guards the aggregate with one process-wide reader/writer lock.
// The lock is the only correctness boundary: the event loop may have several
// interactions in flight at once, and each one's critical section, including
// outbound renders and the synchronous persist, runs entirely inside Update
// or View. There is no per-election locking and no lock timeout; requests
// queue behind the current holder.
type GlobalState struct {
	mu   sync.RWMutex
	data *GlobalData
}

func NewGlobalState(data *GlobalData) *GlobalState {
	return &GlobalState{data: data}
}

// Update runs fn under the write lock.
func (s *GlobalState) Update(fn func(*GlobalData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// View runs fn under the read lock. fn must not mutate the aggregate.
func (s *GlobalState) View(fn func(*GlobalData) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}
