// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/persist"
	"github.com/danielhkuo/quickly-elect/platform"
	"github.com/danielhkuo/quickly-elect/store"
)

// NewState returns an empty in-memory state
func NewState() *store.GlobalState {
	return store.NewGlobalState(store.NewGlobalData())
}

// NewPersistManager returns a persist manager rooted in a test temp dir
func NewPersistManager(t *testing.T) *persist.Manager {
	t.Helper()
	dir := t.TempDir()
	return persist.NewManager(filepath.Join(dir, "elections"), filepath.Join(dir, "bku"))
}

// CreateTestElection creates an election directly in the state and returns its ID.
// Candidate entries use the "name;region" form accepted by the setup surface.
func CreateTestElection(t *testing.T, state *store.GlobalState, guild, owner string, offices int, reserved string, candidates string) actions.ElectionID {
	t.Helper()

	parsed, err := election.ParseCandidates(candidates)
	if err != nil {
		t.Fatalf("Failed to parse test candidates: %v", err)
	}

	var id actions.ElectionID
	err = state.Update(func(d *store.GlobalData) error {
		data := d.GuildMut(guild).Latest(time.Now())
		var err error
		id, err = data.Elections.Create(owner, offices, election.ParseReservations(reserved), parsed)
		return err
	})
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	return id
}

// Interaction builds a component event with sensible channel/message defaults
func Interaction(guild, user, token, customID string, values ...string) platform.Interaction {
	return platform.Interaction{
		Guild:    guild,
		User:     user,
		Token:    token,
		Channel:  "chan-1",
		Message:  "msg-1",
		CustomID: customID,
		Values:   values,
	}
}

// RenderedPrompt is one recorded RespondEphemeral call
type RenderedPrompt struct {
	Interaction platform.Interaction
	Message     platform.Message
}

// RenderedEdit is one recorded EditReply call
type RenderedEdit struct {
	Token   string
	Message platform.Message
}

// RenderedUpdate is one recorded UpdateMessage call
type RenderedUpdate struct {
	Channel string
	Message string
	Msg     platform.Message
}

// FakeRenderer records every outbound render for assertion. When FailWith is
// set, every call returns that error instead.
type FakeRenderer struct {
	mu sync.Mutex

	Prompts []RenderedPrompt
	Edits   []RenderedEdit
	Deletes []string
	Acks    []platform.Interaction
	Updates []RenderedUpdate

	FailWith error
}

func (f *FakeRenderer) RespondEphemeral(_ context.Context, i platform.Interaction, msg platform.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Prompts = append(f.Prompts, RenderedPrompt{Interaction: i, Message: msg})
	return nil
}

func (f *FakeRenderer) Acknowledge(_ context.Context, i platform.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Acks = append(f.Acks, i)
	return nil
}

func (f *FakeRenderer) EditReply(_ context.Context, token string, msg platform.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Edits = append(f.Edits, RenderedEdit{Token: token, Message: msg})
	return nil
}

func (f *FakeRenderer) DeleteReply(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Deletes = append(f.Deletes, token)
	return nil
}

func (f *FakeRenderer) UpdateMessage(_ context.Context, channel, message string, msg platform.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Updates = append(f.Updates, RenderedUpdate{Channel: channel, Message: message, Msg: msg})
	return nil
}

// LastEdit returns the most recent EditReply, failing the test if none happened
func (f *FakeRenderer) LastEdit(t *testing.T) RenderedEdit {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Edits) == 0 {
		t.Fatal("Expected at least one prompt edit, got none")
	}
	return f.Edits[len(f.Edits)-1]
}

// LastPrompt returns the most recent RespondEphemeral, failing the test if none happened
func (f *FakeRenderer) LastPrompt(t *testing.T) RenderedPrompt {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Prompts) == 0 {
		t.Fatal("Expected at least one ephemeral prompt, got none")
	}
	return f.Prompts[len(f.Prompts)-1]
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
