// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/audit"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/persist"
	"github.com/danielhkuo/quickly-elect/platform"
	"github.com/danielhkuo/quickly-elect/store"
)

var errInvalidRank = errors.New("rank must be between 1 and 5")

// InteractionHandler dispatches inbound component events. Every mutating flow
// runs inside one write-lock critical section that ends with a synchronous
// persist; on persist failure the mutation stays live in memory and the
// caller gets a 500.
type InteractionHandler struct {
	state    *store.GlobalState
	persist  *persist.Manager
	renderer platform.Renderer
	audit    *audit.Log

	// Now and Seed are swappable for tests; defaults are wall clock and
	// nanosecond-seeded randomness.
	Now  func() time.Time
	Seed func() int64
}

func NewInteractionHandler(state *store.GlobalState, pm *persist.Manager, renderer platform.Renderer, auditLog *audit.Log) *InteractionHandler {
	return &InteractionHandler{
		state:    state,
		persist:  pm,
		renderer: renderer,
		audit:    auditLog,
		Now:      time.Now,
		Seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// HandleInteraction handles POST /interactions.
//
// Unrecognized custom IDs are dropped, not errored: other integrations share
// the same component namespace and their tokens are none of our business.
func (h *InteractionHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	var ev platform.Interaction
	if err := middleware.ParseJSONBody(r, &ev); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if ev.Guild == "" || ev.User == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guild_id and user_id are required")
		return
	}

	action, err := actions.Decode(ev.CustomID)
	if err != nil {
		slog.Warn("cannot parse custom_id, dropping interaction",
			"custom_id", ev.CustomID, "guild_id", ev.Guild)
		middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Status: "ignored"})
		return
	}
	h.recordAudit(ev, action)

	ctx := r.Context()
	switch a := action.(type) {
	case actions.ElectionAction:
		switch a.Kind {
		case actions.GetResult:
			err = h.state.View(func(d *store.GlobalData) error {
				return h.getResult(ctx, a, ev, d)
			})
		case actions.InitiateVote:
			err = h.mutate(func(d *store.GlobalData) error {
				return h.initiateVote(ctx, a, ev, d)
			})
		}
	case actions.VoteAction:
		err = h.mutate(func(d *store.GlobalData) error {
			switch a.Kind {
			case actions.ConfirmInitiateVote:
				return h.initiateVote(ctx, a, ev, d)
			case actions.SelectVote, actions.SkipVote:
				return h.selectVote(ctx, a, ev, d)
			case actions.CancelVote, actions.VoidBallot:
				return h.stopVote(ctx, a, ev, d)
			}
			return fmt.Errorf("unhandled vote action kind %d", a.Kind)
		})
	}

	if err != nil {
		h.respondError(w, ev, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Status: "ok"})
}

// mutate wraps a write-lock critical section with the mandatory persist.
// The persist runs only if the flow succeeded; its own failure surfaces to
// the caller while the in-memory mutation is deliberately kept.
func (h *InteractionHandler) mutate(fn func(*store.GlobalData) error) error {
	return h.state.Update(func(d *store.GlobalData) error {
		if err := fn(d); err != nil {
			return err
		}
		return h.persist.Persist(d)
	})
}

// initiateVote starts (or restarts) a voter's ballot walk. The session is
// allocated before the existing-ballot check, so the confirmation prompt can
// carry real vote tokens; an abandoned confirmation just expires.
func (h *InteractionHandler) initiateVote(ctx context.Context, action actions.Action, ev platform.Interaction, d *store.GlobalData) error {
	data := d.GuildMut(ev.Guild).Latest(h.Now())

	var voteID actions.VoteID
	confirmed := false
	switch a := action.(type) {
	case actions.ElectionAction:
		voteID = data.Votes.Start(a.ID, ev.User, ev.Token, ev.Channel, ev.Message, h.Now())
	case actions.VoteAction:
		voteID = a.ID
		confirmed = true
	}

	e, err := data.Elections.Get(action, &data.Votes)
	if err != nil {
		return err
	}
	session, err := data.Votes.Get(voteID)
	if err != nil {
		return err
	}

	if existing, has := e.Ballots[ev.User]; has && !confirmed {
		return h.renderer.RespondEphemeral(ctx, ev, confirmMessage(voteID, &existing))
	}
	delete(e.Ballots, ev.User)

	name, ok := e.NextUnranked(&session.PartialBallot)
	if !ok {
		data.Votes.Remove(voteID)
		return fmt.Errorf("election %d has no candidates", session.Election)
	}

	prompt := votePrompt(e, &session.PartialBallot, name, voteID)
	if confirmed {
		// The confirmation prompt hangs off the original interaction's token;
		// rewrite it in place and close out the button click.
		if err := h.renderer.EditReply(ctx, session.Token, prompt); err != nil {
			return err
		}
		return h.renderer.Acknowledge(ctx, ev)
	}
	return h.renderer.RespondEphemeral(ctx, ev, prompt)
}

// selectVote records one rank (or one skip) and advances the walk exactly one
// candidate. On the last candidate the partial ballot is committed whole.
func (h *InteractionHandler) selectVote(ctx context.Context, a actions.VoteAction, ev platform.Interaction, d *store.GlobalData) error {
	data := d.GuildMut(ev.Guild).Latest(h.Now())

	e, err := data.Elections.Get(a, &data.Votes)
	if err != nil {
		return err
	}
	session, err := data.Votes.Get(a.ID)
	if err != nil {
		return err
	}

	name, ok := e.NextUnranked(&session.PartialBallot)
	if ok {
		if a.Kind == actions.SkipVote {
			session.PartialBallot.Set(name, 0)
		} else {
			if len(ev.Values) != 1 {
				return fmt.Errorf("%w: expected one selection, got %d", errInvalidRank, len(ev.Values))
			}
			rank, err := strconv.Atoi(ev.Values[0])
			if err != nil || rank < 1 || rank > 5 {
				return fmt.Errorf("%w: %q", errInvalidRank, ev.Values[0])
			}
			session.PartialBallot.Set(name, rank)
		}
	}

	if next, more := e.NextUnranked(&session.PartialBallot); more {
		if err := h.renderer.EditReply(ctx, session.Token, votePrompt(e, &session.PartialBallot, next, a.ID)); err != nil {
			return err
		}
		return h.renderer.Acknowledge(ctx, ev)
	}

	// Ballot complete: thank the voter, commit, refresh the voter count.
	if err := h.renderer.EditReply(ctx, session.Token, platform.Message{Content: "Thank you for voting!"}); err != nil {
		return err
	}
	if err := data.Votes.SaveBallot(a.ID, &data.Elections); err != nil {
		return err
	}
	if err := h.updateElection(ctx, data, session); err != nil {
		return err
	}
	data.Votes.Remove(a.ID)

	slog.Info("ballot recorded",
		"guild_id", ev.Guild, "election_id", session.Election, "voters", e.VoterCount())
	return h.renderer.Acknowledge(ctx, ev)
}

// stopVote ends a walk early: VoidBallot also deletes any committed ballot,
// CancelVote leaves the existing ballot untouched.
func (h *InteractionHandler) stopVote(ctx context.Context, a actions.VoteAction, ev platform.Interaction, d *store.GlobalData) error {
	data := d.GuildMut(ev.Guild).Latest(h.Now())

	e, err := data.Elections.Get(a, &data.Votes)
	if err != nil {
		return err
	}
	session, err := data.Votes.Get(a.ID)
	if err != nil {
		return err
	}

	if a.Kind == actions.VoidBallot {
		delete(e.Ballots, ev.User)
		msg := platform.Message{Content: "Your vote has been deleted.\nUse the vote button to vote again!"}
		if err := h.renderer.EditReply(ctx, session.Token, msg); err != nil {
			return err
		}
	} else {
		if err := h.renderer.DeleteReply(ctx, session.Token); err != nil {
			return err
		}
	}

	if err := h.updateElection(ctx, data, session); err != nil {
		return err
	}
	data.Votes.Remove(a.ID)
	return h.renderer.Acknowledge(ctx, ev)
}

// getResult tallies under the read lock. Results are gated to the election
// owner; an unfillable office count renders as an outcome, never an error.
func (h *InteractionHandler) getResult(ctx context.Context, a actions.ElectionAction, ev platform.Interaction, d *store.GlobalData) error {
	g, ok := d.Guild(ev.Guild)
	if !ok {
		return fmt.Errorf("%w: guild %s has no elections", store.ErrElectionNotFound, ev.Guild)
	}
	data, ok := g.TryLatest()
	if !ok {
		return fmt.Errorf("guild %s data has not been migrated", ev.Guild)
	}

	e, err := data.Elections.Get(a, &data.Votes)
	if err != nil {
		return err
	}
	if e.Owner != ev.User {
		return h.renderer.RespondEphemeral(ctx, ev, platform.Message{
			Content: "Only the creator of an election can view the results",
		})
	}

	rng := rand.New(rand.NewSource(h.Seed()))
	winners, filled := e.Assign(e.Tally(rng))
	slog.Info("results computed",
		"guild_id", ev.Guild, "election_id", a.ID, "filled", filled, "winners", len(winners))
	return h.renderer.RespondEphemeral(ctx, ev, resultMessage(winners, filled))
}

// updateElection re-renders the public election embed after any change to the
// ballot set, using the channel/message reference captured at session start.
func (h *InteractionHandler) updateElection(ctx context.Context, data *store.Dataset, session *store.VoteSession) error {
	e, ok := data.Elections.Elections[session.Election]
	if !ok {
		return fmt.Errorf("%w: election %d", store.ErrElectionNotFound, session.Election)
	}
	return h.renderer.UpdateMessage(ctx, session.Channel, session.ElectionMessage,
		electionMessage(session.Election, e))
}

func (h *InteractionHandler) recordAudit(ev platform.Interaction, action actions.Action) {
	if h.audit == nil {
		return
	}
	if err := h.audit.Record(ev.Guild, ev.User, actions.Encode(action)); err != nil {
		slog.Warn("audit write failed", "guild_id", ev.Guild, "error", err)
	}
}

func (h *InteractionHandler) respondError(w http.ResponseWriter, ev platform.Interaction, err error) {
	switch {
	case errors.Is(err, store.ErrElectionNotFound), errors.Is(err, store.ErrSessionExpired):
		slog.Warn("interaction referenced missing state",
			"guild_id", ev.Guild, "custom_id", ev.CustomID, "error", err)
		middleware.ErrorResponse(w, http.StatusNotFound,
			"This election or vote could not be found. It may predate a restart, or the voting session may have expired.")
	case errors.Is(err, errInvalidRank):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("interaction failed",
			"guild_id", ev.Guild, "custom_id", ev.CustomID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to process interaction")
	}
}
