// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/persist"
	"github.com/danielhkuo/quickly-elect/store"
)

// SetupHandler creates elections from the organizer-facing setup command.
type SetupHandler struct {
	state   *store.GlobalState
	persist *persist.Manager

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewSetupHandler(state *store.GlobalState, pm *persist.Manager) *SetupHandler {
	return &SetupHandler{state: state, persist: pm, Now: time.Now}
}

// CreateElection handles POST /elections. Validation happens before the write
// lock is taken; a rejected request never burns an election ID.
func (h *SetupHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.GuildID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guild_id and user_id are required")
		return
	}
	if req.Offices < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "offices must be at least 1")
		return
	}

	candidates, err := election.ParseCandidates(req.Candidates)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(candidates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one candidate is required")
		return
	}
	reserved := election.ParseReservations(req.ReservedOffices)

	var resp models.CreateElectionResponse
	err = h.state.Update(func(d *store.GlobalData) error {
		data := d.GuildMut(req.GuildID).Latest(h.Now())

		id, err := data.Elections.Create(req.UserID, req.Offices, reserved, candidates)
		if err != nil {
			return err
		}
		resp = models.CreateElectionResponse{
			ElectionID: uint64(id),
			Message:    electionMessage(id, data.Elections.Elections[id]),
		}
		return h.persist.Persist(d)
	})
	if err != nil {
		if errors.Is(err, election.ErrTooManyReservations) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		// Persist failure: the election stays live in memory, but the caller
		// must know durability is gone.
		slog.Error("failed to create election", "guild_id", req.GuildID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save election data")
		return
	}

	slog.Info("election created",
		"guild_id", req.GuildID,
		"election_id", resp.ElectionID,
		"offices", req.Offices,
		"candidates", len(candidates),
	)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}
