// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-elect/audit"
	"github.com/danielhkuo/quickly-elect/handlers"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/persist"
	"github.com/danielhkuo/quickly-elect/platform"
	"github.com/danielhkuo/quickly-elect/store"
)

func NewRouter(state *store.GlobalState, pm *persist.Manager, renderer platform.Renderer, auditLog *audit.Log) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	setupHandler := handlers.NewSetupHandler(state, pm)
	interactionHandler := handlers.NewInteractionHandler(state, pm, renderer, auditLog)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election setup (organizer command)
	mux.HandleFunc("POST /elections", middleware.WithLogging(setupHandler.CreateElection))

	// Component events from the chat platform
	mux.HandleFunc("POST /interactions", middleware.WithLogging(interactionHandler.HandleInteraction))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-elect API v1"))
	})

	return mux
}
