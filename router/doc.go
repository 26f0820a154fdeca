// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Elect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(state, pm, renderer, auditLog)

# Endpoints

Health:

	GET /health

Election setup (organizer command, via platform glue):

	POST /elections - Create election, returns the rendered embed to post

Component events (buttons and select menus, via platform glue):

	POST /interactions - Dispatch one interaction by its custom ID token

# Handler Initialization

The router creates handler instances with dependency injection:

	setupHandler := handlers.NewSetupHandler(state, pm)
	interactionHandler := handlers.NewInteractionHandler(state, pm, renderer, auditLog)

Handlers share one global state, one persist manager, and one renderer.
*/
package router
