// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/danielhkuo/quickly-elect/platform"

// Request types

type CreateElectionRequest struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`

	Offices int `json:"offices"`

	// Comma-separated region names, one reserved office slot per entry.
	ReservedOffices string `json:"reserved_offices"`

	// Comma-separated "name;region" pairs.
	Candidates string `json:"candidates"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID uint64 `json:"election_id"`

	// Message is the rendered election embed with its Vote/Results buttons,
	// ready for the platform glue to post into the organizer's channel.
	Message platform.Message `json:"message"`
}

type AckResponse struct {
	Status string `json:"status"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
