// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package platform

import "context"

// Interaction is one inbound component event: somebody clicked a button or
// picked a menu value in the chat workspace. The custom ID is an opaque
// action token; the reply token addresses the ephemeral prompt thread.
type Interaction struct {
	Guild    string   `json:"guild_id"`
	User     string   `json:"user_id"`
	Token    string   `json:"token"`
	Channel  string   `json:"channel_id"`
	Message  string   `json:"message_id"`
	CustomID string   `json:"custom_id"`
	Values   []string `json:"values,omitempty"`
}

// Button styles understood by the chat platform.
const (
	StylePrimary   = "primary"
	StyleSecondary = "secondary"
	StyleDanger    = "danger"
)

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title  string  `json:"title,omitempty"`
	Color  int     `json:"color,omitempty"`
	Fields []Field `json:"fields,omitempty"`
}

type Button struct {
	CustomID string `json:"custom_id"`
	Label    string `json:"label"`
	Style    string `json:"style,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SelectMenu struct {
	CustomID string         `json:"custom_id"`
	Options  []SelectOption `json:"options"`
}

// Message is an outbound prompt, prompt edit, or message update.
type Message struct {
	Content string      `json:"content,omitempty"`
	Embeds  []Embed     `json:"embeds"`
	Buttons []Button    `json:"buttons"`
	Menu    *SelectMenu `json:"menu,omitempty"`
}

// Renderer is everything the election core asks of the chat platform. The
// core never touches the platform client library directly; handler logic is
// written against this interface and tested against a recording fake.
type Renderer interface {
	// RespondEphemeral answers an interaction with a prompt only the actor
	// can see.
	RespondEphemeral(ctx context.Context, i Interaction, msg Message) error

	// Acknowledge closes out an interaction without a visible response.
	Acknowledge(ctx context.Context, i Interaction) error

	// EditReply rewrites the ephemeral prompt addressed by a reply token.
	EditReply(ctx context.Context, token string, msg Message) error

	// DeleteReply removes the ephemeral prompt addressed by a reply token.
	DeleteReply(ctx context.Context, token string) error

	// UpdateMessage edits a regular channel message (the election embed).
	UpdateMessage(ctx context.Context, channel, message string, msg Message) error
}
