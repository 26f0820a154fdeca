// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WebhookClient renders through the chat platform's HTTP callback API. Each
// outbound call happens inside the store's critical section, so the request
// timeout also bounds how long one interaction can hold the lock.
type WebhookClient struct {
	base   string
	client *http.Client
}

func NewWebhookClient(baseURL string) *WebhookClient {
	return &WebhookClient{
		base:   baseURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WebhookClient) RespondEphemeral(ctx context.Context, i Interaction, msg Message) error {
	body := struct {
		Message
		Ephemeral bool `json:"ephemeral"`
	}{Message: msg, Ephemeral: true}
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("/interactions/%s/respond", url.PathEscape(i.Token)), body)
}

func (c *WebhookClient) Acknowledge(ctx context.Context, i Interaction) error {
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("/interactions/%s/ack", url.PathEscape(i.Token)), nil)
}

func (c *WebhookClient) EditReply(ctx context.Context, token string, msg Message) error {
	return c.send(ctx, http.MethodPatch,
		fmt.Sprintf("/interactions/%s/reply", url.PathEscape(token)), msg)
}

func (c *WebhookClient) DeleteReply(ctx context.Context, token string) error {
	return c.send(ctx, http.MethodDelete,
		fmt.Sprintf("/interactions/%s/reply", url.PathEscape(token)), nil)
}

func (c *WebhookClient) UpdateMessage(ctx context.Context, channel, message string, msg Message) error {
	return c.send(ctx, http.MethodPatch,
		fmt.Sprintf("/channels/%s/messages/%s", url.PathEscape(channel), url.PathEscape(message)), msg)
}

func (c *WebhookClient) send(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("platform call %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("platform call %s %s returned %d", method, path, resp.StatusCode)
	}
	return nil
}
