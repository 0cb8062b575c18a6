// Package wa is a REST client for a self-hosted WhatsApp HTTP gateway.
// It implements the destination-platform surface the dispatcher and
// recipient resolver need: plain sends, mention sends, and group
// membership lookups.
package wa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	sendPath         = "/api/send"
	participantsPath = "/api/groups/%s/participants"

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
)

var (
	errSendStatus         = errors.New("wa gateway send: unexpected status")
	errParticipantsStatus = errors.New("wa gateway participants: unexpected status")
)

// Config holds gateway connection settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the WhatsApp gateway over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendRequest struct {
	Recipient string   `json:"recipient"`
	Text      string   `json:"text"`
	Mentions  []string `json:"mentions,omitempty"`
}

type participantsResponse struct {
	Participants []string `json:"participants"`
}

// SendText delivers plain text to one recipient.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	return c.post(ctx, sendRequest{Recipient: recipientID, Text: text})
}

// SendTextWithMentions delivers text with the given member identifiers
// attached as mention targets.
func (c *Client) SendTextWithMentions(ctx context.Context, recipientID, text string, memberIDs []string) error {
	return c.post(ctx, sendRequest{Recipient: recipientID, Text: text, Mentions: memberIDs})
}

// GroupMembers fetches the ordered member identifiers of a group.
func (c *Client) GroupMembers(ctx context.Context, groupID string) ([]string, error) {
	endpoint := c.baseURL + fmt.Sprintf(participantsPath, url.PathEscape(groupID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wa gateway participants request: %w", err)
	}

	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wa gateway participants: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errParticipantsStatus, resp.StatusCode)
	}

	var parsed participantsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("wa gateway participants decode: %w", err)
	}

	return parsed.Participants, nil
}

func (c *Client) post(ctx context.Context, payload sendRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("wa gateway send encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("wa gateway send request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wa gateway send: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", errSendStatus, resp.StatusCode)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+c.token)
	}
}
