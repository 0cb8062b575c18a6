// Package discord is a minimal source-platform client: a gateway
// session for live message events and the single REST call the bridge
// needs for startup cache warm-up.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dikacakep/stock-bridge/internal/ingest"
	"github.com/dikacakep/stock-bridge/internal/report"
)

const (
	defaultGatewayURL  = "wss://gateway.discord.gg/?v=10&encoding=json"
	defaultAPIBaseURL  = "https://discord.com/api/v10"
	defaultHTTPTimeout = 30 * time.Second

	authorizationPrefix = "Bot "
)

var errUnexpectedStatus = errors.New("discord api: unexpected status")

// Config holds connection settings for the Discord client.
type Config struct {
	Token      string
	GatewayURL string
	APIBaseURL string
}

// Client implements ingest.Source against the Discord gateway and
// REST API.
type Client struct {
	token      string
	gatewayURL string
	apiBaseURL string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func New(cfg Config, logger *zerolog.Logger) *Client {
	gatewayURL := cfg.GatewayURL
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}

	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	return &Client{
		token:      cfg.Token,
		gatewayURL: gatewayURL,
		apiBaseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger: logger,
	}
}

// LatestMessage fetches the most recent message in a channel via REST,
// or nil if the channel has none.
func (c *Client) LatestMessage(ctx context.Context, channelID string) (*ingest.Message, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/messages?limit=1", c.apiBaseURL, url.PathEscape(channelID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("latest message request: %w", err)
	}

	req.Header.Set("Authorization", authorizationPrefix+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("latest message: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	var messages []wireMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("latest message decode: %w", err)
	}

	if len(messages) == 0 {
		return nil, nil
	}

	msg := messages[0].toIngest()

	return &msg, nil
}

type wireMessage struct {
	ID        string      `json:"id"`
	ChannelID string      `json:"channel_id"`
	WebhookID string      `json:"webhook_id"`
	Author    wireAuthor  `json:"author"`
	Embeds    []wireEmbed `json:"embeds"`
}

type wireAuthor struct {
	Bot bool `json:"bot"`
}

type wireEmbed struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Fields      []wireEmbedField `json:"fields"`
}

type wireEmbedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (m wireMessage) toIngest() ingest.Message {
	embeds := make([]report.Notification, 0, len(m.Embeds))

	for _, e := range m.Embeds {
		fields := make([]report.Field, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, report.Field{Name: f.Name, Value: f.Value})
		}

		embeds = append(embeds, report.Notification{
			Title:       e.Title,
			Description: e.Description,
			Fields:      fields,
		})
	}

	return ingest.Message{
		ID:            m.ID,
		ChannelID:     m.ChannelID,
		AuthorIsBot:   m.Author.Bot,
		WebhookOrigin: m.WebhookID != "",
		Embeds:        embeds,
	}
}
