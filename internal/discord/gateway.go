package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dikacakep/stock-bridge/internal/ingest"
)

// Gateway opcodes (Discord gateway v10).
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// Gateway intents: guilds, guild messages, message content.
const identifyIntents = 1<<0 | 1<<9 | 1<<15

const (
	eventMessageCreate = "MESSAGE_CREATE"
	closeWriteTimeout  = time.Second
)

var (
	errGatewayReconnect      = errors.New("gateway requested reconnect")
	errGatewayInvalidSession = errors.New("gateway invalidated session")
)

type gatewayPayload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *int64          `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Intents    int                `json:"intents"`
	Properties identifyProperties `json:"properties"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// session is one gateway connection. Writes are serialized: the
// heartbeat goroutine and the read loop both send frames.
type session struct {
	conn *websocket.Conn

	mu      sync.Mutex
	lastSeq *int64
}

func (s *session) writePayload(p gatewayPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(p)
}

func (s *session) storeSeq(seq *int64) {
	if seq == nil {
		return
	}

	s.mu.Lock()
	s.lastSeq = seq
	s.mu.Unlock()
}

func (s *session) seqPayload() gatewayPayload {
	s.mu.Lock()
	seq := s.lastSeq
	s.mu.Unlock()

	d, _ := json.Marshal(seq) //nolint:errcheck // *int64 always marshals

	return gatewayPayload{Op: opHeartbeat, D: d}
}

// Listen runs one gateway connection until the connection drops, the
// gateway asks for a reconnect, or ctx is canceled. Reconnect policy
// belongs to the caller.
func (c *Client) Listen(ctx context.Context, handler ingest.Handler) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.gatewayURL, nil)
	if err != nil {
		return fmt.Errorf("gateway dial: %w", err)
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close() //nolint:errcheck // handshake response body
	}

	sess := &session{conn: conn}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout)) //nolint:errcheck // best-effort close
			_ = conn.Close()                                                                      //nolint:errcheck // unblocks the read loop
		case <-done:
			_ = conn.Close() //nolint:errcheck // connection teardown
		}
	}()

	c.logger.Info().Msg("gateway connected")

	return c.readLoop(ctx, sess, handler, done)
}

func (c *Client) readLoop(ctx context.Context, sess *session, handler ingest.Handler, done chan struct{}) error {
	heartbeatStarted := false

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("gateway read: %w", err)
		}

		var p gatewayPayload
		if err := json.Unmarshal(data, &p); err != nil {
			c.logger.Warn().Err(err).Msg("gateway payload decode failed")
			continue
		}

		sess.storeSeq(p.S)

		switch p.Op {
		case opHello:
			if err := c.handleHello(ctx, sess, p.D, &heartbeatStarted, done); err != nil {
				return err
			}
		case opHeartbeat:
			if err := sess.writePayload(sess.seqPayload()); err != nil {
				return fmt.Errorf("gateway heartbeat: %w", err)
			}
		case opReconnect:
			return errGatewayReconnect
		case opInvalidSession:
			return errGatewayInvalidSession
		case opDispatch:
			c.handleDispatch(ctx, p, handler)
		case opHeartbeatACK:
			// Liveness confirmed, nothing to do.
		}
	}
}

func (c *Client) handleHello(ctx context.Context, sess *session, data json.RawMessage, heartbeatStarted *bool, done chan struct{}) error {
	var hello helloData
	if err := json.Unmarshal(data, &hello); err != nil {
		return fmt.Errorf("gateway hello decode: %w", err)
	}

	if !*heartbeatStarted {
		go c.heartbeatLoop(ctx, sess, time.Duration(hello.HeartbeatInterval)*time.Millisecond, done)

		*heartbeatStarted = true
	}

	return c.identify(sess)
}

func (c *Client) identify(sess *session) error {
	d, err := json.Marshal(identifyData{
		Token:   c.token,
		Intents: identifyIntents,
		Properties: identifyProperties{
			OS:      "linux",
			Browser: "stock-bridge",
			Device:  "stock-bridge",
		},
	})
	if err != nil {
		return fmt.Errorf("gateway identify encode: %w", err)
	}

	if err := sess.writePayload(gatewayPayload{Op: opIdentify, D: d}); err != nil {
		return fmt.Errorf("gateway identify: %w", err)
	}

	return nil
}

func (c *Client) heartbeatLoop(ctx context.Context, sess *session, interval time.Duration, done chan struct{}) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if err := sess.writePayload(sess.seqPayload()); err != nil {
				c.logger.Warn().Err(err).Msg("gateway heartbeat write failed")

				return
			}
		}
	}
}

func (c *Client) handleDispatch(ctx context.Context, p gatewayPayload, handler ingest.Handler) {
	if p.T != eventMessageCreate {
		return
	}

	var msg wireMessage
	if err := json.Unmarshal(p.D, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("message event decode failed")

		return
	}

	handler(ctx, msg.toIngest())
}
