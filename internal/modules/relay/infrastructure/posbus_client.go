package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
)

const (
	frameHandshake = "handshake"
	frameTeleport  = "teleport"
	frameRelay     = "relay"
	frameNotify    = "notify"

	readLimit     = 1 << 16
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
	pingInterval  = 30 * time.Second
)

// frame is the wire envelope shared by both inbound channels and the
// outbound control messages.
type frame struct {
	Type    string          `json:"type"`
	Target  string          `json:"target,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Kind    int             `json:"kind,omitempty"`
	Flag    int             `json:"flag,omitempty"`
	Message string          `json:"message,omitempty"`
}

type handshakePayload struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type teleportPayload struct {
	WorldID string `json:"worldId"`
}

// Adapter owns the single relay connection for one (url, token, userId)
// session. Inbound frames are forwarded unmodified to the handler; connection
// failures are logged and retried with jittered exponential backoff, never
// surfaced to the hosting application.
type Adapter struct {
	url     string
	token   string
	userID  string
	handler port.RelayHandler
	dialer  *websocket.Dialer

	backoffBase time.Duration
	backoffCap  time.Duration

	mu      sync.RWMutex
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewAdapter(url, token, userID string, handler port.RelayHandler) *Adapter {
	return &Adapter{
		url:         url,
		token:       token,
		userID:      userID,
		handler:     handler,
		dialer:      &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		backoffBase: time.Second,
		backoffCap:  30 * time.Second,
	}
}

// Start launches the connect/read loop and returns immediately.
func (a *Adapter) Start(ctx context.Context) {
	go a.run(ctx)
}

func (a *Adapter) run(ctx context.Context) {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}
		established, err := a.connectAndRead(ctx)
		if err != nil {
			slog.Warn("posbus connection lost", slog.String("url", a.url), slog.Any("error", err))
		}
		if established {
			// A session that got past the handshake restarts the schedule,
			// otherwise long-lived sessions inherit stale backoff.
			attempt = 0
		}
		delay := a.nextBackoff(attempt)
		attempt++
		slog.Info("posbus reconnecting", slog.Duration("after", delay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// connectAndRead reports whether the session was established (handshake sent)
// alongside the terminating error.
func (a *Adapter) connectAndRead(ctx context.Context) (bool, error) {
	conn, _, err := a.dialer.DialContext(ctx, a.url, nil)
	if err != nil {
		return false, err
	}

	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.conn = nil
		a.mu.Unlock()
		_ = conn.Close()
	}()

	if err := a.send(frame{Type: frameHandshake, Data: marshal(handshakePayload{Token: a.token, UserID: a.userID})}); err != nil {
		return false, err
	}
	slog.Info("posbus connected", slog.String("url", a.url), slog.String("userId", a.userID))

	pingCtx, stopPing := context.WithCancel(ctx)
	defer stopPing()
	go a.pingLoop(pingCtx, conn)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return true, err
		}
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		a.dispatch(f)
	}
}

func (a *Adapter) dispatch(f frame) {
	switch f.Type {
	case frameRelay:
		a.handler.HandleRelayMessage(f.Target, f.Data)
	case frameNotify:
		a.handler.HandleSimpleNotification(domain.NotificationKind(f.Kind), f.Flag, f.Message)
	default:
		slog.Debug("posbus frame ignored", slog.String("type", f.Type))
	}
}

func (a *Adapter) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("posbus ping error", slog.Any("error", err))
				return
			}
		}
	}
}

// IsConnected reports whether the relay socket is currently live.
func (a *Adapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn != nil
}

// SetWorld sends a world-change instruction over the existing connection.
// No-op when disconnected.
func (a *Adapter) SetWorld(worldID string) {
	if !a.IsConnected() {
		slog.Debug("teleport skipped, not connected", slog.String("worldId", worldID))
		return
	}
	if err := a.send(frame{Type: frameTeleport, Data: marshal(teleportPayload{WorldID: worldID})}); err != nil {
		slog.Warn("teleport send error", slog.String("worldId", worldID), slog.Any("error", err))
	}
}

func (a *Adapter) send(f frame) error {
	a.mu.RLock()
	conn := a.conn
	a.mu.RUnlock()
	if conn == nil {
		return websocket.ErrCloseSent
	}
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteJSON(f)
}

// nextBackoff grows exponentially from the base with full jitter, capped.
func (a *Adapter) nextBackoff(attempt int) time.Duration {
	delay := a.backoffBase << uint(min(attempt, 10))
	if delay > a.backoffCap {
		delay = a.backoffCap
	}
	return a.backoffBase + time.Duration(rand.Int63n(int64(delay)))
}

func marshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("posbus marshal error", slog.Any("error", err))
		return nil
	}
	return data
}
