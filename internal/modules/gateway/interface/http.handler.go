package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"posbusRelay/internal/modules/gateway/domain"
	"posbusRelay/internal/modules/gateway/infrastructure"
	"posbusRelay/internal/shared/auth"
	"posbusRelay/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var sessionCounter atomic.Uint64

var authErrors = httputil.NewErrorMapper().
	WithMapping(auth.ErrMissingToken, http.StatusBadRequest, "missing token").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithDefault(http.StatusUnauthorized, "unauthorized")

// NewEventsWebsocketHandler expone /ws/events y valida el JWT localmente.
// Consumers attach with an optional comma-separated `topics` query param;
// without it they receive every event.
func NewEventsWebsocketHandler(hub *infrastructure.Hub, commands *infrastructure.CommandProcessor, validator auth.TokenValidator) func(echo.Context) error {
	return func(c echo.Context) error {
		peerIP := c.RealIP()

		token := auth.ExtractToken(c.Request(), "token")
		claims, err := validator.Validate(token)
		if err != nil {
			slog.Warn("events ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			info := authErrors.Map(err)
			return echo.NewHTTPError(info.Status, info.Message)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("events ws upgrade failed", slog.String("ip", peerIP), slog.Any("error", err))
			return err
		}

		userID := claims.Subject
		sessionID := fmt.Sprintf("evt-%d", sessionCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, userID, sessionID, token, 16, commands)

		topics := splitTopics(c.QueryParam("topics"))
		if len(topics) == 0 {
			hub.AttachClientToAll(client)
		} else {
			hub.AttachClient(client, topics)
		}

		go client.WritePump()
		go client.ReadPump()

		client.SendEnvelope(domain.NewEnvelope(domain.SystemTopicConnected, map[string]any{
			"sessionId": sessionID,
			"userId":    userID,
			"topics":    topics,
		}))

		slog.Info("events ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP))
		return nil
	}
}

func splitTopics(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}
