package transport

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"posbusRelay/internal/modules/relay/application/handler"
	relayport "posbusRelay/internal/modules/relay/application/port"
)

// ConnectionStatus reports whether the upstream relay link is live.
type ConnectionStatus interface {
	IsConnected() bool
}

// NewHealthHandler exposes /healthz with the relay link state, the watched
// attribute topics and a summary of what the subscriber stores have seen.
func NewHealthHandler(status ConnectionStatus, registry relayport.TopicRegistry, roster *handler.VoiceChatRoster, notifications *handler.NotificationLog) func(echo.Context) error {
	return func(c echo.Context) error {
		body := map[string]any{
			"relayConnected": status.IsConnected(),
		}
		if registry != nil {
			topics := registry.Topics()
			sort.Strings(topics)
			body["watchedTopics"] = topics
		}
		if roster != nil {
			body["voiceChatUsers"] = roster.Count()
		}
		if notifications != nil {
			body["recentNotifications"] = len(notifications.Recent())
		}
		return c.JSON(http.StatusOK, body)
	}
}
