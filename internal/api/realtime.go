package api

import (
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
)

// Socket.io event names.
const (
	eventMapChanged  = "map:changed"
	eventRoute       = "route"
	eventRouteResult = "route:result"
)

// registerRealtime broadcasts every map change and answers route requests
// sent by connected clients.
func (s *Server) registerRealtime() {
	logger := ctxlog.FromContext(s.ctx)

	s.svc.Subscribe(func(ev mapservice.Event) {
		s.io.Emit(eventMapChanged, map[string]any{"kind": ev.Kind, "key": ev.Key})
	})

	_ = s.io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		logger.Debug("Socket.io client connected.", "sid", client.Id())

		_ = client.On(eventRoute, func(args ...any) {
			if err := client.Emit(eventRouteResult, s.routeResult(args)); err != nil {
				logger.Warn("Failed to emit route result.", "sid", client.Id(), "error", err)
			}
		})
	})
}

// routeResult runs a search for a {from, to} payload and shapes the reply.
func (s *Server) routeResult(args []any) map[string]any {
	var payload map[string]any
	if len(args) > 0 {
		payload, _ = args[0].(map[string]any)
	}
	from, _ := payload["from"].(string)
	to, _ := payload["to"].(string)
	if from == "" || to == "" {
		return map[string]any{"error": "from and to are required"}
	}

	route, err := s.svc.FindRoute(from, to)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"route": route}
}
