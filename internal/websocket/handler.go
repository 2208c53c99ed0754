package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to WebSocket
// and serves them as Hub clients. Browsers must connect from the server's own
// host or from one of originPatterns.
func HandleWebSocket(hub *Hub, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err, "origin", r.Header.Get("Origin"))
			return
		}

		NewClient(hub, conn, r.RemoteAddr).Serve(r.Context())
	}
}
