package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
)

// clientFrame is what we accept from the wire. Only join frames are
// meaningful today; anything else is ignored so old clients that send
// keepalives keep working.
type clientFrame struct {
	Type string `json:"type"`
	Box  string `json:"box"`
}

// Handler returns the websocket endpoint. A connection starts in no room;
// the client sends {"type":"join","box":"<id>"} to subscribe and may re-join
// another box at any time, leaving the previous room.
func (h *Hub) Handler(logger *slog.Logger) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		h.serveConn(conn, logger)
	})
}

func (h *Hub) serveConn(conn *websocket.Conn, logger *slog.Logger) {
	defer func() { _ = conn.Close() }()

	decoder := json.NewDecoder(conn)
	p := newPeer(json.NewEncoder(conn))

	var joined string
	defer func() {
		if joined != "" {
			h.leave(joined, p)
		}
	}()

	for {
		var frame clientFrame
		if err := decoder.Decode(&frame); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				logger.Debug("websocket read ended", "error", err)
			}
			return
		}

		if frame.Type != "join" {
			continue
		}
		boxID := strings.TrimSpace(frame.Box)
		if boxID == "" || boxID == joined {
			continue
		}

		if joined != "" {
			h.leave(joined, p)
		}
		h.join(boxID, p)
		joined = boxID

		// Ack the join so clients know events will flow.
		_ = p.writeEvent(Event{Type: "joined", Box: boxID})
	}
}
