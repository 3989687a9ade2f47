package ws

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func normalizeAllowedOrigins(origins []string) map[string]struct{} {
	res := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		o := strings.TrimSpace(strings.ToLower(origin))
		if o != "" {
			res[o] = struct{}{}
		}
	}
	return res
}

func makeCheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := normalizeAllowedOrigins(allowedOrigins)
	if len(allowed) == 0 {
		return func(r *http.Request) bool {
			return false
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(strings.ToLower(r.Header.Get("Origin")))
		if origin == "" {
			return false
		}
		if _, ok := allowed[origin]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		normalized := strings.ToLower(fmt.Sprintf("%s://%s", u.Scheme, u.Host))
		_, ok := allowed[normalized]
		return ok
	}
}

// wsConn adapts *websocket.Conn to the hub's Conn interface. The write mutex
// serializes frames from concurrent broadcasters.
type wsConn struct {
	mu sync.Mutex
	c  *websocket.Conn
}

func (c *wsConn) WriteEvent(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.WriteJSON(v)
}

func (c *wsConn) Close() error {
	return c.c.Close()
}

type inboundEvent struct {
	Type      string `json:"type"`
	TopicID   string `json:"topicId"`
	SessionID string `json:"sessionId"`
	Content   string `json:"content"`
}

// MakeHandler returns an HTTP handler for the /ws endpoint. Clients are
// anonymous; the session id travels in each event payload. Dispatch:
//   - join-topic   -> register room membership, deliver history snapshot,
//     notify the other members
//   - leave-topic  -> drop membership, notify the other members
//   - send-message -> store + broadcast to the whole room
//   - typing / stop-typing -> ephemeral presence fan-out to the other members
func MakeHandler(hub *Hub, allowedOrigins []string, log zerolog.Logger) http.HandlerFunc {
	log = log.With().Str("component", "ws").Logger()
	checkOrigin := makeCheckOrigin(allowedOrigins)
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !checkOrigin(r) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := &wsConn{c: raw}
		defer conn.Close()

		hub.Register(conn)
		defer hub.Disconnect(conn)

		log.Debug().Str("remote", raw.RemoteAddr().String()).Msg("client connected")

		for {
			var ev inboundEvent
			if err := raw.ReadJSON(&ev); err != nil {
				break
			}

			if ev.TopicID == "" || ev.SessionID == "" {
				_ = conn.WriteEvent(ErrorEvent{Type: EventError, Message: "topicId and sessionId are required"})
				continue
			}

			switch ev.Type {
			case "join-topic":
				hub.Join(conn, ev.TopicID, ev.SessionID)
			case "leave-topic":
				hub.Leave(conn, ev.TopicID, ev.SessionID)
			case "send-message":
				hub.SendMessage(conn, ev.TopicID, ev.Content, ev.SessionID)
			case "typing":
				hub.Typing(conn, ev.TopicID, ev.SessionID)
			case "stop-typing":
				hub.StopTyping(conn, ev.TopicID, ev.SessionID)
			default:
				log.Debug().Str("event", ev.Type).Msg("unknown event type")
			}
		}

		log.Debug().Str("remote", raw.RemoteAddr().String()).Msg("client disconnected")
	}
}
