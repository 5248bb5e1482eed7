package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 5 * time.Second
	feedPingPeriod = 30 * time.Second
	feedBuffer     = 8
)

type subscriber struct {
	send chan []byte
}

// Hub fans match views out to websocket subscribers, keyed by match code.
type Hub struct {
	mu       sync.Mutex
	subs     map[string]map[*subscriber]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			// origins are checked by the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) subscribe(code string) *subscriber {
	s := &subscriber{send: make(chan []byte, feedBuffer)}
	h.mu.Lock()
	if h.subs[code] == nil {
		h.subs[code] = make(map[*subscriber]struct{})
	}
	h.subs[code][s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) unsubscribe(code string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[code]; ok {
		if _, ok := set[s]; ok {
			delete(set, s)
			close(s.send)
		}
		if len(set) == 0 {
			delete(h.subs, code)
		}
	}
}

// Subscribers returns how many feeds are open for code.
func (h *Hub) Subscribers(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[code])
}

// Publish sends v to every subscriber of code. Subscribers that cannot keep
// up are dropped.
func (h *Hub) Publish(code string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logging.Error("failed to encode feed message", err, logging.Fields{constants.LogFieldMatchCode: code})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[code]
	if !ok {
		return
	}
	for s := range set {
		select {
		case s.send <- b:
		default:
			delete(set, s)
			close(s.send)
		}
	}
	if len(set) == 0 {
		delete(h.subs, code)
	}
}

// serve pumps messages of s into conn until either side goes away.
func (h *Hub) serve(conn *websocket.Conn, code string, s *subscriber, initial []byte) {
	defer conn.Close()
	defer h.unsubscribe(code, s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(mt int, b []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		return conn.WriteMessage(mt, b)
	}
	if err := write(websocket.TextMessage, initial); err != nil {
		return
	}

	ping := time.NewTicker(feedPingPeriod)
	defer ping.Stop()
	for {
		select {
		case b, ok := <-s.send:
			if !ok {
				_ = write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := write(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ping.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
