// Package feed fans catalog change events out to TCP and WebSocket
// subscribers as newline-delimited JSON.
package feed

import (
	"encoding/json"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cataloghub/internal/catalog"
)

const (
	writeTimeout = 2 * time.Second
	// sendBuffer is how many events a subscriber may fall behind before it
	// is dropped.
	sendBuffer = 64
)

// subscriber owns one socket. Only its writeLoop writes to it after it
// joins the hub.
type subscriber struct {
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	write  func([]byte) error
	closer io.Closer
}

func newSubscriber(write func([]byte) error, closer io.Closer) *subscriber {
	return &subscriber{
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		write:  write,
		closer: closer,
	}
}

func (s *subscriber) enqueue(b []byte) bool {
	select {
	case s.send <- b:
		return true
	default:
		return false
	}
}

func (s *subscriber) stop() {
	s.once.Do(func() {
		close(s.done)
		_ = s.closer.Close()
	})
}

type Hub struct {
	mu        sync.Mutex
	clients   map[net.Conn]*subscriber
	wsClients map[*websocket.Conn]*subscriber
	log       *zap.Logger
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[net.Conn]*subscriber),
		wsClients: make(map[*websocket.Conn]*subscriber),
		log:       log,
	}
}

func (h *Hub) Add(conn net.Conn) {
	sub := newSubscriber(func(b []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_, err := conn.Write(b)
		return err
	}, conn)

	h.mu.Lock()
	h.clients[conn] = sub
	h.mu.Unlock()

	go h.writeLoop(sub, func(err error) {
		h.log.Debug("dropping tcp subscriber", zap.Stringer("remote", conn.RemoteAddr()), zap.Error(err))
		h.Remove(conn)
	})
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	sub := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if sub == nil {
		_ = conn.Close()
		return
	}
	sub.stop()
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	sub := newSubscriber(func(b []byte) error {
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		return ws.WriteMessage(websocket.TextMessage, b)
	}, ws)

	h.mu.Lock()
	h.wsClients[ws] = sub
	h.mu.Unlock()

	go h.writeLoop(sub, func(err error) {
		h.log.Debug("dropping ws subscriber", zap.Error(err))
		h.RemoveWS(ws)
	})
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	sub := h.wsClients[ws]
	delete(h.wsClients, ws)
	h.mu.Unlock()
	if sub == nil {
		_ = ws.Close()
		return
	}
	sub.stop()
}

func (h *Hub) writeLoop(sub *subscriber, drop func(error)) {
	for {
		select {
		case b := <-sub.send:
			if err := sub.write(b); err != nil {
				drop(err)
				return
			}
		case <-sub.done:
			return
		}
	}
}

// Publish implements catalog.Publisher.
func (h *Hub) Publish(e catalog.Event) {
	h.BroadcastJSON(e)
}

// BroadcastJSON queues v for every subscriber and returns without touching
// a socket. A subscriber whose queue is full is dropped.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("feed marshal failed", zap.Error(err))
		return
	}
	b = append(b, '\n')

	var slow []*subscriber
	h.mu.Lock()
	for c, sub := range h.clients {
		if !sub.enqueue(b) {
			delete(h.clients, c)
			slow = append(slow, sub)
		}
	}
	for ws, sub := range h.wsClients {
		if !sub.enqueue(b) {
			delete(h.wsClients, ws)
			slow = append(slow, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range slow {
		h.log.Debug("dropping slow feed subscriber")
		sub.stop()
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
	}
}

func (h *Hub) welcomeLine(transport string) []byte {
	st := h.Stats()
	b, _ := json.Marshal(newWelcome(transport, st.TCPClients+st.WSClients))
	return append(b, '\n')
}
