package feed

import (
	"encoding/json"
	"errors"
	"net"
	"sync"

	"go.uber.org/zap"

	"cataloghub/internal/catalog"
)

const (
	RegisterMessageType   = "register"
	UnregisterMessageType = "unregister"
)

// ControlMessage is what a UDP subscriber sends to join or leave.
type ControlMessage struct {
	Type       string `json:"type"`
	Subscriber string `json:"subscriber"`
}

// UDPServer delivers each catalog event as one datagram to every registered
// subscriber. A subscriber re-registering from a new address replaces the old.
type UDPServer struct {
	Addr string
	log  *zap.Logger

	mu     sync.RWMutex
	conn   *net.UDPConn
	closed bool
	subs   map[string]*net.UDPAddr
}

func NewUDPServer(addr string, log *zap.Logger) *UDPServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &UDPServer{Addr: addr, log: log, subs: make(map[string]*net.UDPAddr)}
}

func (s *UDPServer) ListenAndServe() error {
	udpAddr, err := net.ResolveUDPAddr("udp", s.Addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	return s.Serve(conn)
}

// Serve reads control messages from conn until Close. It returns nil after
// Close.
func (s *UDPServer) Serve(conn *net.UDPConn) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	s.log.Info("udp feed listening", zap.Stringer("addr", conn.LocalAddr()))

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		msg, err := parseControl(buf[:n])
		if err != nil {
			s.log.Debug("invalid udp message", zap.Stringer("from", addr), zap.Error(err))
			continue
		}

		switch msg.Type {
		case RegisterMessageType:
			s.mu.Lock()
			s.subs[msg.Subscriber] = addr
			count := len(s.subs)
			s.mu.Unlock()

			s.send(msg.Subscriber, addr, mustJSON(newWelcome("udp", count)))
			s.log.Info("udp subscriber registered", zap.String("subscriber", msg.Subscriber), zap.Stringer("addr", addr))
		case UnregisterMessageType:
			s.remove(msg.Subscriber)
		}
	}
}

// Publish implements catalog.Publisher.
func (s *UDPServer) Publish(e catalog.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		s.log.Warn("udp marshal failed", zap.Error(err))
		return
	}

	s.mu.RLock()
	targets := make(map[string]*net.UDPAddr, len(s.subs))
	for name, addr := range s.subs {
		targets[name] = addr
	}
	s.mu.RUnlock()

	for name, addr := range targets {
		s.send(name, addr, payload)
	}
}

// send tries twice and forgets the subscriber when both attempts fail.
func (s *UDPServer) send(name string, addr *net.UDPAddr, payload []byte) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return
	}

	if _, err := conn.WriteToUDP(payload, addr); err == nil {
		return
	}
	if _, err := conn.WriteToUDP(payload, addr); err != nil {
		s.log.Debug("dropping udp subscriber", zap.String("subscriber", name), zap.Error(err))
		s.remove(name)
	}
}

func (s *UDPServer) remove(name string) {
	s.mu.Lock()
	delete(s.subs, name)
	s.mu.Unlock()
}

func (s *UDPServer) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *UDPServer) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *UDPServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func parseControl(data []byte) (ControlMessage, error) {
	var msg ControlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, err
	}
	if msg.Type == "" || msg.Subscriber == "" {
		return msg, errors.New("missing type or subscriber")
	}
	return msg, nil
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
