package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/statebind/statebind/pkg/bind"
	"github.com/statebind/statebind/pkg/observe"
	"github.com/statebind/statebind/pkg/schedule"
)

// Server bridges one reactive root to websocket view clients. Attach
// its FlushHook when building the root, then serve Handler().
type Server struct {
	logger  *slog.Logger
	root    *bind.Root
	metrics *Metrics
	tracing *Tracing

	upgrader websocket.Upgrader

	// mu protects clients and seq.
	mu      sync.Mutex
	clients map[*client]struct{}
	seq     uint64
}

// ServerOption configures the bridge server.
type ServerOption func(*Server)

// WithLogger sets the server's logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithMetrics attaches the Prometheus metrics.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithTracing attaches the OpenTelemetry tracing setup.
func WithTracing(t *Tracing) ServerOption {
	return func(s *Server) { s.tracing = t }
}

// NewServer creates a bridge for root. The root may be nil at
// construction and attached later with Attach.
func NewServer(root *bind.Root, opts ...ServerOption) *Server {
	s := &Server{
		root:    root,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "live")
	}
	return s
}

// Attach binds the server to a root built after the server.
func (s *Server) Attach(root *bind.Root) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
}

// FlushHook returns the hook to pass as bind.OnFlush: every delivered
// flush is encoded once and broadcast to all connected clients.
func (s *Server) FlushHook() bind.FlushHook {
	return func(updates []schedule.Update) {
		s.broadcast(updates)
	}
}

// Handler returns the HTTP surface: /live upgrades to the flush
// stream, /healthz reports liveness, /metrics exposes Prometheus.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/live", s.handleLive)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// broadcast sends one frame to every connected client. The send loop
// runs under mu, the same lock readPump's cleanup closes send channels
// under, so a concurrent disconnect can never turn a send into a send
// on a closed channel. Sends are non-blocking; holding the lock across
// them is bounded.
func (s *Server) broadcast(updates []schedule.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	frame := FlushFrame{Seq: s.seq, Changes: make([]Change, len(updates))}
	for i, u := range updates {
		frame.Changes[i] = Change{Property: u.Property, Value: observe.Snapshot(u.Value)}
	}

	if s.tracing != nil {
		_, span := s.tracing.startFlush(context.Background(), frame)
		defer span.End()
	}

	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("failed to encode flush frame", "error", err)
		return
	}

	for c := range s.clients {
		select {
		case c.send <- data:
			if s.metrics != nil {
				s.metrics.frameSent()
			}
		default:
			// Slow client: drop the frame rather than stall the flush.
			if s.metrics != nil {
				s.metrics.frameError()
			}
			s.logger.Warn("dropping frame for slow client")
		}
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 32)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.clientConnected()
	}

	go s.writePump(c)
	s.readPump(c)
}

// writePump pushes queued frames to one client.
func (s *Server) writePump(c *client) {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("write failed, closing client", "error", err)
			c.conn.Close()
			return
		}
	}
}

// readPump consumes inbound property writes until the connection
// closes, then unregisters the client.
func (s *Server) readPump(c *client) {
	defer func() {
		// Delete and close under the same lock broadcast sends under.
		s.mu.Lock()
		delete(s.clients, c)
		close(c.send)
		s.mu.Unlock()
		c.conn.Close()
		if s.metrics != nil {
			s.metrics.clientDisconnected()
		}
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Debug("client read error", "error", err)
			}
			return
		}

		var req SetRequest
		if err := json.Unmarshal(data, &req); err != nil || req.Property == "" {
			s.logger.Warn("ignoring malformed set request", "error", err)
			continue
		}

		s.mu.Lock()
		root := s.root
		s.mu.Unlock()
		if root == nil || root.Closed() {
			continue
		}
		if req.Source != "" {
			root.CommitDelayed(req.Property, req.Source, req.Value)
		} else {
			root.Set(req.Property, req.Value)
		}
	}
}
