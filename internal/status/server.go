package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"clicker/internal/core/autoclicker"

	"github.com/gorilla/websocket"
)

const shutdownTimeout = 2 * time.Second

type Server struct {
	logger   *slog.Logger
	ctrl     Controller
	hub      *Hub
	interval time.Duration
	upgrader websocket.Upgrader
}

type ServerConfig struct {
	Hub HubConfig
	// Interval is how often state changes are checked for broadcast.
	Interval time.Duration
}

func NewServer(logger *slog.Logger, ctrl Controller, cfg ServerConfig) *Server {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Server{
		logger:   logger,
		ctrl:     ctrl,
		hub:      NewHub(logger, cfg.Hub),
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHostOrigin,
		},
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler serves /ws (websocket) and /status (one JSON snapshot).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// ListenAndServe runs the hub, the broadcaster and an HTTP server on addr
// until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.Run(ctx)
	go s.RunBroadcaster(ctx)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Status server listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.ctrl.Status())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Status websocket upgrade failed", "err", err)
		return
	}

	client := NewClient(s.hub, conn, r.RemoteAddr, s.logger)
	if msg, err := marshalEnvelope("state_init", s.ctrl.Status()); err == nil {
		client.send <- msg
	}
	s.hub.register <- client

	// Pumps outlive the request; the hub and connection errors end them.
	go client.writePump()
	go client.readPump(s.handleCommand)
}

func (s *Server) handleCommand(c *Client, payload []byte) {
	cmd, err := ParseCommand(payload)
	if err == nil {
		err = Apply(s.ctrl, cmd)
	}
	if err != nil {
		s.logger.Debug("Rejected status command", "remote_addr", c.remoteAddr, "err", err)
		if msg, mErr := marshalEnvelope("error", errorData{Command: cmd.Type, Message: err.Error()}); mErr == nil {
			c.enqueue(msg)
		}
		return
	}
	s.logger.Info("Status command applied", "remote_addr", c.remoteAddr, "type", cmd.Type)

	if msg, mErr := marshalEnvelope("state", s.ctrl.Status()); mErr == nil {
		c.enqueue(msg)
	}
}

// RunBroadcaster pushes a "state" frame whenever the control state or the
// observer phase changes. Counters alone do not trigger a frame.
func (s *Server) RunBroadcaster(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.ctrl.Status()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cur := s.ctrl.Status()
		if !changed(last, cur) {
			continue
		}
		last = cur

		msg, err := marshalEnvelope("state", cur)
		if err != nil {
			s.logger.Warn("Status broadcast marshal failed", "err", err)
			continue
		}
		s.hub.BroadcastBytes(msg)
	}
}

func changed(a, b autoclicker.Status) bool {
	return a.State != b.State ||
		a.Health.ObserverPhase != b.Health.ObserverPhase ||
		a.Health.RateSaturated != b.Health.RateSaturated
}

// sameHostOrigin accepts non-browser clients and browser pages served from
// the same host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	req, err := http.NewRequest(http.MethodGet, origin, nil)
	if err != nil {
		return false
	}
	return req.URL.Host == r.Host
}
