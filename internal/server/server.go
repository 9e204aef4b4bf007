package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/sensor"
)

// Server streams scans of one robot over WebSocket.
type Server struct {
	config Config
	logger log.Log

	scene *scene.Scene
	robot *sensor.Robot
	// commandMu serializes every command against the robot and scene.
	commandMu sync.Mutex

	upgrader websocket.Upgrader

	// lifecycleMu guards running, httpServer and listener.
	lifecycleMu sync.Mutex
	running     bool
	httpServer  *http.Server
	listener    net.Listener
	serveWG     sync.WaitGroup

	connsMu     sync.Mutex
	conns       map[*websocket.Conn]struct{}
	closing     bool
	clientCount int64 // atomic
	// feedsWG counts tracked feeds; Add happens under connsMu while !closing.
	feedsWG sync.WaitGroup
}

// Config holds server configuration
type Config struct {
	ListenAddr string

	ReadBufferSize  int
	WriteBufferSize int
	MaxMessageSize  int64

	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MaxMessageSize:  64 * 1024,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: max message size %d", ErrInvalidConfig, c.MaxMessageSize)
	}
	return nil
}

// NewServer creates a feed for robot scanning scn.
func NewServer(config Config, scn *scene.Scene, robot *sensor.Robot, logger log.Log) (*Server, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if scn == nil {
		return nil, scene.ErrEmptyRegistry
	}
	if robot == nil {
		return nil, fmt.Errorf("%w: nil robot", ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.Provide()
	}

	s := &Server{
		config: config,
		logger: logger.With(log.Component("server")),
		scene:  scn,
		robot:  robot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	s.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.String("scene_id", scn.ID().String()))

	return s, nil
}

// Handler exposes the feed routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if s.running {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.listener = listener
	s.httpServer = httpServer

	s.connsMu.Lock()
	s.closing = false
	s.connsMu.Unlock()

	s.serveWG.Add(1)
	go func() {
		defer s.serveWG.Done()
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", log.Error(err))
		}
	}()
	s.running = true

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP server down gracefully, closes open feeds and waits
// for their handlers to return.
func (s *Server) Stop(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if !s.running {
		return ErrServerNotRunning
	}
	s.running = false

	s.logger.Info("Stopping server")

	if _, ok := ctx.Deadline(); !ok && s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	err := s.httpServer.Shutdown(ctx)

	// Shutdown does not track hijacked connections.
	s.connsMu.Lock()
	s.closing = true
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
	s.connsMu.Unlock()

	s.feedsWG.Wait()
	s.serveWG.Wait()
	s.listener = nil
	s.httpServer = nil

	s.logger.Info("Server stopped")
	return err
}

// ClientCount returns the number of open feeds.
func (s *Server) ClientCount() int64 {
	return atomic.LoadInt64(&s.clientCount)
}

// track registers a feed. It reports false once Stop has begun closing feeds.
func (s *Server) track(conn *websocket.Conn) bool {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	s.feedsWG.Add(1)
	atomic.AddInt64(&s.clientCount, 1)
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()
	atomic.AddInt64(&s.clientCount, -1)
	s.feedsWG.Done()
}
