package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/sensor"
)

const (
	OpScan        = "scan"
	OpRotate      = "rotate"
	OpMove        = "move"
	OpFingerprint = "fingerprint"
)

// Command is a client request on the feed.
type Command struct {
	Op        string           `json:"op"`
	Angle     float64          `json:"angle,omitempty"`
	Direction geometry.Vector2 `json:"direction"`
	Speed     float64          `json:"speed,omitempty"`
}

// Frame is the reply to a single command.
type Frame struct {
	Op          string           `json:"op"`
	Pose        sensor.Pose      `json:"pose"`
	Readings    []sensor.Reading `json:"readings,omitempty"`
	Fingerprint uint64           `json:"fingerprint,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	if !s.track(conn) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	defer func() {
		s.untrack(conn)
		_ = conn.Close()
		s.logger.Info("Client disconnected",
			log.String("remote_addr", r.RemoteAddr),
			log.Int64("total_clients", s.ClientCount()))
	}()

	s.logger.Info("Client connected",
		log.String("remote_addr", r.RemoteAddr),
		log.Int64("total_clients", s.ClientCount()))

	s.serveFeed(r.Context(), conn)
}

func (s *Server) serveFeed(ctx context.Context, conn *websocket.Conn) {
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Feed read failed", log.Error(err))
			}
			return
		}

		frame, err := s.execute(ctx, cmd)
		if err != nil {
			s.logger.Debug("Command rejected", log.String("op", cmd.Op), log.Error(err))
			frame = Frame{Op: cmd.Op, Pose: frame.Pose, Error: err.Error()}
		}

		if s.config.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err = conn.WriteJSON(frame); err != nil {
			s.logger.Warn("Feed write failed", log.Error(err))
			return
		}
	}
}

// execute applies cmd to the robot. Commands from every client are serialized.
func (s *Server) execute(ctx context.Context, cmd Command) (Frame, error) {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	frame := Frame{Op: cmd.Op}
	switch cmd.Op {
	case OpScan:
		readings, err := s.robot.Scan(ctx, s.scene)
		if err != nil {
			frame.Pose = s.robot.Pose()
			return frame, err
		}
		frame.Readings = readings
		frame.Fingerprint = s.scene.Fingerprint()
	case OpRotate:
		s.robot.Rotate(cmd.Angle)
	case OpMove:
		s.robot.Move(cmd.Direction, cmd.Speed)
	case OpFingerprint:
		frame.Fingerprint = s.scene.Fingerprint()
	default:
		frame.Pose = s.robot.Pose()
		return frame, fmt.Errorf("%w: unknown op %q", ErrInvalidCommand, cmd.Op)
	}
	frame.Pose = s.robot.Pose()
	return frame, nil
}
