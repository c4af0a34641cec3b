// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/duelyard/duelyard/internal/game"
	"github.com/duelyard/duelyard/internal/middleware"
	"github.com/duelyard/duelyard/internal/models"
)

// Server wires websocket sessions to the orchestrator.
type Server struct {
	Orchestrator *game.Orchestrator
	Logger       *logrus.Logger
}

// NewServer builds the websocket front end over an orchestrator.
func NewServer(orch *game.Orchestrator, logger *logrus.Logger) *Server {
	return &Server{Orchestrator: orch, Logger: logger}
}

// session is one live websocket connection. Outbound events are queued on
// OutChan and drained by a single write pump, which is what keeps delivery
// ordered per connection.
type session struct {
	PlayerID uuid.UUID
	OutChan  chan game.Event
}

// outChanSize bounds the per-connection send queue. A client slow enough to
// fill it loses events rather than stalling the room.
const outChanSize = 32

// DuelWSHandler accepts a websocket connection, assigns the session a fresh
// player id, and pumps intents into the orchestrator until the connection
// drops. Dropping the connection dissolves whatever room the player was in.
func (s *Server) DuelWSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"duel"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			s.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "duel" {
			c.Close(BadSubprotocolError, "client must speak the duel subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		sess := &session{
			PlayerID: uuid.New(),
			OutChan:  make(chan game.Event, outChanSize),
		}

		s.Orchestrator.Register(sess.PlayerID, func(ev game.Event) {
			select {
			case sess.OutChan <- ev:
			default:
				s.Logger.Warnf("player %s send queue full, dropping %s event", sess.PlayerID, ev.Type)
			}
		})
		middleware.LogDuelConnect(s.Logger, remoteAddr, sess.PlayerID)

		go s.writePump(ctx, c, sess)

		readErr := s.readLoop(ctx, c, sess)

		s.Orchestrator.Unregister(sess.PlayerID)
		cancel()
		middleware.LogDuelDisconnect(s.Logger, remoteAddr, sess.PlayerID, readErr)
	}
}

// readLoop decodes inbound frames into intents until the connection dies.
func (s *Server) readLoop(ctx context.Context, c *websocket.Conn, sess *session) error {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			s.Logger.Warnf("player %s sent non-text message type %d, ignoring", sess.PlayerID, typ)
			continue
		}

		var intent models.Intent
		if err := json.Unmarshal(msg, &intent); err != nil {
			s.Logger.Warnf("player %s sent invalid json: %v", sess.PlayerID, err)
			select {
			case sess.OutChan <- game.Event{Type: game.EventError, Message: "invalid JSON format"}:
			default:
			}
			continue
		}

		s.Orchestrator.Dispatch(sess.PlayerID, intent)
	}
}

// writePump drains the session's queue onto the wire and keeps the
// connection alive with periodic pings.
func (s *Server) writePump(ctx context.Context, c *websocket.Conn, sess *session) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer c.Close(websocket.StatusGoingAway, "write pump stopping")

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sess.OutChan:
			data, err := json.Marshal(ev)
			if err != nil {
				s.Logger.Warnf("failed to marshal outgoing %s event for player %s: %v", ev.Type, sess.PlayerID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.Logger.Warnf("failed to write to websocket for player %s: %v", sess.PlayerID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				s.Logger.Warnf("failed to ping player %s: %v, assuming disconnect", sess.PlayerID, err)
				return
			}
		}
	}
}
