// Package session implements the peer session (C4): one per connected
// player, owning a duplex transport, an unbounded send queue, and the
// handshake/steady-state lifecycle described in SPEC_FULL.md §4.4.
// Grounded on apps/server/internal/gateway's Connection/readPump/writePump
// pattern, generalized from binary protobuf envelopes over
// gorilla/websocket to one-JSON-object-per-text-frame framing.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/decred/slog"

	"wizardnet/internal/wire"
)

const (
	readLimitBytes = 65536
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	writeWait      = 10 * time.Second
)

// wsConn is the subset of *websocket.Conn a PeerSession needs. Narrowing it
// to an interface lets tests exercise the handshake and pump logic without
// a real network connection.
type wsConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
}

// GameServer is the subset of *gameserver.Server a session drives. Defined
// as an interface purely so tests can substitute a lighter fake; production
// code always passes a real *gameserver.Server. Declared in terms of
// wire.Sender (not gameserver.Sender) so this package never has to import
// internal/gameserver, which itself imports internal/session to wire up
// Accept as its HTTP entry point.
type GameServer interface {
	Phase() wire.GamePhase
	Join(id uuid.UUID, username string, sender wire.Sender) error
	Leave(id uuid.UUID)
	HandleClientEvent(sender uuid.UUID, ev wire.ClientEvent)
}

// PeerSession is the per-connection actor, symmetric to the teacher's
// gateway.Connection but framed as one JSON value per text message instead
// of a binary protobuf envelope.
type PeerSession struct {
	id         uuid.UUID
	username   string
	conn       wsConn
	server     GameServer
	log        slog.Logger
	queue      *eventQueue
	leave      chan struct{}
	closeOnce  sync.Once
	shutdownCh <-chan struct{}
}

var errHandshakeFailed = errors.New("session: handshake failed")

// Accept runs the full handshake (spec.md §4.4): reject immediately if the
// table isn't in the Lobby, assign an id, send SetUUID, wait for
// SetUsername, then register with the game server and start the steady
// state. It blocks until the session ends, so callers should invoke it
// from its own goroutine (one per accepted connection, mirroring the
// teacher's gateway.HandleWebSocket).
//
// shutdownCh, if non-nil, is a server-wide signal: when it closes, the
// session tears itself down even with no transport error of its own,
// letting gameserver.Server.Shutdown disconnect every live peer instead of
// waiting forever on goroutines nothing ever told to stop.
func Accept(conn wsConn, server GameServer, log slog.Logger, shutdownCh <-chan struct{}) {
	if server.Phase() != wire.Lobby {
		conn.Close()
		return
	}

	id := uuid.New()
	if err := writeFrame(conn, wire.SetUUID{UUID: id.String()}); err != nil {
		conn.Close()
		return
	}

	username, err := awaitUsername(conn)
	if err != nil {
		conn.Close()
		return
	}

	s := &PeerSession{
		id:         id,
		username:   username,
		conn:       conn,
		server:     server,
		log:        log,
		queue:      newEventQueue(),
		leave:      make(chan struct{}),
		shutdownCh: shutdownCh,
	}

	if err := server.Join(id, username, s); err != nil {
		conn.Close()
		return
	}

	go s.writePump()
	s.readPump() // runs on the caller's goroutine until the connection ends
}

// awaitUsername reads frames until SetUsername arrives, ignoring any other
// frame (spec.md §4.4 step 2) and dropping malformed frames silently
// (spec.md §7).
func awaitUsername(conn wsConn) (string, error) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return "", errHandshakeFailed
		}
		ev, err := wire.DecodeClientEvent(data)
		if err != nil {
			continue
		}
		if su, ok := ev.(wire.SetUsername); ok {
			return su.Username, nil
		}
	}
}

func writeFrame(conn wsConn, ev wire.ServerEvent) error {
	data, err := wire.EncodeServerEvent(ev)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Send implements gameserver.Sender: the authoritative state machine calls
// this directly (holding its own lock) whenever it broadcasts or privately
// addresses an event, which is this protocol's Go-idiomatic replacement for
// the original's broadcast-channel-plus-per-peer-forwarder pair — ordering
// is still guaranteed because every call happens inside the server's
// single critical section (see SPEC_FULL.md §5).
func (s *PeerSession) Send(ev wire.ServerEvent) {
	s.queue.push(ev)
}

// readPump decodes inbound frames and dispatches them to the authoritative
// state machine until the transport fails or the session is torn down.
func (s *PeerSession) readPump() {
	defer s.shutdown()

	s.conn.SetReadLimit(readLimitBytes)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		ev, err := wire.DecodeClientEvent(data)
		if err != nil {
			if s.log != nil {
				s.log.Debugf("dropping malformed frame from %s: %v", s.id, err)
			}
			continue
		}
		s.server.HandleClientEvent(s.id, ev)
	}
}

// writePump drains the private send queue to the transport and keeps the
// connection alive with periodic pings, mirroring gateway.Connection's
// writePump.
func (s *PeerSession) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer s.shutdown()

	events := make(chan wire.ServerEvent)
	stopPump := make(chan struct{})
	go func() {
		defer close(events)
		for {
			ev, ok := s.queue.pop()
			if !ok {
				return
			}
			select {
			case events <- ev:
			case <-stopPump:
				return
			}
		}
	}()
	defer close(stopPump)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeFrame(s.conn, ev); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.leave:
			return
		case <-s.shutdownCh:
			return
		}
	}
}

// shutdown tears the session down exactly once. readPump and writePump both
// defer this and run on separate goroutines, so a transport failure that
// unblocks both at once (a TCP reset failing a blocked ReadMessage and an
// in-flight ping write together) must not race two callers through it —
// sync.Once, not a check-then-act select on s.leave, is what makes that safe.
func (s *PeerSession) shutdown() {
	s.closeOnce.Do(func() {
		close(s.leave)
		s.queue.close()
		s.conn.Close()
		s.server.Leave(s.id)
	})
}
