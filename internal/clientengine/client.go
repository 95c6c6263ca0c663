// Package clientengine implements the client mirror (C6): connect
// handshake, sender/receiver activities, and the GameStateProjection that
// turns a stream of server events into a snapshot an owner (CLI, GUI, test)
// can observe. Grounded on wizardrs-client's client/state split, enriched
// with vctt94-pokerbisonrelay's pkg/client connect-then-stream shape.
package clientengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/decred/slog"

	"wizardnet/internal/wire"
	"wizardnet/internal/wlog"
)

const snapshotBuffer = 16

var errNotSetUUID = errors.New("clientengine: first server frame was not SetUUID")

// Client is a live connection to a wizardnet table plus the owner-facing
// controls over it.
type Client struct {
	conn *websocket.Conn
	log  slog.Logger

	outbound chan wire.ClientEvent
	snapshot chan Snapshot
	done     chan struct{}
}

// Connect dials url, performs the handshake (spec.md §4.6: the first frame
// must be SetUUID, then the client sends SetUsername), and starts the
// sender/receiver activities. It returns once the projection reflects the
// post-handshake Lobby state.
func Connect(ctx context.Context, url, username string) (*Client, <-chan Snapshot, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("clientengine: dial %s: %w", url, err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("clientengine: reading handshake frame: %w", err)
	}
	ev, err := wire.DecodeServerEvent(data)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("clientengine: decoding handshake frame: %w", err)
	}
	setUUID, ok := ev.(wire.SetUUID)
	if !ok {
		conn.Close()
		return nil, nil, errNotSetUUID
	}

	if err := writeEvent(conn, wire.SetUsername{Username: username}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("clientengine: sending SetUsername: %w", err)
	}

	c := &Client{
		conn:     conn,
		log:      wlog.Logger("client"),
		outbound: make(chan wire.ClientEvent, 32),
		snapshot: make(chan Snapshot, snapshotBuffer),
		done:     make(chan struct{}),
	}

	projection := newProjection(setUUID.UUID, username)
	c.publish(projection)

	go c.sendLoop()
	go c.receiveLoop(projection)

	return c, c.snapshot, nil
}

// Send enqueues a client action for delivery. It is safe to call
// concurrently. The outbound buffer holds 32 actions; when it is full,
// Send waits until the sender activity drains one or the client is
// disconnected.
func (c *Client) Send(ev wire.ClientEvent) {
	select {
	case c.outbound <- ev:
	case <-c.done:
	}
}

// Disconnect ends the session: both activities stop and the final snapshot
// observes ServerShutdown == true only if the server, not the owner,
// initiated the close (spec.md §4.6).
func (c *Client) Disconnect() {
	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}
	c.conn.Close()
}

func (c *Client) sendLoop() {
	for {
		select {
		case ev := <-c.outbound:
			if err := writeEvent(c.conn, ev); err != nil {
				c.log.Debugf("send failed, closing: %v", err)
				c.Disconnect()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) receiveLoop(projection *GameStateProjection) {
	defer c.shutdownWithFlag(projection)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		ev, err := wire.DecodeServerEvent(data)
		if err != nil {
			c.log.Debugf("dropping malformed frame: %v", err)
			continue
		}
		projection.apply(ev)
		c.publish(projection)
	}
}

// shutdownWithFlag marks the projection as server-initiated-shutdown
// unless the owner already called Disconnect, then publishes one final
// snapshot carrying that flag (spec.md §4.6's one user-visible failure).
func (c *Client) shutdownWithFlag(projection *GameStateProjection) {
	select {
	case <-c.done:
	default:
		projection.ServerShutdown = true
		c.publish(projection)
		close(c.done)
	}
	c.conn.Close()
}

func (c *Client) publish(projection *GameStateProjection) {
	snap := projection.snapshot()
	select {
	case c.snapshot <- snap:
	default:
		// Drop the oldest pending snapshot rather than block the receive
		// loop — the owner only ever needs the latest state.
		select {
		case <-c.snapshot:
		default:
		}
		select {
		case c.snapshot <- snap:
		default:
		}
	}
}

func writeEvent(conn *websocket.Conn, ev wire.ClientEvent) error {
	data, err := wire.EncodeClientEvent(ev)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}
