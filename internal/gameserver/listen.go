package gameserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"wizardnet/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// listener owns the accepting HTTP/WebSocket front door for a Server,
// grounded on the teacher's Gateway.HandleWebSocket (one handler per
// incoming upgrade, one goroutine per accepted peer). Server holds it as
// its listen field, guarded by its own mutex rather than Server.mu.
type listener struct {
	mu         sync.Mutex
	httpSrv    *http.Server
	addr       string
	quietWg    sync.WaitGroup
	shutdownCh chan struct{}
}

// Start binds a net/http listener at addr and upgrades every request at
// "/ws" via gorilla/websocket, handing each accepted connection to
// session.Accept on its own goroutine. It returns once the listener is
// bound; the accept loop continues in the background until Shutdown.
func (s *Server) Start(ctx context.Context, addr string) error {
	shutdownCh := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warnf("websocket upgrade failed: %v", err)
			return
		}
		s.listen.quietWg.Add(1)
		go func() {
			defer s.listen.quietWg.Done()
			session.Accept(conn, s, s.log, shutdownCh)
		}()
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("gameserver: listen on %s: %w", addr, err)
	}

	s.listen.mu.Lock()
	s.listen.addr = ln.Addr().String()
	s.listen.httpSrv = &http.Server{Handler: mux}
	s.listen.shutdownCh = shutdownCh
	s.listen.mu.Unlock()

	go func() {
		if err := s.listen.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("http serve: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.listen.addr)
	return nil
}

// Shutdown closes the listener, disconnects every live peer, and returns
// once quiescent (teacher's Gateway/Lobby shutdown idiom). http.Server.
// Shutdown alone only stops accepting new connections — it never touches
// already-hijacked websocket connections — so every accepted session is
// also handed a cancellation signal (shutdownCh) up front in Start; closing
// it here is what actually makes quietWg.Wait below return instead of
// blocking on peers nothing ever told to stop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.listen.mu.Lock()
	httpSrv := s.listen.httpSrv
	shutdownCh := s.listen.shutdownCh
	s.listen.mu.Unlock()
	if httpSrv == nil {
		return nil
	}

	// Clear the player table before stopping the listener and signalling
	// peers, so no broadcast reaches a session that is being torn down.
	s.mu.Lock()
	s.order = nil
	s.players = make(map[uuid.UUID]*player)
	s.mu.Unlock()

	shutdownErr := httpSrv.Shutdown(ctx)
	if shutdownCh != nil {
		close(shutdownCh)
	}

	done := make(chan struct{})
	go func() {
		s.listen.quietWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		if shutdownErr != nil {
			return fmt.Errorf("gameserver: shutdown: %w", shutdownErr)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the bound local address ("host:port"), or "" before Start.
func (s *Server) Addr() string {
	s.listen.mu.Lock()
	defer s.listen.mu.Unlock()
	return s.listen.addr
}

// PublicAddr returns the externally reachable URL for this table (the
// original implementation's ngrok tunnel), or "" when no tunnel
// collaborator is wired in — which is always, today, since that
// collaborator is out of scope. The seam stays available so one could be
// added later without touching anything else in this package.
func (s *Server) PublicAddr() string {
	return ""
}
