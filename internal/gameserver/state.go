// Package gameserver implements the authoritative state machine (C5):
// lobby admission, dealing, turn advancement, trick resolution, and
// round/game progression. Grounded on the teacher's holdem.Game — one
// mutex guarding a single struct, a seeded *rand.Rand for shuffling — and
// on wizardrs-server/src/client/handle_client_event.rs for the bidding,
// playing, and ready-handling state transitions themselves.
package gameserver

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"wizardnet/internal/card"
	"wizardnet/internal/scoreboard"
	"wizardnet/internal/trump"
	"wizardnet/internal/wire"
	"wizardnet/internal/wlog"

	"github.com/decred/slog"
)

// Sender is how the game server reaches a connected peer. internal/session's
// PeerSession implements this by enqueueing onto its private send queue.
// Aliased from wire.Sender so internal/session can satisfy this contract
// without importing internal/gameserver.
type Sender = wire.Sender

type player struct {
	id       uuid.UUID
	username string
	hand     []card.Card
	ready    bool
	sender   Sender
}

type play struct {
	id   uuid.UUID
	card card.Card
}

// Server is the single authoritative GameState (spec.md §3) plus the
// dispatch logic that validates and applies every client event against it.
// A single mutex protects the whole struct, which trivially satisfies the
// fixed lock-ordering rule in spec.md §5 (phase -> scoreboard -> trump_suit
// -> played_cards -> players -> counters): there is only one lock to
// acquire.
type Server struct {
	mu  sync.Mutex
	log slog.Logger
	rng *rand.Rand

	order   []uuid.UUID // dealer order; index 0 is round-1 dealer
	players map[uuid.UUID]*player

	phase           wire.GamePhase
	currentRound    uint8
	currentTrick    uint8
	trumpSuit       trump.Suit
	playerOnTurn    uint8
	playedCards     []play
	board           *scoreboard.Board
	waitingForReady bool

	listen listener
}

// New returns a Server in the Lobby phase with no players, shuffling with a
// time-seeded source.
func New(log slog.Logger) *Server {
	return newWithRNG(log, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newWithRNG is New with an injectable randomness source. spec.md's
// deterministic-testing note (§9) asks for the deck shuffle to accept a
// source a test can pin; New always passes a real one, but tests can call
// this directly with a scripted *rand.Rand to reproduce an exact deal.
func newWithRNG(log slog.Logger, rng *rand.Rand) *Server {
	if log == nil {
		log = wlog.Disabled("gameserver")
	}
	return &Server{
		log:     log,
		rng:     rng,
		players: make(map[uuid.UUID]*player),
		board:   scoreboard.New(nil),
		phase:   wire.Lobby,
	}
}

// Phase reports the current game phase.
func (s *Server) Phase() wire.GamePhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// NumPlayers reports the current roster size.
func (s *Server) NumPlayers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *Server) indexOfLocked(id uuid.UUID) int {
	for i, pid := range s.order {
		if pid == id {
			return i
		}
	}
	return -1
}

func (s *Server) numPlayersLocked() int {
	return len(s.order)
}

func (s *Server) broadcastLocked(ev wire.ServerEvent) {
	for _, id := range s.order {
		s.players[id].sender.Send(ev)
	}
}

func (s *Server) sendToLocked(id uuid.UUID, ev wire.ServerEvent) {
	if p, ok := s.players[id]; ok {
		p.sender.Send(ev)
	}
}

func (s *Server) playerListLocked() []wire.PlayerInfo {
	infos := make([]wire.PlayerInfo, len(s.order))
	for i, id := range s.order {
		infos[i] = wire.PlayerInfo{Username: s.players[id].username, ID: id.String()}
	}
	return infos
}

func (s *Server) broadcastPlayerListLocked() {
	s.broadcastLocked(wire.UpdatePlayerList{Players: s.playerListLocked()})
}

func (s *Server) rebuildScoreboardLocked() {
	players := make([]scoreboard.Player, len(s.order))
	for i, id := range s.order {
		players[i] = scoreboard.Player{Username: s.players[id].username, ID: id}
	}
	s.board = scoreboard.New(players)
}

// dealerIndexLocked returns the dealer's table index for round r:
// (r-1) mod N. The dealer is always the last bidder of the round (verified
// against wizardrs-server's is_last_player_to_bid arithmetic).
func (s *Server) dealerIndexLocked(r uint8) int {
	n := s.numPlayersLocked()
	if n == 0 {
		return 0
	}
	return int(r-1) % n
}

// firstBidderIndexLocked returns the first bidder's table index for round
// r: r mod N (the player to the dealer's left).
func (s *Server) firstBidderIndexLocked(r uint8) int {
	n := s.numPlayersLocked()
	if n == 0 {
		return 0
	}
	return int(r) % n
}
