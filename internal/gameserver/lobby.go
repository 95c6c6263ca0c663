package gameserver

import (
	"github.com/google/uuid"

	"wizardnet/internal/trump"
	"wizardnet/internal/wire"
)

// Join admits a newly handshaken peer. It is only valid while phase ==
// Lobby (spec.md §4.4 step 4 and §5's Lobby admission race: the caller
// must serialize accept-and-register through this same call so a
// concurrent StartGame can't race a new peer in).
func (s *Server) Join(id uuid.UUID, username string, sender Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != wire.Lobby {
		return ErrGameInProgress
	}
	if s.numPlayersLocked() >= maxPlayers {
		return ErrPlayerCountOutOfRange
	}

	s.order = append(s.order, id)
	s.players[id] = &player{id: id, username: username, sender: sender}

	s.rebuildScoreboardLocked()
	s.broadcastPlayerListLocked()
	s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})
	return nil
}

// Leave removes a peer from the table. While in the Lobby this just
// updates the roster and scoreboard sizing; otherwise it aborts the
// in-progress game back to the Lobby (Open Question 1's resolution — see
// SPEC_FULL.md §4.5).
func (s *Server) Leave(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return
	}
	wasLobby := s.phase == wire.Lobby

	delete(s.players, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if wasLobby {
		s.rebuildScoreboardLocked()
		s.broadcastPlayerListLocked()
		s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})
		return
	}
	s.abortToLobbyLocked()
}

// abortToLobbyLocked performs an explicit, observable reset to the Lobby:
// every transition is its own broadcast rather than a silent scoreboard
// rewrite, per spec.md §9's requirement that implementers make the
// mid-game-disconnect policy explicit.
func (s *Server) abortToLobbyLocked() {
	for _, p := range s.players {
		p.hand = nil
		p.ready = false
	}

	s.playedCards = nil
	s.broadcastLocked(wire.ClearPlayedCards{})

	s.phase = wire.Lobby
	s.broadcastLocked(wire.SetGamePhase{Phase: wire.Lobby})

	s.currentRound = 0
	s.currentTrick = 0

	s.trumpSuit = trump.FromCard(nil)
	s.broadcastLocked(wire.SetTrumpSuit{TrumpSuit: s.trumpSuit})

	s.playerOnTurn = 0
	s.broadcastLocked(wire.SetPlayerOnTurn{Index: 0})

	s.rebuildScoreboardLocked()
	s.broadcastPlayerListLocked()
	s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})

	s.waitingForReady = false
	s.broadcastLocked(wire.WaitingForReady{Waiting: false})
}
