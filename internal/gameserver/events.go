package gameserver

import (
	"github.com/google/uuid"

	"wizardnet/internal/card"
	"wizardnet/internal/wire"
)

// HandleClientEvent validates ev against the authoritative state and, if
// valid, applies it. Invalid or out-of-turn actions are silently dropped
// (spec.md §7: "the authoritative client should never produce such
// frames"). SetUsername is handled during the handshake, before Join, and
// is ignored here if it arrives again.
func (s *Server) HandleClientEvent(sender uuid.UUID, ev wire.ClientEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case wire.SetUsername:
		// no-op post-handshake; see internal/session.

	case wire.SendChatMessage:
		p, ok := s.players[sender]
		if !ok {
			return
		}
		s.broadcastLocked(wire.PlayerChatMessage{Username: p.username, UUID: sender.String(), Content: e.Content})

	case wire.StartGame:
		if s.phase == wire.Lobby && s.numPlayersLocked() >= minPlayers && s.numPlayersLocked() <= maxPlayers {
			s.startRoundLocked(1)
		}

	case wire.MakeBid:
		s.handleMakeBidLocked(sender, e.Bid)

	case wire.SetTrumpColor:
		s.handleSetTrumpColorLocked(sender, e.Color)

	case wire.PlayCard:
		s.handlePlayCardLocked(sender, e.Card)

	case wire.Ready:
		s.handleReadyLocked(sender)
	}
}

func (s *Server) handleMakeBidLocked(sender uuid.UUID, bid uint8) {
	if s.phase != wire.Bidding {
		return
	}
	idx := s.indexOfLocked(sender)
	if idx < 0 || uint8(idx) != s.playerOnTurn {
		return
	}
	entry, ok := s.board.GetEntry(sender)
	if !ok || entry.Bid != nil {
		return
	}
	if bid > s.currentRound {
		return
	}

	isLastBidder := idx == s.dealerIndexLocked(s.currentRound)
	if isLastBidder {
		sum := s.board.SumBids()
		disallowed := int(s.currentRound) - int(sum)
		if disallowed >= 0 && int(bid) == disallowed {
			return
		}
	}

	s.board.SetBid(sender, bid)
	s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})

	if isLastBidder {
		s.phase = wire.Playing
		s.broadcastLocked(wire.SetGamePhase{Phase: wire.Playing})
		s.playerOnTurn = uint8(s.firstBidderIndexLocked(s.currentRound))
	} else {
		s.playerOnTurn = uint8((idx + 1) % s.numPlayersLocked())
	}
	s.broadcastLocked(wire.SetPlayerOnTurn{Index: s.playerOnTurn})
}

func (s *Server) handleSetTrumpColorLocked(sender uuid.UUID, color card.Color) {
	if s.phase != wire.Bidding {
		return
	}
	idx := s.indexOfLocked(sender)
	if idx < 0 || idx != s.dealerIndexLocked(s.currentRound) {
		return
	}
	if !s.trumpSuit.NeedsDealerChoice() {
		return
	}
	if uint8(idx) != s.playerOnTurn {
		return
	}

	s.trumpSuit = s.trumpSuit.WithColor(color)
	s.broadcastLocked(wire.SetTrumpSuit{TrumpSuit: s.trumpSuit})

	s.playerOnTurn = uint8(s.firstBidderIndexLocked(s.currentRound))
	s.broadcastLocked(wire.SetPlayerOnTurn{Index: s.playerOnTurn})
}

func (s *Server) handlePlayCardLocked(sender uuid.UUID, c card.Card) {
	n := s.numPlayersLocked()
	if len(s.playedCards) >= n {
		return // waiting for everyone's Ready; ignore further plays
	}
	if s.phase != wire.Playing {
		return
	}
	idx := s.indexOfLocked(sender)
	if idx < 0 || uint8(idx) != s.playerOnTurn {
		return
	}

	p := s.players[sender]
	handIdx := -1
	for i, hc := range p.hand {
		if hc == c {
			handIdx = i
			break
		}
	}
	if handIdx < 0 {
		return
	}

	if !s.cardSatisfiesLeadingColorLocked(p, c) {
		return
	}

	p.hand = append(p.hand[:handIdx], p.hand[handIdx+1:]...)
	s.playedCards = append(s.playedCards, play{id: sender, card: c})
	s.broadcastLocked(wire.PlayerPlayCard{UUID: sender.String(), Card: c})

	if len(s.playedCards) == n {
		winner := s.evaluateTrickWinnerLocked()
		s.board.IncrementWonTricks(winner)
		s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})
		s.waitingForReady = true
		s.broadcastLocked(wire.WaitingForReady{Waiting: true})
	} else {
		s.playerOnTurn = uint8((idx + 1) % n)
		s.broadcastLocked(wire.SetPlayerOnTurn{Index: s.playerOnTurn})
	}
}

// cardSatisfiesLeadingColorLocked implements the must-follow-leading-color
// rule (spec.md §4.5.4). This is a REDESIGN FLAG relative to the original
// source, whose PlayCard arm has a literal "// TODO check if the played
// card is valid" — implemented here in full because SPEC_FULL.md mandates
// it.
func (s *Server) cardSatisfiesLeadingColorLocked(p *player, c card.Card) bool {
	played := make([]card.Card, len(s.playedCards))
	for i, pc := range s.playedCards {
		played[i] = pc.card
	}
	leading := card.LeadingColor(played)
	if leading == nil {
		return true
	}

	handHasLeadingSimple := false
	for _, hc := range p.hand {
		if hc.Value.Kind == card.Simple && hc.Color == *leading {
			handHasLeadingSimple = true
			break
		}
	}
	if !handHasLeadingSimple {
		return true
	}

	if c.Value.Kind == card.Fool || c.Value.Kind == card.Wizard {
		return true
	}
	return c.Value.Kind == card.Simple && c.Color == *leading
}

func (s *Server) evaluateTrickWinnerLocked() uuid.UUID {
	plays := make([]card.Play[uuid.UUID], len(s.playedCards))
	for i, p := range s.playedCards {
		plays[i] = card.Play[uuid.UUID]{ID: p.id, Card: p.card}
	}
	trumpColor := s.trumpSuit.EffectiveColor()
	return card.EvaluateTrickWinner(plays, trumpColor).ID
}

func (s *Server) handleReadyLocked(sender uuid.UUID) {
	p, ok := s.players[sender]
	if !ok {
		return
	}
	p.ready = true
	s.broadcastLocked(wire.PlayerReady{UUID: sender.String(), Ready: true})

	if !s.allReadyLocked() {
		return
	}

	switch s.phase {
	case wire.Lobby, wire.Bidding:
		// nothing to advance; matches the source's empty match arms.

	case wire.Playing:
		if s.waitingForReady {
			s.advanceAfterTrickLocked()
		}

	case wire.Finished:
		s.abortToLobbyLocked()
	}
}

func (s *Server) allReadyLocked() bool {
	for _, p := range s.players {
		if !p.ready {
			return false
		}
	}
	return true
}

func (s *Server) resetReadyFlagsLocked() {
	for _, id := range s.order {
		s.players[id].ready = false
		s.broadcastLocked(wire.PlayerReady{UUID: id.String(), Ready: false})
	}
}

func (s *Server) advanceAfterTrickLocked() {
	winner := s.evaluateTrickWinnerLocked()
	numRounds := uint8(len(s.board.Rounds))

	if s.currentTrick < s.currentRound {
		s.currentTrick++
		s.playedCards = nil
		s.broadcastLocked(wire.ClearPlayedCards{})

		winnerIdx := s.indexOfLocked(winner)
		s.playerOnTurn = uint8(winnerIdx)
		s.broadcastLocked(wire.SetPlayerOnTurn{Index: s.playerOnTurn})

		s.resetReadyFlagsLocked()
		s.waitingForReady = false
		s.broadcastLocked(wire.WaitingForReady{Waiting: false})
		return
	}

	s.board.ApplyScores()
	s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})

	if s.currentRound == numRounds {
		s.phase = wire.Finished
		s.broadcastLocked(wire.SetGamePhase{Phase: wire.Finished})
	} else {
		s.startRoundLocked(s.currentRound + 1)
	}

	s.resetReadyFlagsLocked()
	s.waitingForReady = false
	s.broadcastLocked(wire.WaitingForReady{Waiting: false})
}
