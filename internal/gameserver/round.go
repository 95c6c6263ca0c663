package gameserver

import (
	"wizardnet/internal/card"
	"wizardnet/internal/trump"
	"wizardnet/internal/wire"
)

// startRoundLocked implements spec.md §4.5.2. r is 1-indexed and equals the
// number of cards dealt to each player this round.
func (s *Server) startRoundLocked(r uint8) {
	for _, p := range s.players {
		p.hand = nil
		p.ready = false
	}
	s.playedCards = nil
	s.broadcastLocked(wire.ClearPlayedCards{})

	s.currentRound = r
	s.currentTrick = 1

	deck := card.All()
	shuffled := deck[:]
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cursor := 0
	for _, id := range s.order {
		hand := make([]card.Card, r)
		copy(hand, shuffled[cursor:cursor+int(r)])
		cursor += int(r)
		s.players[id].hand = hand
		s.sendToLocked(id, wire.SetHand{Hand: hand})
	}

	var turnedUp *card.Card
	if cursor < deckSize {
		c := shuffled[cursor]
		turnedUp = &c
	}
	s.trumpSuit = trump.FromCard(turnedUp)
	s.broadcastLocked(wire.SetTrumpSuit{TrumpSuit: s.trumpSuit})

	s.phase = wire.Bidding
	s.broadcastLocked(wire.SetGamePhase{Phase: wire.Bidding})

	dealerIdx := s.dealerIndexLocked(r)
	firstBidderIdx := s.firstBidderIndexLocked(r)

	if s.trumpSuit.NeedsDealerChoice() {
		s.playerOnTurn = uint8(dealerIdx)
		s.sendToLocked(s.order[dealerIdx], wire.RequestSelectTrumpColor{})
	} else {
		s.playerOnTurn = uint8(firstBidderIdx)
		s.broadcastLocked(wire.SetPlayerOnTurn{Index: s.playerOnTurn})
	}

	s.board.SetCurrentRound(r)
	s.broadcastLocked(wire.UpdateScoreBoard{ScoreBoard: s.board})
}
