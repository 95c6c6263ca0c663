package clientengine

import (
	"sort"

	"wizardnet/internal/card"
	"wizardnet/internal/scoreboard"
	"wizardnet/internal/trump"
	"wizardnet/internal/wire"
)

// PlayedCard mirrors a card laid to the current trick, tagged with whoever
// played it.
type PlayedCard struct {
	UUID string
	Card card.Card
}

// GameStateProjection is the client's local mirror of the authoritative
// GameState (spec.md §4.6): a handler table, one arm per server event,
// folds inbound frames into this struct. The server never reads it back —
// the hand sort order in particular is purely a display convenience.
type GameStateProjection struct {
	SelfID   string
	Username string

	Players []wire.PlayerInfo
	Phase   wire.GamePhase

	Hand         []card.Card
	TrumpSuit    trump.Suit
	PlayerOnTurn uint8
	PlayedCards  []PlayedCard
	ScoreBoard   *scoreboard.Board

	WaitingForReady bool
	ReadyStates     map[string]bool

	ChatLog []wire.PlayerChatMessage

	ServerShutdown bool
}

func newProjection(selfID, username string) *GameStateProjection {
	return &GameStateProjection{
		SelfID:      selfID,
		Username:    username,
		Phase:       wire.Lobby,
		ReadyStates: make(map[string]bool),
	}
}

// snapshot produces an owned deep-enough copy safe to hand to the caller
// over the out-of-band snapshot channel: slices and the ready-state map are
// copied so later mutations of the live projection can't race the reader.
func (p *GameStateProjection) snapshot() Snapshot {
	s := Snapshot{
		SelfID:          p.SelfID,
		Username:        p.Username,
		Phase:           p.Phase,
		TrumpSuit:       p.TrumpSuit,
		PlayerOnTurn:    p.PlayerOnTurn,
		ScoreBoard:      p.ScoreBoard,
		WaitingForReady: p.WaitingForReady,
		ServerShutdown:  p.ServerShutdown,
	}
	s.Players = append([]wire.PlayerInfo(nil), p.Players...)
	s.Hand = append([]card.Card(nil), p.Hand...)
	s.PlayedCards = append([]PlayedCard(nil), p.PlayedCards...)
	s.ChatLog = append([]wire.PlayerChatMessage(nil), p.ChatLog...)
	s.ReadyStates = make(map[string]bool, len(p.ReadyStates))
	for id, ready := range p.ReadyStates {
		s.ReadyStates[id] = ready
	}
	return s
}

// Snapshot is the immutable, owner-facing view published after every
// projection mutation.
type Snapshot struct {
	SelfID   string
	Username string

	Players []wire.PlayerInfo
	Phase   wire.GamePhase

	Hand         []card.Card
	TrumpSuit    trump.Suit
	PlayerOnTurn uint8
	PlayedCards  []PlayedCard
	ScoreBoard   *scoreboard.Board

	WaitingForReady bool
	ReadyStates     map[string]bool

	ChatLog []wire.PlayerChatMessage

	ServerShutdown bool
}

// IsLastToBid reports whether selfID is on turn and is the round's last
// bidder — equivalently, whether the scoreboard shows every other seat has
// already bid. Mirrors the server's own dealer-bids-last invariant without
// needing to know the dealer index locally.
func (s Snapshot) IsLastToBid(selfID string) bool {
	if s.Phase != wire.Bidding || s.ScoreBoard == nil || len(s.Players) == 0 {
		return false
	}
	if int(s.PlayerOnTurn) >= len(s.Players) || s.Players[s.PlayerOnTurn].ID != selfID {
		return false
	}
	row := s.ScoreBoard.Rounds[s.ScoreBoard.CurrentRound-1]
	bidsPlaced := 0
	for _, entry := range row {
		if entry.Bid != nil {
			bidsPlaced++
		}
	}
	return bidsPlaced == len(s.Players)-1
}

// LeadingColor returns the color the current trick must follow, or nil if
// there isn't one yet (fresh trick, or only Fools played so far).
func (s Snapshot) LeadingColor() *card.Color {
	cards := make([]card.Card, len(s.PlayedCards))
	for i, pc := range s.PlayedCards {
		cards[i] = pc.Card
	}
	return card.LeadingColor(cards)
}

// sortHand orders the hand by (color rank, descending value with Fool high
// and Wizard low within a color group) so the UI renders a stable layout
// across updates — a purely local convenience; the server is never told
// the order (spec.md §4.6).
func sortHand(hand []card.Card) {
	sort.SliceStable(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]
		if a.Color != b.Color {
			return a.Color < b.Color
		}
		return handRank(a.Value) > handRank(b.Value)
	})
}

// handRank orders Fool highest and Wizard lowest within a color group (the
// inverse of card.Value.Rank, which the wire protocol uses for trick
// comparison, not display).
func handRank(v card.Value) int {
	switch v.Kind {
	case card.Fool:
		return 15
	case card.Wizard:
		return 0
	default:
		return int(v.Num)
	}
}
