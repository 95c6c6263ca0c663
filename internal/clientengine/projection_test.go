package clientengine

import (
	"testing"

	"wizardnet/internal/card"
	"wizardnet/internal/scoreboard"
	"wizardnet/internal/wire"
)

func TestApply_SetHandSortsDeterministically(t *testing.T) {
	p := newProjection("self", "alice")
	hand := []card.Card{
		{Color: card.Blue, Value: card.FoolValue()},
		{Color: card.Blue, Value: mustSimple(t, 5)},
		{Color: card.Blue, Value: card.WizardValue()},
		{Color: card.Red, Value: mustSimple(t, 1)},
	}
	p.apply(wire.SetHand{Hand: hand})

	want := []struct {
		color card.Color
		kind  card.ValueKind
	}{
		{card.Blue, card.Fool},
		{card.Blue, card.Simple},
		{card.Blue, card.Wizard},
		{card.Red, card.Simple},
	}
	if len(p.Hand) != len(want) {
		t.Fatalf("hand length = %d, want %d", len(p.Hand), len(want))
	}
	for i, w := range want {
		if p.Hand[i].Color != w.color || p.Hand[i].Value.Kind != w.kind {
			t.Errorf("hand[%d] = %+v, want color=%v kind=%v", i, p.Hand[i], w.color, w.kind)
		}
	}
}

func mustSimple(t *testing.T, n uint8) card.Value {
	t.Helper()
	v, err := card.SimpleValue(n)
	if err != nil {
		t.Fatalf("SimpleValue(%d): %v", n, err)
	}
	return v
}

func TestApply_ChatLogIsBounded(t *testing.T) {
	p := newProjection("self", "alice")
	for i := 0; i < chatLogCapacity+10; i++ {
		p.apply(wire.PlayerChatMessage{Username: "bob", UUID: "u", Content: "hi"})
	}
	if len(p.ChatLog) != chatLogCapacity {
		t.Fatalf("chat log length = %d, want %d", len(p.ChatLog), chatLogCapacity)
	}
}

func TestApply_TracksPhaseTurnAndPlayedCards(t *testing.T) {
	p := newProjection("self", "alice")
	p.apply(wire.SetGamePhase{Phase: wire.Playing})
	p.apply(wire.SetPlayerOnTurn{Index: 2})
	p.apply(wire.PlayerPlayCard{UUID: "u1", Card: card.Card{Color: card.Red, Value: mustSimple(t, 7)}})
	p.apply(wire.PlayerPlayCard{UUID: "u2", Card: card.Card{Color: card.Green, Value: mustSimple(t, 3)}})

	if p.Phase != wire.Playing {
		t.Fatalf("phase = %v, want Playing", p.Phase)
	}
	if p.PlayerOnTurn != 2 {
		t.Fatalf("player on turn = %d, want 2", p.PlayerOnTurn)
	}
	if len(p.PlayedCards) != 2 {
		t.Fatalf("played cards = %d, want 2", len(p.PlayedCards))
	}

	snap := p.snapshot()
	leading := snap.LeadingColor()
	if leading == nil || *leading != card.Red {
		t.Fatalf("leading color = %v, want Red", leading)
	}

	p.apply(wire.ClearPlayedCards{})
	if len(p.PlayedCards) != 0 {
		t.Fatalf("played cards after clear = %d, want 0", len(p.PlayedCards))
	}
}

func TestSnapshot_IsLastToBid(t *testing.T) {
	p := newProjection("self-id", "alice")
	p.apply(wire.UpdatePlayerList{Players: []wire.PlayerInfo{
		{Username: "alice", ID: "self-id"},
		{Username: "bob", ID: "bob-id"},
		{Username: "carol", ID: "carol-id"},
	}})
	p.apply(wire.SetGamePhase{Phase: wire.Bidding})
	p.apply(wire.SetPlayerOnTurn{Index: 0})

	board := scoreboard.New([]scoreboard.Player{})
	board.Players = nil // irrelevant to IsLastToBid; it reads CurrentRound/Rounds by shape
	board.Rounds = [][]scoreboard.Entry{{{}, {}, {}}}
	board.CurrentRound = 1
	bid0, bid1 := uint8(1), uint8(2)
	board.Rounds[0][1].Bid = &bid0
	board.Rounds[0][2].Bid = &bid1
	p.apply(wire.UpdateScoreBoard{ScoreBoard: board})

	snap := p.snapshot()
	if !snap.IsLastToBid("self-id") {
		t.Fatal("expected self to be recognized as the last bidder")
	}
}
