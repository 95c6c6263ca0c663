package scoreboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func threePlayers() []Player {
	return []Player{
		{Username: "alice", ID: uuid.New()},
		{Username: "bob", ID: uuid.New()},
		{Username: "carol", ID: uuid.New()},
	}
}

func TestNew_SizesMatrixToRoundsByPlayers(t *testing.T) {
	players := threePlayers()
	b := New(players)
	if len(b.Rounds) != 20 { // 60 / 3
		t.Fatalf("rounds = %d, want 20", len(b.Rounds))
	}
	for _, round := range b.Rounds {
		if len(round) != 3 {
			t.Fatalf("round width = %d, want 3", len(round))
		}
	}
	if b.CurrentRound != 1 {
		t.Fatalf("current round = %d, want 1", b.CurrentRound)
	}
}

func TestSetBid_WritesCurrentRound(t *testing.T) {
	players := threePlayers()
	b := New(players)
	b.SetCurrentRound(3)
	b.SetBid(players[1].ID, 2)

	entry, ok := b.GetEntry(players[1].ID)
	if !ok {
		t.Fatal("expected entry to exist")
	}
	if entry.Bid == nil || *entry.Bid != 2 {
		t.Fatalf("bid = %v, want 2", entry.Bid)
	}
}

func TestSetBid_UnknownPlayerIsNoOp(t *testing.T) {
	players := threePlayers()
	b := New(players)
	b.SetBid(uuid.New(), 1) // should not panic
}

func TestIncrementWonTricks_SaturatesAt255(t *testing.T) {
	players := threePlayers()
	b := New(players)
	entry := &b.Rounds[0][0]
	entry.WonTricks = 255
	b.IncrementWonTricks(players[0].ID)
	if b.Rounds[0][0].WonTricks != 255 {
		t.Fatalf("won tricks = %d, want saturated 255", b.Rounds[0][0].WonTricks)
	}
}

func TestApplyScores_CorrectBidAndCumulative(t *testing.T) {
	players := threePlayers()
	b := New(players)

	// Round 1: alice bids 2, wins 2 (correct => 20+20=40); bob bids 1, wins 0 (-10); carol no bid.
	b.SetBid(players[0].ID, 2)
	b.Rounds[0][0].WonTricks = 2
	b.SetBid(players[1].ID, 1)
	b.Rounds[0][1].WonTricks = 0

	b.ApplyScores()

	e0, _ := b.GetEntry(players[0].ID)
	if e0.Score == nil || *e0.Score != 40 {
		t.Fatalf("alice round 1 score = %v, want 40", e0.Score)
	}
	e1, _ := b.GetEntry(players[1].ID)
	if e1.Score == nil || *e1.Score != -10 {
		t.Fatalf("bob round 1 score = %v, want -10", e1.Score)
	}
	e2, _ := b.GetEntry(players[2].ID)
	if e2.Score != nil {
		t.Fatalf("carol round 1 score should stay unset without a bid")
	}

	// Round 2 builds on round 1's score.
	b.SetCurrentRound(2)
	b.SetBid(players[0].ID, 0)
	b.Rounds[1][0].WonTricks = 0 // correct guess of 0 => +20

	b.ApplyScores()

	e0Round2, _ := b.GetEntry(players[0].ID)
	if e0Round2.Score == nil || *e0Round2.Score != 60 {
		t.Fatalf("alice round 2 cumulative score = %v, want 60 (40 + 20)", e0Round2.Score)
	}
}

func TestSumBids(t *testing.T) {
	players := threePlayers()
	b := New(players)
	b.SetBid(players[0].ID, 1)
	b.SetBid(players[1].ID, 2)
	if got := b.SumBids(); got != 3 {
		t.Fatalf("sum = %d, want 3", got)
	}
}

func TestRebuild_ProducesFreshMatrixForNewRoster(t *testing.T) {
	players := threePlayers()
	b := New(players)
	b.SetBid(players[0].ID, 3)
	b.Rounds[0][0].WonTricks = 3
	b.ApplyScores()

	fresh := Rebuild(players)

	// Rebuild must hand back a zeroed matrix sized for the same roster,
	// not a copy carrying over the prior game's bids/scores.
	if diff := cmp.Diff(New(players), fresh); diff != "" {
		t.Fatalf("Rebuild(players) != New(players) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b, fresh); diff == "" {
		t.Fatal("expected Rebuild's fresh board to differ from the played-in board")
	}
}

func TestGetIndex(t *testing.T) {
	players := threePlayers()
	b := New(players)
	if b.GetIndex(players[2].ID) != 2 {
		t.Fatalf("expected index 2")
	}
	if b.GetIndex(uuid.New()) != -1 {
		t.Fatalf("expected -1 for unknown player")
	}
}
