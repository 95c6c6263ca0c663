// Package scoreboard implements the per-round (bid, tricks-won, score)
// matrix, grounded on wizardrs-core/src/scoreboard/mod.rs.
package scoreboard

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is one player's row for one round.
type Entry struct {
	Score     *int32 `json:"score"`
	Bid       *uint8 `json:"bid"`
	WonTricks uint8  `json:"won_tricks"`
}

// Player pairs a display name with its server-assigned id, preserving
// dealer order.
type Player struct {
	Username string    `json:"username"`
	ID       uuid.UUID `json:"id"`
}

// Board is the full scoreboard: the fixed player list, the R x N round
// matrix, and the round currently being played (1-indexed).
type Board struct {
	Players      []Player  `json:"players"`
	Rounds       [][]Entry `json:"rounds"`
	CurrentRound uint8     `json:"current_round"`
}

// New sizes the matrix to R x N, R = 60/len(players), with default zero
// entries (no score, no bid, no tricks won).
func New(players []Player) *Board {
	n := len(players)
	rounds := 0
	if n > 0 {
		rounds = 60 / n
	}
	matrix := make([][]Entry, rounds)
	for r := range matrix {
		matrix[r] = make([]Entry, n)
	}
	return &Board{
		Players:      players,
		Rounds:       matrix,
		CurrentRound: 1,
	}
}

// SetCurrentRound points subsequent Set*/Increment* calls at round r (the
// round number equals the number of cards dealt that round).
func (b *Board) SetCurrentRound(r uint8) {
	b.CurrentRound = r
}

// GetIndex returns the table position of id, or -1 if id isn't a player.
func (b *Board) GetIndex(id uuid.UUID) int {
	for i, p := range b.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SetBid records id's bid for the current round. No-op if id isn't a
// player.
func (b *Board) SetBid(id uuid.UUID, bid uint8) {
	idx := b.GetIndex(id)
	if idx < 0 {
		return
	}
	v := bid
	b.Rounds[b.CurrentRound-1][idx].Bid = &v
}

// IncrementWonTricks bumps id's won-tricks count for the current round by
// one, saturating at 255. No-op if id isn't a player.
func (b *Board) IncrementWonTricks(id uuid.UUID) {
	idx := b.GetIndex(id)
	if idx < 0 {
		return
	}
	entry := &b.Rounds[b.CurrentRound-1][idx]
	if entry.WonTricks < 255 {
		entry.WonTricks++
	}
}

// ApplyScores computes the current round's score delta for every player
// with a bid (20 + 10*bid if bid == won_tricks, else -10*|bid - won_tricks|)
// and adds it to the previous round's cumulative score (0 for round 1).
func (b *Board) ApplyScores() {
	roundIdx := int(b.CurrentRound) - 1
	row := b.Rounds[roundIdx]

	for i := range row {
		entry := &row[i]
		if entry.Bid == nil {
			continue
		}
		bid := int32(*entry.Bid)
		won := int32(entry.WonTricks)

		var delta int32
		if bid == won {
			delta = 20 + 10*bid
		} else {
			diff := bid - won
			if diff < 0 {
				diff = -diff
			}
			delta = -10 * diff
		}

		prevScore := int32(0)
		if roundIdx > 0 {
			if prev := b.Rounds[roundIdx-1][i].Score; prev != nil {
				prevScore = *prev
			}
		}
		score := prevScore + delta
		entry.Score = &score
	}
}

// SumBids adds up every bid placed so far in the current round (a missing
// bid counts as 0).
func (b *Board) SumBids() uint32 {
	var sum uint32
	for _, entry := range b.Rounds[b.CurrentRound-1] {
		if entry.Bid != nil {
			sum += uint32(*entry.Bid)
		}
	}
	return sum
}

// GetEntry returns id's entry for the current round.
func (b *Board) GetEntry(id uuid.UUID) (Entry, bool) {
	idx := b.GetIndex(id)
	if idx < 0 {
		return Entry{}, false
	}
	return b.Rounds[b.CurrentRound-1][idx], true
}

// Rebuild returns a fresh scoreboard for a new player list; it is the same
// as New. (The game server's lobby resets call New directly.)
func Rebuild(players []Player) *Board {
	return New(players)
}

func (e Entry) String() string {
	score := "none"
	if e.Score != nil {
		score = fmt.Sprintf("%d", *e.Score)
	}
	bid := "none"
	if e.Bid != nil {
		bid = fmt.Sprintf("%d", *e.Bid)
	}
	return fmt.Sprintf("{score: %s, bid: %s, won: %d}", score, bid, e.WonTricks)
}
