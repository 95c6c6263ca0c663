package wire

import (
	"encoding/json"
	"fmt"
)

// GamePhase is the authoritative game server's coarse state.
type GamePhase byte

const (
	Lobby GamePhase = iota
	Bidding
	Playing
	Finished
)

var phaseNames = [...]string{"Lobby", "Bidding", "Playing", "Finished"}

func (p GamePhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

func (p GamePhase) MarshalJSON() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("wire: unknown game phase %d", p)
	}
	return []byte(`"` + phaseNames[p] + `"`), nil
}

func (p *GamePhase) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for i, name := range phaseNames {
		if name == s {
			*p = GamePhase(i)
			return nil
		}
	}
	return fmt.Errorf("wire: unknown game phase %q", s)
}

// PlayerInfo pairs a display name with its server-assigned id. It marshals
// as a two-element JSON array, matching Rust's default tuple encoding of
// (String, Uuid).
type PlayerInfo struct {
	Username string
	ID       string // canonical hyphenated UUID string
}

func (p PlayerInfo) MarshalJSON() ([]byte, error) {
	pair := [2]string{p.Username, p.ID}
	return json.Marshal(pair)
}

func (p *PlayerInfo) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("wire: invalid player tuple: %w", err)
	}
	p.Username, p.ID = pair[0], pair[1]
	return nil
}
