// Package wire implements the tagged client/server event vocabulary and its
// one-JSON-object-per-text-frame encoding, grounded on
// wizardrs-core/src/{client_event,server_event}/mod.rs. Each event carries
// its own "type" discriminator at the top level, matching Rust's default
// #[serde(tag = "type")] representation so the wire format round-trips
// without translation.
package wire

import (
	"encoding/json"
	"fmt"

	"wizardnet/internal/card"
)

// ClientEvent is any frame a peer may send to the server.
type ClientEvent interface {
	isClientEvent()
}

// SetUsername must be the first frame a peer sends after its handshake.
type SetUsername struct {
	Username string
}

// SendChatMessage asks the server to broadcast content to every peer.
type SendChatMessage struct {
	Content string
}

// StartGame asks the server to leave the Lobby and deal round 1. Only
// honored while phase == Lobby and the player count is in [3,6].
type StartGame struct{}

// MakeBid places the sender's bid for the current round.
type MakeBid struct {
	Bid uint8
}

// SetTrumpColor resolves a Wizard turn-up; only the dealer may send it.
type SetTrumpColor struct {
	Color card.Color
}

// PlayCard plays a card from the sender's hand onto the current trick.
type PlayCard struct {
	Card card.Card
}

// Ready acknowledges a resolved trick, round, or finished game.
type Ready struct{}

func (SetUsername) isClientEvent()     {}
func (SendChatMessage) isClientEvent() {}
func (StartGame) isClientEvent()       {}
func (MakeBid) isClientEvent()         {}
func (SetTrumpColor) isClientEvent()   {}
func (PlayCard) isClientEvent()        {}
func (Ready) isClientEvent()           {}

// DecodeClientEvent sniffs the top-level "type" field and decodes the
// matching variant. Unknown types return an error; callers are expected to
// log and drop the frame rather than treat it as fatal (see SPEC_FULL.md
// §4.3).
func DecodeClientEvent(data []byte) (ClientEvent, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("wire: invalid client frame: %w", err)
	}

	switch tag.Type {
	case "SetUsername":
		var w struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetUsername: %w", err)
		}
		return SetUsername{Username: w.Username}, nil

	case "SendChatMessage":
		var w struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SendChatMessage: %w", err)
		}
		return SendChatMessage{Content: w.Content}, nil

	case "StartGame":
		return StartGame{}, nil

	case "MakeBid":
		var w struct {
			Bid uint8 `json:"bid"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: MakeBid: %w", err)
		}
		return MakeBid{Bid: w.Bid}, nil

	case "SetTrumpColor":
		var w struct {
			Color string `json:"color"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetTrumpColor: %w", err)
		}
		c, ok := card.ParseColor(w.Color)
		if !ok {
			return nil, fmt.Errorf("wire: SetTrumpColor: unknown color %q", w.Color)
		}
		return SetTrumpColor{Color: c}, nil

	case "PlayCard":
		var w struct {
			Card card.Card `json:"card"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: PlayCard: %w", err)
		}
		return PlayCard{Card: w.Card}, nil

	case "Ready":
		return Ready{}, nil

	default:
		return nil, fmt.Errorf("wire: unknown client event type %q", tag.Type)
	}
}

// EncodeClientEvent renders ev as a single tagged JSON object.
func EncodeClientEvent(ev ClientEvent) ([]byte, error) {
	switch e := ev.(type) {
	case SetUsername:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Username string `json:"username"`
		}{"SetUsername", e.Username})

	case SendChatMessage:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{"SendChatMessage", e.Content})

	case StartGame:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{"StartGame"})

	case MakeBid:
		return json.Marshal(struct {
			Type string `json:"type"`
			Bid  uint8  `json:"bid"`
		}{"MakeBid", e.Bid})

	case SetTrumpColor:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Color string `json:"color"`
		}{"SetTrumpColor", e.Color.String()})

	case PlayCard:
		return json.Marshal(struct {
			Type string    `json:"type"`
			Card card.Card `json:"card"`
		}{"PlayCard", e.Card})

	case Ready:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{"Ready"})

	default:
		return nil, fmt.Errorf("wire: unknown client event %T", ev)
	}
}
