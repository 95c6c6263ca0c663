package wire

import (
	"encoding/json"
	"fmt"

	"wizardnet/internal/card"
	"wizardnet/internal/scoreboard"
	"wizardnet/internal/trump"
)

// ServerEvent is any frame the server may send to a peer.
type ServerEvent interface {
	isServerEvent()
}

// SetUUID is always the first frame sent to a newly accepted peer.
type SetUUID struct {
	UUID string
}

// UpdatePlayerList replaces every peer's view of the lobby roster, in
// dealer order.
type UpdatePlayerList struct {
	Players []PlayerInfo
}

// PlayerChatMessage relays a chat line verbatim to every peer.
type PlayerChatMessage struct {
	Username string
	UUID     string
	Content  string
}

// SetGamePhase announces a phase transition.
type SetGamePhase struct {
	Phase GamePhase
}

// SetHand delivers a peer's private hand. Never broadcast — sent only to
// its owner.
type SetHand struct {
	Hand []card.Card
}

// SetTrumpSuit announces the round's trump state (including an unresolved
// Wizard turn-up awaiting RequestSelectTrumpColor).
type SetTrumpSuit struct {
	TrumpSuit trump.Suit
}

// RequestSelectTrumpColor asks the dealer specifically to choose a color
// for a Wizard turn-up. Sent only to the dealer.
type RequestSelectTrumpColor struct{}

// UpdateScoreBoard broadcasts the authoritative scoreboard after every
// mutation.
type UpdateScoreBoard struct {
	ScoreBoard *scoreboard.Board
}

// SetPlayerOnTurn announces whose turn it is to bid or play.
type SetPlayerOnTurn struct {
	Index uint8
}

// PlayerPlayCard announces a card played to the current trick.
type PlayerPlayCard struct {
	UUID string
	Card card.Card
}

// ClearPlayedCards tells peers to clear their trick display; a new trick
// is starting.
type ClearPlayedCards struct{}

// WaitingForReady toggles whether the server is waiting for every peer's
// Ready before advancing.
type WaitingForReady struct {
	Waiting bool
}

// PlayerReady announces one peer's ready flag.
type PlayerReady struct {
	UUID  string
	Ready bool
}

func (SetUUID) isServerEvent()                 {}
func (UpdatePlayerList) isServerEvent()         {}
func (PlayerChatMessage) isServerEvent()        {}
func (SetGamePhase) isServerEvent()             {}
func (SetHand) isServerEvent()                  {}
func (SetTrumpSuit) isServerEvent()             {}
func (RequestSelectTrumpColor) isServerEvent()  {}
func (UpdateScoreBoard) isServerEvent()         {}
func (SetPlayerOnTurn) isServerEvent()          {}
func (PlayerPlayCard) isServerEvent()           {}
func (ClearPlayedCards) isServerEvent()         {}
func (WaitingForReady) isServerEvent()          {}
func (PlayerReady) isServerEvent()              {}

// EncodeServerEvent renders ev as a single tagged JSON object, the unit of
// framing for one websocket text message.
func EncodeServerEvent(ev ServerEvent) ([]byte, error) {
	switch e := ev.(type) {
	case SetUUID:
		return json.Marshal(struct {
			Type string `json:"type"`
			UUID string `json:"uuid"`
		}{"SetUUID", e.UUID})

	case UpdatePlayerList:
		return json.Marshal(struct {
			Type    string       `json:"type"`
			Players []PlayerInfo `json:"players"`
		}{"UpdatePlayerList", e.Players})

	case PlayerChatMessage:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Username string `json:"username"`
			UUID     string `json:"uuid"`
			Content  string `json:"content"`
		}{"PlayerChatMessage", e.Username, e.UUID, e.Content})

	case SetGamePhase:
		return json.Marshal(struct {
			Type  string    `json:"type"`
			Phase GamePhase `json:"phase"`
		}{"SetGamePhase", e.Phase})

	case SetHand:
		hand := e.Hand
		if hand == nil {
			hand = []card.Card{}
		}
		return json.Marshal(struct {
			Type string      `json:"type"`
			Hand []card.Card `json:"hand"`
		}{"SetHand", hand})

	case SetTrumpSuit:
		return json.Marshal(struct {
			Type      string     `json:"type"`
			TrumpSuit trump.Suit `json:"trump_suit"`
		}{"SetTrumpSuit", e.TrumpSuit})

	case RequestSelectTrumpColor:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{"RequestSelectTrumpColor"})

	case UpdateScoreBoard:
		return json.Marshal(struct {
			Type       string             `json:"type"`
			ScoreBoard *scoreboard.Board `json:"scoreboard"`
		}{"UpdateScoreBoard", e.ScoreBoard})

	case SetPlayerOnTurn:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Index uint8  `json:"index"`
		}{"SetPlayerOnTurn", e.Index})

	case PlayerPlayCard:
		return json.Marshal(struct {
			Type string    `json:"type"`
			UUID string    `json:"uuid"`
			Card card.Card `json:"card"`
		}{"PlayerPlayCard", e.UUID, e.Card})

	case ClearPlayedCards:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{"ClearPlayedCards"})

	case WaitingForReady:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Waiting bool   `json:"waiting"`
		}{"WaitingForReady", e.Waiting})

	case PlayerReady:
		return json.Marshal(struct {
			Type  string `json:"type"`
			UUID  string `json:"uuid"`
			Ready bool   `json:"ready"`
		}{"PlayerReady", e.UUID, e.Ready})

	default:
		return nil, fmt.Errorf("wire: unknown server event %T", ev)
	}
}

// DecodeServerEvent sniffs the top-level "type" field and decodes the
// matching variant. Used by the client engine.
func DecodeServerEvent(data []byte) (ServerEvent, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("wire: invalid server frame: %w", err)
	}

	switch tag.Type {
	case "SetUUID":
		var w struct {
			UUID string `json:"uuid"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetUUID: %w", err)
		}
		return SetUUID{UUID: w.UUID}, nil

	case "UpdatePlayerList":
		var w struct {
			Players []PlayerInfo `json:"players"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: UpdatePlayerList: %w", err)
		}
		return UpdatePlayerList{Players: w.Players}, nil

	case "PlayerChatMessage":
		var w struct {
			Username string `json:"username"`
			UUID     string `json:"uuid"`
			Content  string `json:"content"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: PlayerChatMessage: %w", err)
		}
		return PlayerChatMessage{Username: w.Username, UUID: w.UUID, Content: w.Content}, nil

	case "SetGamePhase":
		var w struct {
			Phase GamePhase `json:"phase"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetGamePhase: %w", err)
		}
		return SetGamePhase{Phase: w.Phase}, nil

	case "SetHand":
		var w struct {
			Hand []card.Card `json:"hand"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetHand: %w", err)
		}
		return SetHand{Hand: w.Hand}, nil

	case "SetTrumpSuit":
		var w struct {
			TrumpSuit trump.Suit `json:"trump_suit"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetTrumpSuit: %w", err)
		}
		return SetTrumpSuit{TrumpSuit: w.TrumpSuit}, nil

	case "RequestSelectTrumpColor":
		return RequestSelectTrumpColor{}, nil

	case "UpdateScoreBoard":
		var w struct {
			ScoreBoard *scoreboard.Board `json:"scoreboard"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: UpdateScoreBoard: %w", err)
		}
		return UpdateScoreBoard{ScoreBoard: w.ScoreBoard}, nil

	case "SetPlayerOnTurn":
		var w struct {
			Index uint8 `json:"index"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: SetPlayerOnTurn: %w", err)
		}
		return SetPlayerOnTurn{Index: w.Index}, nil

	case "PlayerPlayCard":
		var w struct {
			UUID string    `json:"uuid"`
			Card card.Card `json:"card"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: PlayerPlayCard: %w", err)
		}
		return PlayerPlayCard{UUID: w.UUID, Card: w.Card}, nil

	case "ClearPlayedCards":
		return ClearPlayedCards{}, nil

	case "WaitingForReady":
		var w struct {
			Waiting bool `json:"waiting"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: WaitingForReady: %w", err)
		}
		return WaitingForReady{Waiting: w.Waiting}, nil

	case "PlayerReady":
		var w struct {
			UUID  string `json:"uuid"`
			Ready bool   `json:"ready"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("wire: PlayerReady: %w", err)
		}
		return PlayerReady{UUID: w.UUID, Ready: w.Ready}, nil

	default:
		return nil, fmt.Errorf("wire: unknown server event type %q", tag.Type)
	}
}
