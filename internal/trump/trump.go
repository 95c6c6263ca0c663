// Package trump implements the TrumpSuit variant: the turned-up card for a
// round, and the color it fixes (if any). Grounded on
// wizardrs-core/src/trump_suit/mod.rs.
package trump

import (
	"encoding/json"
	"fmt"

	"wizardnet/internal/card"
)

// Kind distinguishes the three TrumpSuit variants.
type Kind byte

const (
	// KindCard: the turned-up card was a Simple; its color is fixed trump.
	KindCard Kind = iota
	// KindColor: the turned-up card was a Fool or a Wizard. For a Fool,
	// Color stays nil forever (no trump). For a Wizard, the dealer must
	// choose a color.
	KindColor
	// KindNone: no card was left to turn up (the last round deals the
	// entire deck).
	KindNone
)

// Suit is the authoritative trump state for a round.
type Suit struct {
	Kind Kind
	// TurnedUp is the card shown to all players. Unset when Kind == KindNone.
	TurnedUp card.Card
	// Color is set immediately for KindCard (fixed to TurnedUp.Color), set
	// later by the dealer for a Wizard turn-up, and never set for a Fool
	// turn-up.
	Color *card.Color
}

// FromCard derives the TrumpSuit from the next deck card, or None if there
// wasn't one (last round).
func FromCard(turnedUp *card.Card) Suit {
	if turnedUp == nil {
		return Suit{Kind: KindNone}
	}
	switch turnedUp.Value.Kind {
	case card.Simple:
		c := turnedUp.Color
		return Suit{Kind: KindCard, TurnedUp: *turnedUp, Color: &c}
	default: // Fool or Wizard
		return Suit{Kind: KindColor, TurnedUp: *turnedUp, Color: nil}
	}
}

// EffectiveColor returns the color that beats all others this round, or nil
// if there isn't one yet (no trump, or a Wizard turn-up awaiting the
// dealer's choice).
func (s Suit) EffectiveColor() *card.Color {
	return s.Color
}

// NeedsDealerChoice reports whether the turned-up card was a Wizard whose
// color hasn't been chosen yet.
func (s Suit) NeedsDealerChoice() bool {
	return s.Kind == KindColor && s.Color == nil && s.TurnedUp.Value.Kind == card.Wizard
}

// WithColor returns a copy of s with its color set, if s is a KindColor
// suit. Setting the color on any other kind is a no-op (mirrors
// TrumpSuit::set_color in the original, which only mutates the Color
// variant).
func (s Suit) WithColor(c card.Color) Suit {
	if s.Kind != KindColor {
		return s
	}
	s.Color = &c
	return s
}

type wire struct {
	Kind     string     `json:"kind"`
	TurnedUp *card.Card `json:"turned_up,omitempty"`
	Color    *string    `json:"color,omitempty"`
}

// MarshalJSON encodes the suit as {"kind": "Card"|"Color"|"None", ...}.
func (s Suit) MarshalJSON() ([]byte, error) {
	w := wire{}
	switch s.Kind {
	case KindCard:
		w.Kind = "Card"
		tu := s.TurnedUp
		w.TurnedUp = &tu
	case KindColor:
		w.Kind = "Color"
		tu := s.TurnedUp
		w.TurnedUp = &tu
		if s.Color != nil {
			str := s.Color.String()
			w.Color = &str
		}
	case KindNone:
		w.Kind = "None"
	default:
		return nil, fmt.Errorf("trump: unknown kind %d", s.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the suit from the shape MarshalJSON produces.
func (s *Suit) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("trump: invalid suit: %w", err)
	}
	switch w.Kind {
	case "Card":
		if w.TurnedUp == nil {
			return fmt.Errorf("trump: Card suit missing turned_up card")
		}
		*s = Suit{Kind: KindCard, TurnedUp: *w.TurnedUp, Color: &w.TurnedUp.Color}
	case "Color":
		if w.TurnedUp == nil {
			return fmt.Errorf("trump: Color suit missing turned_up card")
		}
		suit := Suit{Kind: KindColor, TurnedUp: *w.TurnedUp}
		if w.Color != nil {
			c, ok := card.ParseColor(*w.Color)
			if !ok {
				return fmt.Errorf("trump: unknown color %q", *w.Color)
			}
			suit.Color = &c
		}
		*s = suit
	case "None":
		*s = Suit{Kind: KindNone}
	default:
		return fmt.Errorf("trump: unknown kind %q", w.Kind)
	}
	return nil
}
