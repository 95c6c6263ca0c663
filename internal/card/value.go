package card

import (
	"encoding/json"
	"fmt"
)

// ValueKind distinguishes the three kinds of card value: the Fool (always
// lowest), a Simple numbered card, or the Wizard (always highest).
type ValueKind byte

const (
	Fool ValueKind = iota
	Simple
	Wizard
)

// Value is a Fool, a Simple(1..=13), or a Wizard. Num is only meaningful
// when Kind == Simple.
type Value struct {
	Kind ValueKind
	Num  uint8
}

// FoolValue returns the Fool value.
func FoolValue() Value { return Value{Kind: Fool} }

// WizardValue returns the Wizard value.
func WizardValue() Value { return Value{Kind: Wizard} }

// SimpleValue returns a Simple(n) value. n must be in 1..=13.
func SimpleValue(n uint8) (Value, error) {
	if n < 1 || n > 13 {
		return Value{}, fmt.Errorf("card: simple value out of range: %d", n)
	}
	return Value{Kind: Simple, Num: n}, nil
}

// Rank returns the value used for ordering: 0 for Fool, 1..13 for Simple,
// 14 for Wizard.
func (v Value) Rank() uint8 {
	switch v.Kind {
	case Fool:
		return 0
	case Wizard:
		return 14
	default:
		return v.Num
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Fool:
		return "Fool"
	case Wizard:
		return "Wizard"
	default:
		return fmt.Sprintf("Simple(%d)", v.Num)
	}
}

// simpleValueWire is the wire shape of a Simple variant: {"Simple": n}.
type simpleValueWire struct {
	Simple uint8 `json:"Simple"`
}

// MarshalJSON encodes Fool/Wizard as bare strings and Simple(n) as
// {"Simple": n}, matching the externally-tagged enum representation the
// original wizardrs wire format uses.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Fool:
		return json.Marshal("Fool")
	case Wizard:
		return json.Marshal("Wizard")
	case Simple:
		return json.Marshal(simpleValueWire{Simple: v.Num})
	default:
		return nil, fmt.Errorf("card: unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON accepts "Fool", "Wizard", or {"Simple": n}.
func (v *Value) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		switch asString {
		case "Fool":
			*v = FoolValue()
			return nil
		case "Wizard":
			*v = WizardValue()
			return nil
		default:
			return fmt.Errorf("card: unknown value variant %q", asString)
		}
	}

	var asSimple simpleValueWire
	if err := json.Unmarshal(data, &asSimple); err != nil {
		return fmt.Errorf("card: invalid value: %w", err)
	}
	simple, err := SimpleValue(asSimple.Simple)
	if err != nil {
		return err
	}
	*v = simple
	return nil
}
