package card

import (
	"encoding/json"
	"fmt"
)

type cardWire struct {
	Color string `json:"color"`
	Value Value  `json:"value"`
}

// MarshalJSON encodes a card as {"color": "Blue", "value": ...}.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardWire{Color: c.Color.String(), Value: c.Value})
}

// UnmarshalJSON decodes a card from {"color": "Blue", "value": ...}.
func (c *Card) UnmarshalJSON(data []byte) error {
	var wire cardWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("card: invalid card: %w", err)
	}
	color, ok := ParseColor(wire.Color)
	if !ok {
		return fmt.Errorf("card: unknown color %q", wire.Color)
	}
	c.Color = color
	c.Value = wire.Value
	return nil
}
