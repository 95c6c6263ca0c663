package card

import (
	"encoding/json"
	"testing"
)

func TestAll_Has60UniqueCards(t *testing.T) {
	deck := All()
	seen := make(map[Card]bool, len(deck))
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card in deck: %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 60 {
		t.Fatalf("expected 60 unique cards, got %d", len(seen))
	}
}

func TestAll_FourColorsFifteenEach(t *testing.T) {
	deck := All()
	counts := make(map[Color]int)
	for _, c := range deck {
		counts[c.Color]++
	}
	for _, color := range colors {
		if counts[color] != 15 {
			t.Errorf("color %v: expected 15 cards, got %d", color, counts[color])
		}
	}
}

func TestCard_JSONRoundTrip(t *testing.T) {
	cases := []Card{
		{Color: Blue, Value: FoolValue()},
		{Color: Yellow, Value: WizardValue()},
		mustSimple(t, Red, 7),
	}

	for _, want := range cases {
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Card
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != want {
			t.Errorf("round trip: got %v, want %v", got, want)
		}
	}
}

func TestValue_MarshalsExternallyTagged(t *testing.T) {
	data, err := json.Marshal(FoolValue())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Fool"` {
		t.Errorf("Fool marshaled as %s, want \"Fool\"", data)
	}

	simple, err := SimpleValue(9)
	if err != nil {
		t.Fatal(err)
	}
	data, err = json.Marshal(simple)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"Simple":9}` {
		t.Errorf("Simple(9) marshaled as %s, want {\"Simple\":9}", data)
	}
}

func mustSimple(t *testing.T, color Color, n uint8) Card {
	t.Helper()
	v, err := SimpleValue(n)
	if err != nil {
		t.Fatal(err)
	}
	return Card{Color: color, Value: v}
}
