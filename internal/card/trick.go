package card

// Play pairs a card with whoever played it. The identifier type is left
// generic so both the server (uuid.UUID) and tests (plain strings) can use
// the same evaluator.
type Play[T any] struct {
	ID   T
	Card Card
}

// LeadingColor returns the color of the first non-Fool, non-Wizard card
// among cards, or nil if every card seen before a Wizard (or all cards) is
// a Fool.
func LeadingColor(cards []Card) *Color {
	for _, c := range cards {
		switch c.Value.Kind {
		case Fool:
			continue
		case Wizard:
			return nil
		default:
			color := c.Color
			return &color
		}
	}
	return nil
}

// EvaluateTrickWinner determines who wins a completed trick, grounded on
// wizardrs-core/src/utils/mod.rs::evaluate_trick_winner:
//
//  1. The earliest-played Wizard always wins.
//  2. If every card is a Fool, the first card wins.
//  3. If trumpColor is set and any Simple card matches it, the highest
//     Simple card of that color wins.
//  4. Otherwise the highest Simple card of the leading color wins.
//
// played must be non-empty.
func EvaluateTrickWinner[T any](played []Play[T], trumpColor *Color) Play[T] {
	if len(played) == 0 {
		panic("card: EvaluateTrickWinner called with no plays")
	}

	for _, p := range played {
		if p.Card.Value.Kind == Wizard {
			return p
		}
	}

	allFools := true
	for _, p := range played {
		if p.Card.Value.Kind != Fool {
			allFools = false
			break
		}
	}
	if allFools {
		return played[0]
	}

	containsTrump := false
	if trumpColor != nil {
		for _, p := range played {
			if p.Card.Value.Kind == Simple && p.Card.Color == *trumpColor {
				containsTrump = true
				break
			}
		}
	}

	plainCards := make([]Card, len(played))
	for i, p := range played {
		plainCards[i] = p.Card
	}
	leading := LeadingColor(plainCards)

	var targetColor Color
	switch {
	case containsTrump:
		targetColor = *trumpColor
	case leading != nil:
		targetColor = *leading
	default:
		// No trump and no leading color in play (shouldn't happen given a
		// non-empty, non-all-Fool, Wizard-free trick, but fall back to
		// scanning every Simple card by raw value).
		winner := played[0]
		for _, p := range played {
			if p.Card.Value.Kind != Simple {
				continue
			}
			if winner.Card.Value.Kind != Simple || p.Card.Value.Num > winner.Card.Value.Num {
				winner = p
			}
		}
		return winner
	}

	winner := played[0]
	for _, p := range played {
		if p.Card.Color != targetColor || p.Card.Value.Kind != Simple {
			continue
		}
		if winner.Card.Color != targetColor || winner.Card.Value.Kind != Simple {
			winner = p
		} else if p.Card.Value.Num > winner.Card.Value.Num {
			winner = p
		}
	}
	return winner
}
