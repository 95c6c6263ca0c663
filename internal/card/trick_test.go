package card

import "testing"

func playAt(t *testing.T, id int, c Color, raw uint8) Play[int] {
	t.Helper()
	card, err := New(c, raw)
	if err != nil {
		t.Fatal(err)
	}
	return Play[int]{ID: id, Card: card}
}

// These cases mirror wizardrs-core/src/tests.rs::eval_winner_{1..6}.
func TestEvaluateTrickWinner_SourceCases(t *testing.T) {
	blue, red := Blue, Red

	t.Run("eval_winner_1: earliest wizard wins, no trump", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, blue, 2),
			playAt(t, 2, blue, 14), // Wizard
			playAt(t, 3, blue, 3),
		}
		if got := EvaluateTrickWinner(plays, nil); got.ID != 2 {
			t.Errorf("winner = %d, want 2 (the Wizard)", got.ID)
		}
	})

	t.Run("eval_winner_2: wizard wins over trump", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, blue, 2),
			playAt(t, 2, red, 14), // Wizard, off-color
			playAt(t, 3, blue, 3),
		}
		if got := EvaluateTrickWinner(plays, &blue); got.ID != 2 {
			t.Errorf("winner = %d, want 2 (Wizard always wins regardless of trump)", got.ID)
		}
	})

	// eval_winner_3 and eval_winner_4 both deal two Wizards into the same
	// trick (index 1 and index 2) and assert the earlier one wins; the
	// only difference between them is whether a trump color is set at
	// all, which must not matter once a Wizard is in the trick.
	t.Run("eval_winner_3: earliest of two wizards wins, trump set", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, red, 14),  // Wizard
			playAt(t, 2, blue, 14), // Wizard, played later
			playAt(t, 3, blue, 4),
		}
		if got := EvaluateTrickWinner(plays, &blue); got.ID != 1 {
			t.Errorf("winner = %d, want 1 (earliest of the two Wizards)", got.ID)
		}
	})

	t.Run("eval_winner_4: earliest of two wizards wins, no trump", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, red, 14),  // Wizard
			playAt(t, 2, blue, 14), // Wizard, played later
			playAt(t, 3, blue, 4),
		}
		if got := EvaluateTrickWinner(plays, nil); got.ID != 1 {
			t.Errorf("winner = %d, want 1 (earliest of the two Wizards)", got.ID)
		}
	})

	t.Run("eval_winner_5: highest of leading color, trump matches leading color", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, blue, 10),
			playAt(t, 2, blue, 9),
			playAt(t, 3, blue, 4),
		}
		if got := EvaluateTrickWinner(plays, &blue); got.ID != 1 {
			t.Errorf("winner = %d, want 1 (highest blue simple)", got.ID)
		}
	})

	t.Run("eval_winner_6: off-color card never beats leading color, no trump", func(t *testing.T) {
		plays := []Play[int]{
			playAt(t, 0, blue, 1),
			playAt(t, 1, blue, 10),
			playAt(t, 2, blue, 9),
			playAt(t, 3, red, 11),
		}
		if got := EvaluateTrickWinner(plays, nil); got.ID != 1 {
			t.Errorf("winner = %d, want 1 (highest blue simple beats off-color red jack)", got.ID)
		}
	})
}

// TestEvaluateTrickWinner_TrumpBeatsLeadingColor and the all-fools case
// below are not from the original test suite; they exercise rules eval_winner_{1..6}
// don't cover (a trump-colored card off the leading color, and a trick
// where every card played is a Fool).
func TestEvaluateTrickWinner_TrumpBeatsLeadingColor(t *testing.T) {
	red := Red
	plays := []Play[int]{
		playAt(t, 0, Blue, 1),
		playAt(t, 1, Red, 11),
		playAt(t, 2, Blue, 4),
	}
	if got := EvaluateTrickWinner(plays, &red); got.ID != 1 {
		t.Errorf("winner = %d, want 1 (only trump-colored card)", got.ID)
	}
}

func TestEvaluateTrickWinner_AllFoolsFirstWins(t *testing.T) {
	red := Red
	plays := []Play[int]{
		playAt(t, 0, Blue, 0),
		playAt(t, 1, Red, 0),
		playAt(t, 2, Green, 0),
	}
	if got := EvaluateTrickWinner(plays, &red); got.ID != 0 {
		t.Errorf("winner = %d, want 0 (first Fool)", got.ID)
	}
}

func TestEvaluateTrickWinner_FoolsSkippedButFirstSeeds(t *testing.T) {
	plays := []Play[int]{
		playAt(t, 0, Blue, 0), // Fool
		playAt(t, 1, Blue, 5),
		playAt(t, 2, Blue, 0), // Fool
	}
	if got := EvaluateTrickWinner(plays, nil); got.ID != 1 {
		t.Errorf("winner = %d, want 1 (only Simple card)", got.ID)
	}
}

func TestLeadingColor(t *testing.T) {
	foolBlue, _ := New(Blue, 0)
	simpleRed, _ := New(Red, 5)
	wizardGreen, _ := New(Green, 14)

	if c := LeadingColor([]Card{foolBlue, simpleRed}); c == nil || *c != Red {
		t.Errorf("leading color should skip Fools and report Red")
	}
	if c := LeadingColor([]Card{foolBlue, wizardGreen, simpleRed}); c != nil {
		t.Errorf("leading color should be nil once a Wizard is hit before any Simple")
	}
}
