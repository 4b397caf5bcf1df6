package numbers

import (
	"context"
	"math/rand"
	"strconv"
	"testing"

	"github.com/narongdej/thaidrill/internal/audiocache"
	"github.com/narongdej/thaidrill/internal/speech"
)

func TestGenerateDigitCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		challenges := Generate(rng)
		if len(challenges) != Levels {
			t.Fatalf("Expected %d challenges, got %d", Levels, len(challenges))
		}
		for i, c := range challenges {
			if c.Digits != i+1 {
				t.Errorf("Level %d: expected %d digits, got %d", i, i+1, c.Digits)
			}
			if i == 0 {
				if c.Value < 0 || c.Value > 9 {
					t.Errorf("Level 0: value %d out of [0, 9]", c.Value)
				}
			} else if got := len(strconv.Itoa(c.Value)); got != i+1 {
				t.Errorf("Level %d: value %d has %d digits", i, c.Value, got)
			}
			if c.Text == "" {
				t.Errorf("Level %d: empty Thai text for %d", i, c.Value)
			}
		}
	}
}

func TestGenerateIsSeedDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(7)))
	b := Generate(rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].Value != b[i].Value {
			t.Fatalf("Level %d: expected same value for same seed, got %d and %d",
				i, a[i].Value, b[i].Value)
		}
	}
}

// enter feeds the digits of value into the game.
func enter(g *Game, value int, digits int) *Result {
	s := strconv.Itoa(value)
	for len(s) < digits {
		s = "0" + s
	}
	var result *Result
	for _, ch := range s {
		result = g.Input(int(ch - '0'))
	}
	return result
}

func TestCorrectRunReachesVictory(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))

	for level := 0; level < Levels; level++ {
		if g.Level() != level {
			t.Fatalf("Expected level %d, got %d", level, g.Level())
		}
		result := enter(g, g.Current().Value, g.Current().Digits)
		if result == nil || !result.Correct {
			t.Fatalf("Level %d: expected correct result, got %+v", level, result)
		}
		if g.Phase() != PhaseLocked {
			t.Fatalf("Level %d: expected locked phase after full entry", level)
		}
		g.Advance()
	}

	if g.Phase() != PhaseVictory {
		t.Errorf("Expected victory after %d correct entries, got %v", Levels, g.Phase())
	}
}

func TestWrongDigitMarksAndResets(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))
	g.level = 3
	g.challenges[3] = Challenge{Value: 2048, Digits: 4, Text: "สองพันสี่สิบแปด"}

	for _, d := range []int{2, 0, 4} {
		if result := g.Input(d); result != nil {
			t.Fatalf("Expected no result mid-entry, got %+v", result)
		}
	}
	result := g.Input(9)
	if result == nil {
		t.Fatal("Expected result on full entry")
	}
	if result.Correct {
		t.Error("Expected wrong entry for 2049 against 2048")
	}
	want := []Mark{MarkCorrect, MarkCorrect, MarkCorrect, MarkWrong}
	for i, m := range result.Marks {
		if m != want[i] {
			t.Errorf("Position %d: expected mark %v, got %v", i, want[i], m)
		}
	}

	before := g.challenges[3].Value
	g.Advance()
	if g.Level() != 0 {
		t.Errorf("Expected reset to level 0 after miss, got %d", g.Level())
	}
	if g.Phase() != PhaseCollecting {
		t.Errorf("Expected collecting phase after reset, got %v", g.Phase())
	}
	if g.challenges[3].Value == before && g.challenges[3].Text == "สองพันสี่สิบแปด" {
		t.Error("Expected a fresh ladder after miss")
	}
}

func TestInputIgnoredWhileLocked(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))
	enter(g, g.Current().Value, g.Current().Digits)

	if result := g.Input(5); result != nil {
		t.Error("Expected input to be dropped while locked")
	}
	if g.Phase() != PhaseLocked {
		t.Errorf("Expected phase to stay locked, got %v", g.Phase())
	}
}

func TestBackspace(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))
	g.level = 2
	g.challenges[2] = Challenge{Value: 123, Digits: 3, Text: "หนึ่งร้อยยี่สิบสาม"}

	g.Backspace() // empty entry, no-op
	g.Input(1)
	g.Input(9)
	g.Backspace()
	if got := g.Entry(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Expected entry [1] after backspace, got %v", got)
	}

	g.Input(2)
	result := g.Input(3)
	if result == nil || !result.Correct {
		t.Fatalf("Expected corrected entry to grade correct, got %+v", result)
	}
	g.Backspace()
	if len(g.Entry()) != 3 {
		t.Error("Expected backspace to be ignored after grading")
	}
}

func TestInvalidDigitDropped(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))
	g.Input(-1)
	g.Input(10)
	if len(g.Entry()) != 0 {
		t.Errorf("Expected out-of-range digits to be dropped, got %v", g.Entry())
	}
}

func TestRestartAfterVictory(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(3)))
	for level := 0; level < Levels; level++ {
		enter(g, g.Current().Value, g.Current().Digits)
		g.Advance()
	}
	if g.Phase() != PhaseVictory {
		t.Fatal("Expected victory")
	}

	g.Restart()
	if g.Level() != 0 || g.Phase() != PhaseCollecting {
		t.Errorf("Expected fresh run after restart, got level %d phase %v",
			g.Level(), g.Phase())
	}
}

func TestPreloadFillsAudio(t *testing.T) {
	engine := speech.NewMockEngine()
	cache := audiocache.New(engine, nil)
	challenges := Generate(rand.New(rand.NewSource(5)))

	Preload(context.Background(), cache, challenges)
	for i, c := range challenges {
		if len(c.Audio) == 0 {
			t.Errorf("Level %d: expected preloaded audio", i)
		}
	}
}

func TestPreloadToleratesFailure(t *testing.T) {
	engine := speech.NewMockEngine()
	engine.SetFailure(speech.ErrAudioUnavailable)
	cache := audiocache.New(engine, nil)
	challenges := Generate(rand.New(rand.NewSource(5)))

	Preload(context.Background(), cache, challenges)
	for i, c := range challenges {
		if c.Audio != nil {
			t.Errorf("Level %d: expected nil audio after failed preload", i)
		}
	}
}
