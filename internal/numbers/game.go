package numbers

import (
	"math/rand"
	"strconv"
)

// Phase is the input state of the game.
type Phase int

const (
	// PhaseCollecting accepts digit and backspace input.
	PhaseCollecting Phase = iota
	// PhaseLocked rejects input while the result of a full entry is
	// shown; Advance moves the game on.
	PhaseLocked
	// PhaseVictory means all levels are cleared.
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseCollecting:
		return "collecting"
	case PhaseLocked:
		return "locked"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Mark grades one entered digit.
type Mark int

const (
	MarkCorrect Mark = iota
	MarkWrong
)

// Result is the grade of a completed entry.
type Result struct {
	Correct bool
	Marks   []Mark // one per digit position
}

// Game runs the dictation ladder. A full correct entry climbs one
// level; any wrong digit sends the run back to level zero over a fresh
// ladder, so a clear means seven perfect entries over one set of
// numbers.
//
// Game is not safe for concurrent use; the UI drives it from a single
// goroutine.
type Game struct {
	rng        *rand.Rand
	challenges []Challenge
	level      int
	entry      []int
	phase      Phase
	result     *Result
}

// NewGame starts a run at level zero over a freshly drawn ladder.
func NewGame(rng *rand.Rand) *Game {
	return &Game{
		rng:        rng,
		challenges: Generate(rng),
	}
}

// Current returns the challenge for the active level.
func (g *Game) Current() Challenge {
	if g.level >= Levels {
		return g.challenges[Levels-1]
	}
	return g.challenges[g.level]
}

// Challenges exposes the full ladder, for preloading.
func (g *Game) Challenges() []Challenge { return g.challenges }

// Level returns the active level, zero-based.
func (g *Game) Level() int { return g.level }

// Entry returns the digits entered so far for the active challenge.
func (g *Game) Entry() []int { return g.entry }

// Phase returns the input state.
func (g *Game) Phase() Phase { return g.phase }

// Result returns the grade of the last completed entry, or nil while
// one is being collected.
func (g *Game) Result() *Result { return g.result }

// Input appends one digit, 0 through 9. Input outside PhaseCollecting
// or beyond the challenge's length is dropped. When the entry reaches
// full length it is graded immediately and the game locks; the
// returned Result is non-nil exactly then.
func (g *Game) Input(digit int) *Result {
	if g.phase != PhaseCollecting || digit < 0 || digit > 9 {
		return nil
	}
	if len(g.entry) >= g.Current().Digits {
		return nil
	}
	g.entry = append(g.entry, digit)
	if len(g.entry) < g.Current().Digits {
		return nil
	}

	g.result = g.grade()
	g.phase = PhaseLocked
	return g.result
}

// Backspace removes the last entered digit. It does nothing once the
// entry is graded.
func (g *Game) Backspace() {
	if g.phase != PhaseCollecting || len(g.entry) == 0 {
		return
	}
	g.entry = g.entry[:len(g.entry)-1]
}

func (g *Game) grade() *Result {
	want := strconv.Itoa(g.Current().Value)
	result := &Result{Correct: true, Marks: make([]Mark, len(g.entry))}
	for i, d := range g.entry {
		if byte('0'+d) == want[i] {
			result.Marks[i] = MarkCorrect
		} else {
			result.Marks[i] = MarkWrong
			result.Correct = false
		}
	}
	return result
}

// Advance applies the grade shown during PhaseLocked. A correct entry
// climbs to the next level, or wins the run after the last one. A
// wrong entry redraws the entire ladder and restarts at level zero.
func (g *Game) Advance() {
	if g.phase != PhaseLocked {
		return
	}

	if g.result.Correct {
		g.level++
		if g.level >= Levels {
			g.phase = PhaseVictory
			return
		}
	} else {
		g.challenges = Generate(g.rng)
		g.level = 0
	}
	g.entry = nil
	g.result = nil
	g.phase = PhaseCollecting
}

// Restart begins a new run after victory or at any point the player
// asks for one.
func (g *Game) Restart() {
	g.challenges = Generate(g.rng)
	g.level = 0
	g.entry = nil
	g.result = nil
	g.phase = PhaseCollecting
}
