package review

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/narongdej/thaidrill/internal/card"
)

func testCards(names ...string) []card.Card {
	cards := make([]card.Card, len(names))
	for i, n := range names {
		cards[i] = card.Card{Thai: n, Eng: n}
	}
	return cards
}

func TestNewRejectsEmptyDeck(t *testing.T) {
	_, err := New(nil, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoCards) {
		t.Errorf("Expected ErrNoCards, got %v", err)
	}
}

func TestAllCorrectDrainsInExactlyN(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}

		q, err := New(testCards(names...), rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		for i := 0; i < n; i++ {
			if q.State() != StateActive {
				t.Fatalf("n=%d: queue complete after %d submissions, expected %d", n, i, n)
			}
			if err := q.Submit(true); err != nil {
				t.Fatalf("n=%d: Submit failed: %v", n, err)
			}
		}
		if q.State() != StateComplete {
			t.Errorf("n=%d: expected StateComplete after %d correct submissions", n, n)
		}
	}
}

func TestMissRequeuesToBack(t *testing.T) {
	q, err := New(testCards("a", "b", "c", "d"), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	missed, err := q.Peek()
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if err := q.Submit(false); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The missed card reappears only after every card that was ahead of
	// it has been presented again.
	for i := 0; i < 3; i++ {
		head, err := q.Peek()
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		if head.Thai == missed.Thai {
			t.Fatalf("Missed card re-presented after %d cards, expected 3", i)
		}
		if err := q.Submit(true); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	head, err := q.Peek()
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if head.Thai != missed.Thai {
		t.Errorf("Expected missed card %q at head, got %q", missed.Thai, head.Thai)
	}
}

func TestScenarioABC(t *testing.T) {
	// Deck [A,B,C], submissions (correct, wrong, correct, correct) must
	// present A,B,C,B and finish complete after 4 submissions.
	q := &Queue{
		cards: testCards("A", "B", "C"),
		state: StateActive,
	}

	var presented []string
	submit := func(correct bool) {
		head, err := q.Peek()
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		presented = append(presented, head.Thai)
		if err := q.Submit(correct); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	submit(true)
	submit(false)
	submit(true)
	submit(true)

	want := []string{"A", "B", "C", "B"}
	for i, w := range want {
		if presented[i] != w {
			t.Errorf("Presentation order %v, want %v", presented, want)
			break
		}
	}
	if q.State() != StateComplete {
		t.Errorf("Expected StateComplete, got %v", q.State())
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	completions := 0
	q, err := New(testCards("a"), rand.New(rand.NewSource(1)),
		WithCompletionFunc(func() { completions++ }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if completions != 0 {
		t.Errorf("Completion fired on construction")
	}
	if err := q.Submit(true); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if completions != 1 {
		t.Errorf("Expected 1 completion, got %d", completions)
	}

	// Further submissions fail and never re-notify.
	if err := q.Submit(true); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Expected ErrEmptyQueue, got %v", err)
	}
	if completions != 1 {
		t.Errorf("Completion fired again on empty submit, got %d", completions)
	}
}

func TestPeekEmpty(t *testing.T) {
	q := &Queue{state: StateComplete}
	if _, err := q.Peek(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Expected ErrEmptyQueue, got %v", err)
	}
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	cards := testCards("a", "b", "c", "d", "e", "f")

	order := func(seed int64) []string {
		q, err := New(cards, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		var got []string
		for q.Len() > 0 {
			head, _ := q.Peek()
			got = append(got, head.Thai)
			_ = q.Submit(true)
		}
		return got
	}

	first, second := order(99), order(99)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Same seed produced different orders: %v vs %v", first, second)
		}
	}

	// Every card still appears exactly once.
	seen := make(map[string]int)
	for _, n := range first {
		seen[n]++
	}
	for _, c := range cards {
		if seen[c.Thai] != 1 {
			t.Errorf("Card %q appeared %d times", c.Thai, seen[c.Thai])
		}
	}
}
