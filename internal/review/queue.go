package review

import (
	"errors"
	"math/rand"

	"github.com/narongdej/thaidrill/internal/card"
)

// Common errors for queue operations.
var (
	// ErrEmptyQueue is returned by Peek and Submit when no cards remain.
	ErrEmptyQueue = errors.New("review queue is empty")

	// ErrNoCards is returned when constructing a queue from an empty deck.
	ErrNoCards = errors.New("cannot start a review with no cards")
)

// State is the session state of a queue.
type State int

const (
	// StateActive means cards remain to be reviewed.
	StateActive State = iota
	// StateComplete means every card has been answered correctly.
	StateComplete
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Queue holds the working set of cards for one review session.
//
// Invariant: while the session is active, every card from the source deck
// appears exactly once. A missed card is re-appended, never dropped, so
// the only way out of the queue is a correct answer.
//
// The queue itself is not safe for concurrent use; callers serialize
// submissions (the UI blocks input during card transitions).
type Queue struct {
	cards      []card.Card
	state      State
	onComplete func()
}

// Option configures a Queue.
type Option func(*Queue)

// WithCompletionFunc registers a callback fired exactly once when the
// session transitions to StateComplete. Used to notify the progress
// store; never fires for a freshly constructed queue.
func WithCompletionFunc(fn func()) Option {
	return func(q *Queue) { q.onComplete = fn }
}

// New builds a review queue as a uniform random permutation of cards.
// The random source is injected so sessions are reproducible under test.
// Switching drill direction means building a fresh queue, not resuming.
func New(cards []card.Card, rng *rand.Rand, opts ...Option) (*Queue, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	shuffled := make([]card.Card, len(cards))
	copy(shuffled, cards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	q := &Queue{
		cards: shuffled,
		state: StateActive,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Peek returns the card at the head of the queue without mutating it.
func (q *Queue) Peek() (card.Card, error) {
	if len(q.cards) == 0 {
		return card.Card{}, ErrEmptyQueue
	}
	return q.cards[0], nil
}

// Submit records the result for the head card: a correct answer removes
// it, a miss moves it to the back. Submitting against a drained queue is
// an error and does not re-fire the completion callback.
func (q *Queue) Submit(correct bool) error {
	if len(q.cards) == 0 {
		return ErrEmptyQueue
	}

	head := q.cards[0]
	q.cards = q.cards[1:]
	if !correct {
		q.cards = append(q.cards, head)
	}

	if len(q.cards) == 0 {
		q.state = StateComplete
		if q.onComplete != nil {
			q.onComplete()
		}
	}
	return nil
}

// Len returns the number of cards remaining.
func (q *Queue) Len() int {
	return len(q.cards)
}

// State returns the current session state.
func (q *Queue) State() State {
	return q.state
}
