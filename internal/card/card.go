// Package card defines the flashcard data model and deck providers.
package card

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Common errors for deck loading.
var (
	// ErrEmptyDeck is returned when a deck source yields no usable cards.
	// An empty deck is a construction failure, never a valid zero-length
	// session.
	ErrEmptyDeck = errors.New("deck contains no cards")

	// ErrDeckNotFound is returned when the requested deck ID is unknown.
	ErrDeckNotFound = errors.New("deck not found")
)

// Category identifies the kind of study material a deck holds.
type Category string

const (
	// CategoryVocab holds vocabulary word decks.
	CategoryVocab Category = "vocab"
	// CategoryScript holds reading-practice decks.
	CategoryScript Category = "script"
	// CategoryLetters holds the built-in alphabet deck.
	CategoryLetters Category = "letters"
)

// Card is a single study item. Immutable once loaded; owned by its Deck.
type Card struct {
	// Thai is the Thai-side text (word, sentence, or letter).
	Thai string

	// Eng is the English-side text.
	Eng string

	// Phonetic is the romanized pronunciation, when the source has one.
	Phonetic string

	// AudioText is the canonical string to hand to the speech engine.
	// Usually equal to Thai, but sources may override it, e.g. a letter
	// speaks its full name ("ก ไก่") rather than the bare glyph.
	AudioText string
}

// Deck is an ordered, read-only collection of cards in one category.
type Deck struct {
	ID       string
	Name     string
	Category Category
	Cards    []Card

	// Hash fingerprints the deck content so stored progress can be
	// invalidated when the source changes.
	Hash string
}

// Info is a lightweight deck listing entry.
type Info struct {
	ID       string
	Name     string
	Category Category
	Count    int
	Hash     string
}

// Provider loads decks from some source.
type Provider interface {
	// List returns the available decks.
	List(ctx context.Context) ([]Info, error)

	// Load fetches the full deck for the given ID.
	// Returns ErrEmptyDeck if the source yields no cards.
	Load(ctx context.Context, id string) (*Deck, error)
}

// ContentHash fingerprints card content. Eight hex characters is plenty
// to detect a changed spreadsheet tab.
func ContentHash(cards []Card) string {
	h := sha256.New()
	for _, c := range cards {
		h.Write([]byte(c.Thai))
		h.Write([]byte{'|'})
		h.Write([]byte(c.Eng))
		h.Write([]byte{'|'})
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}
