package card

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// StaticProvider serves decks built into the binary.
type StaticProvider struct {
	decks []*Deck
}

// NewStaticProvider creates a provider over the given decks.
func NewStaticProvider(decks ...*Deck) *StaticProvider {
	return &StaticProvider{decks: decks}
}

func (p *StaticProvider) List(ctx context.Context) ([]Info, error) {
	infos := make([]Info, len(p.decks))
	for i, d := range p.decks {
		infos[i] = Info{
			ID:       d.ID,
			Name:     d.Name,
			Category: d.Category,
			Count:    len(d.Cards),
			Hash:     d.Hash,
		}
	}
	return infos, nil
}

func (p *StaticProvider) Load(ctx context.Context, id string) (*Deck, error) {
	for _, d := range p.decks {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, ErrDeckNotFound
}

// MultiProvider queries providers in order. A provider that fails to
// list only drops its own decks from the listing.
type MultiProvider []Provider

func (m MultiProvider) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	for _, p := range m {
		part, err := p.List(ctx)
		if err != nil {
			log.Warn("Skipping deck source", "error", err)
			continue
		}
		infos = append(infos, part...)
	}
	return infos, nil
}

func (m MultiProvider) Load(ctx context.Context, id string) (*Deck, error) {
	for _, p := range m {
		deck, err := p.Load(ctx, id)
		if errors.Is(err, ErrDeckNotFound) {
			continue
		}
		return deck, err
	}
	return nil, ErrDeckNotFound
}
