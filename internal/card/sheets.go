package card

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// SheetSource describes one Google Sheets spreadsheet and the tabs to
// load from it.
type SheetSource struct {
	Category Category `mapstructure:"category"`
	SheetID  string   `mapstructure:"sheet_id"`
	Tabs     []string `mapstructure:"tabs"`
}

// DefaultSheetSources returns the built-in course spreadsheets, used
// when the config file does not list any.
func DefaultSheetSources() []SheetSource {
	return []SheetSource{
		{
			Category: CategoryVocab,
			SheetID:  "13yvW0q6WXHlabaRjJUSKdreNmHH-NI-_OVtRfndO_e8",
			Tabs:     []string{"Vocab 1", "Vocab 2", "Vocab 3", "Vocab 4", "Vocab 5", "Places", "Numbers"},
		},
		{
			Category: CategoryScript,
			SheetID:  "1ny4GYNfDmK-vQH84OlpJe1PW-XemKMmVtncaKpTm0Og",
			Tabs:     []string{"V1", "V2", "V3", "P", "N"},
		},
	}
}

// SheetsProvider loads decks from Google Sheets published as CSV via the
// gviz endpoint. Decks are fetched once and kept in memory; Reload
// refreshes them.
type SheetsProvider struct {
	sources []SheetSource
	client  *http.Client

	mu    sync.RWMutex
	decks map[string]*Deck
	order []string
}

// NewSheetsProvider creates a provider for the given sources. Nothing is
// fetched until Reload or the first List/Load call.
func NewSheetsProvider(sources []SheetSource) *SheetsProvider {
	return &SheetsProvider{
		sources: sources,
		client:  &http.Client{Timeout: 30 * time.Second},
		decks:   make(map[string]*Deck),
	}
}

// List returns the available decks, loading them on first use.
func (p *SheetsProvider) List(ctx context.Context) ([]Info, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	infos := make([]Info, 0, len(p.order))
	for _, id := range p.order {
		d := p.decks[id]
		infos = append(infos, Info{
			ID:       d.ID,
			Name:     d.Name,
			Category: d.Category,
			Count:    len(d.Cards),
			Hash:     d.Hash,
		})
	}
	return infos, nil
}

// Load returns the deck with the given ID.
func (p *SheetsProvider) Load(ctx context.Context, id string) (*Deck, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	deck, ok := p.decks[id]
	p.mu.RUnlock()

	if !ok {
		return nil, ErrDeckNotFound
	}
	if len(deck.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	return deck, nil
}

// Reload fetches every configured tab again, replacing the in-memory set.
// Tabs that fail to load are skipped with a warning; the reload only
// errors when nothing at all could be fetched.
func (p *SheetsProvider) Reload(ctx context.Context) error {
	decks := make(map[string]*Deck)
	var order []string

	for _, src := range p.sources {
		for _, tab := range src.Tabs {
			deck, err := p.fetchTab(ctx, src, tab)
			if err != nil {
				log.Warn("Failed to load deck tab", "category", src.Category, "tab", tab, "error", err)
				continue
			}
			decks[deck.ID] = deck
			order = append(order, deck.ID)
			log.Debug("Loaded deck", "id", deck.ID, "cards", len(deck.Cards), "hash", deck.Hash)
		}
	}

	if len(decks) == 0 {
		return fmt.Errorf("no decks could be loaded from %d sources", len(p.sources))
	}

	p.mu.Lock()
	p.decks = decks
	p.order = order
	p.mu.Unlock()
	return nil
}

func (p *SheetsProvider) ensureLoaded(ctx context.Context) error {
	p.mu.RLock()
	loaded := len(p.decks) > 0
	p.mu.RUnlock()

	if loaded {
		return nil
	}
	return p.Reload(ctx)
}

// fetchTab downloads one spreadsheet tab as CSV and parses its cards.
func (p *SheetsProvider) fetchTab(ctx context.Context, src SheetSource, tab string) (*Deck, error) {
	u := fmt.Sprintf(
		"https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		src.SheetID, url.QueryEscape(tab),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned HTTP %d", resp.StatusCode)
	}

	cards, err := ParseCSV(resp.Body, src.Category)
	if err != nil {
		return nil, err
	}

	id := string(src.Category) + "_" + strings.ReplaceAll(tab, " ", "_")
	return &Deck{
		ID:       id,
		Name:     tab,
		Category: src.Category,
		Cards:    cards,
		Hash:     ContentHash(cards),
	}, nil
}

// ParseCSV reads cards from a CSV stream with Thai / Pronunciation /
// English / Override columns. Rows missing Thai or English are skipped.
// Script decks fall back to the pronunciation when English is empty.
func ParseCSV(r io.Reader, category Category) ([]Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // published sheets pad rows unevenly

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var cards []Card
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		thai := field(row, "Thai")
		phonetic := field(row, "Pronunciation")
		eng := field(row, "English")
		override := field(row, "Override")

		if category == CategoryScript && eng == "" {
			eng = phonetic
		}
		if thai == "" || eng == "" {
			continue
		}

		audioText := thai
		if override != "" {
			audioText = override
		}
		cards = append(cards, Card{
			Thai:      thai,
			Eng:       eng,
			Phonetic:  phonetic,
			AudioText: audioText,
		})
	}

	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	return cards, nil
}
