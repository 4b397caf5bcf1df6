package card

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	data := `Thai,Pronunciation,English,Override
สวัสดี,sawatdi,hello,
ไก่,gai,chicken,ไก่ ไก่
,,missing thai,
ขอบคุณ,khopkhun,,
`
	cards, err := ParseCSV(strings.NewReader(data), CategoryVocab)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Thai != "สวัสดี" || cards[0].Eng != "hello" {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[0].AudioText != "สวัสดี" {
		t.Errorf("Expected audio text to default to Thai, got %q", cards[0].AudioText)
	}
	if cards[1].AudioText != "ไก่ ไก่" {
		t.Errorf("Expected override audio text, got %q", cards[1].AudioText)
	}
}

func TestParseCSVScriptFallback(t *testing.T) {
	// Script decks use the pronunciation when English is missing.
	data := `Thai,Pronunciation,English
กา,gaa,
`
	cards, err := ParseCSV(strings.NewReader(data), CategoryScript)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}
	if cards[0].Eng != "gaa" {
		t.Errorf("Expected pronunciation fallback, got %q", cards[0].Eng)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	data := `Thai,Pronunciation,English
,,
`
	_, err := ParseCSV(strings.NewReader(data), CategoryVocab)
	if !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("Expected ErrEmptyDeck, got %v", err)
	}
}

func TestContentHashChanges(t *testing.T) {
	a := []Card{{Thai: "ไก่", Eng: "chicken"}}
	b := []Card{{Thai: "ไก่", Eng: "hen"}}

	ha, hb := ContentHash(a), ContentHash(b)
	if ha == hb {
		t.Errorf("Expected different hashes for different content, got %q for both", ha)
	}
	if len(ha) != 8 {
		t.Errorf("Expected 8-character hash, got %q", ha)
	}
	if ContentHash(a) != ha {
		t.Error("Expected hash to be deterministic")
	}
}

func TestSheetsProviderLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Thai,Pronunciation,English,Override\nน้ำ,nam,water,\n")
	}))
	defer srv.Close()

	p := NewSheetsProvider([]SheetSource{{
		Category: CategoryVocab,
		SheetID:  "test",
		Tabs:     []string{"Vocab 1"},
	}})
	// Point the gviz URL template at the test server.
	p.client = srv.Client()
	p.client.Transport = rewriteTransport{base: srv.URL}

	infos, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Expected 1 deck, got %d", len(infos))
	}
	if infos[0].ID != "vocab_Vocab_1" {
		t.Errorf("Expected ID vocab_Vocab_1, got %q", infos[0].ID)
	}

	deck, err := p.Load(context.Background(), "vocab_Vocab_1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(deck.Cards) != 1 || deck.Cards[0].Eng != "water" {
		t.Errorf("Unexpected deck contents: %+v", deck.Cards)
	}

	if _, err := p.Load(context.Background(), "nope"); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("Expected ErrDeckNotFound, got %v", err)
	}
}

// rewriteTransport redirects all requests to the test server.
type rewriteTransport struct {
	base string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u := rt.base + "/?" + req.URL.RawQuery
	redirected, err := http.NewRequest(req.Method, u, req.Body)
	if err != nil {
		return nil, err
	}
	return http.DefaultTransport.RoundTrip(redirected)
}

func TestLettersDeck(t *testing.T) {
	deck := Letters()

	if len(deck.Cards) != 44 {
		t.Errorf("Expected 44 letters, got %d", len(deck.Cards))
	}
	if deck.Category != CategoryLetters {
		t.Errorf("Expected letters category, got %q", deck.Category)
	}
	// Audio always speaks the full name, never the bare glyph.
	first := deck.Cards[0]
	if first.AudioText != "ก ไก่" {
		t.Errorf("Expected full-name audio text, got %q", first.AudioText)
	}
}
