package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"

	"github.com/narongdej/thaidrill/internal/card"
	"github.com/narongdej/thaidrill/internal/progress"
)

const deckLoadTimeout = 30 * time.Second

// filterState is the deck filter's input mode.
type filterState int

const (
	unfiltered filterState = iota
	filtering
	filterApplied
)

type (
	decksLoadedMsg []card.Info
	deckLoadedMsg  struct{ deck *card.Deck }
)

// deckInfos adapts the listing to fuzzy.Source.
type deckInfos []card.Info

func (d deckInfos) String(i int) string { return d[i].Name }
func (d deckInfos) Len() int            { return len(d) }

type decksModel struct {
	common   *commonModel
	category card.Category

	decks    []card.Info
	visible  []card.Info
	cursor   int
	loading  bool
	spinner  spinner.Model
	selected *card.Deck

	// direction is which side the next session shows first.
	direction progress.Direction

	filter      filterState
	filterInput textinput.Model
}

func newDecksModel(common *commonModel) decksModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle

	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.PromptStyle = selectedStyle
	ti.CharLimit = 64

	return decksModel{
		common:      common,
		spinner:     sp,
		direction:   progress.Front,
		filterInput: ti,
	}
}

func (m *decksModel) setCategory(c card.Category) {
	m.category = c
	m.decks = nil
	m.visible = nil
	m.cursor = 0
	m.clearFilter()
}

func (m decksModel) filtering() bool     { return m.filter == filtering }
func (m decksModel) filterApplied() bool { return m.filter != unfiltered }

// takeSelection returns the deck chosen since the last call, if any.
func (m *decksModel) takeSelection() *card.Deck {
	deck := m.selected
	m.selected = nil
	return deck
}

// reload lists the decks for the active category.
func (m *decksModel) reload() tea.Cmd {
	m.loading = true
	provider := m.common.deps.Decks
	category := m.category
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deckLoadTimeout)
		defer cancel()

		infos, err := provider.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		matching := make([]card.Info, 0, len(infos))
		for _, info := range infos {
			if info.Category == category {
				matching = append(matching, info)
			}
		}
		return decksLoadedMsg(matching)
	})
}

func (m *decksModel) loadDeck(id string) tea.Cmd {
	m.loading = true
	provider := m.common.deps.Decks
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deckLoadTimeout)
		defer cancel()

		deck, err := provider.Load(ctx, id)
		if err != nil {
			return errMsg{fmt.Errorf("failed to load deck %s: %w", id, err)}
		}
		return deckLoadedMsg{deck: deck}
	})
}

func (m decksModel) update(msg tea.Msg) (decksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		m.loading = false
		m.decks = msg
		m.applyFilter()
		if m.cursor >= len(m.visible) {
			m.cursor = 0
		}
		return m, nil

	case deckLoadedMsg:
		m.loading = false
		m.selected = msg.deck
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m decksModel) updateKeys(msg tea.KeyMsg) (decksModel, tea.Cmd) {
	if m.filter == filtering {
		switch msg.String() {
		case "esc":
			m.clearFilter()
			m.applyFilter()
			return m, nil
		case "enter":
			m.filter = filterApplied
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			if m.cursor >= len(m.visible) {
				m.cursor = 0
			}
			return m, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "/":
		m.filter = filtering
		m.filterInput.Focus()
		return m, textinput.Blink
	case "esc":
		if m.filter == filterApplied {
			m.clearFilter()
			m.applyFilter()
		}
	case "tab":
		if m.direction == progress.Front {
			m.direction = progress.Back
		} else {
			m.direction = progress.Front
		}
	case "x":
		if m.cursor < len(m.visible) {
			id := m.visible[m.cursor].ID
			if err := m.common.deps.Progress.Reset(id); err != nil {
				log.Warn("Failed to reset progress", "deck", id, "error", err)
			}
		}
	case "r":
		return m, m.reload()
	case "enter":
		if !m.loading && m.cursor < len(m.visible) {
			return m, m.loadDeck(m.visible[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *decksModel) clearFilter() {
	m.filter = unfiltered
	m.filterInput.Reset()
	m.filterInput.Blur()
}

func (m *decksModel) applyFilter() {
	query := m.filterInput.Value()
	if m.filter == unfiltered || query == "" {
		m.visible = m.decks
		return
	}
	matches := fuzzy.FindFrom(query, deckInfos(m.decks))
	m.visible = make([]card.Info, len(matches))
	for i, match := range matches {
		m.visible[i] = m.decks[match.Index]
	}
}

func (m decksModel) view() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(categoryTitle(m.category)))
	b.WriteString("  " + subtleStyle.Render("showing "+string(m.direction)+" first") + "\n\n")

	if m.filter != unfiltered {
		b.WriteString("  " + m.filterInput.View() + "\n\n")
	}

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " Loading decks…\n")
		return b.String()
	}
	if len(m.visible) == 0 {
		b.WriteString("  " + subtleStyle.Render("No decks found.") + "\n")
		return b.String()
	}

	for i, info := range m.visible {
		line := fmt.Sprintf("%s (%d cards)%s", info.Name, info.Count, m.badges(info))
		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}

	b.WriteString("\n  " + subtleStyle.Render(
		"enter start · tab direction · / filter · x reset · esc back") + "\n")
	return b.String()
}

// badges shows which directions are completed for the deck.
func (m decksModel) badges(info card.Info) string {
	var parts []string
	if m.common.deps.Progress.Completed(info.ID, info.Hash, progress.Front) {
		parts = append(parts, "front ✓")
	}
	if m.common.deps.Progress.Completed(info.ID, info.Hash, progress.Back) {
		parts = append(parts, "back ✓")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + badgeStyle.Render("["+strings.Join(parts, ", ")+"]")
}

func categoryTitle(c card.Category) string {
	switch c {
	case card.CategoryVocab:
		return "Vocabulary"
	case card.CategoryScript:
		return "Reading Practice"
	case card.CategoryLetters:
		return "Thai Letters"
	default:
		return "Decks"
	}
}
