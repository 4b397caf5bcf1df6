// Package ui provides the terminal UI for the drill application.
package ui

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/narongdej/thaidrill/internal/audio"
	"github.com/narongdej/thaidrill/internal/audiocache"
	"github.com/narongdej/thaidrill/internal/card"
	"github.com/narongdej/thaidrill/internal/progress"
)

// Deps are the services the UI drives. main wires them up.
type Deps struct {
	Decks    card.Provider
	Cache    *audiocache.Cache
	Player   audio.Player
	Progress *progress.Store
	Rand     *rand.Rand
}

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, deps Deps) *tea.Program {
	log.Debug("Starting UI", "engine", cfg.Engine, "no_audio", cfg.NoAudio)
	m := newModel(cfg, deps)
	return tea.NewProgram(m, tea.WithAltScreen())
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// state is the top-level application state.
type state int

const (
	stateMenu state = iota
	stateDecks
	stateReview
	stateNumbers
)

func (s state) String() string {
	return map[state]string{
		stateMenu:    "showing menu",
		stateDecks:   "showing deck listing",
		stateReview:  "reviewing deck",
		stateNumbers: "playing numbers game",
	}[s]
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	cfg    Config
	deps   Deps
	width  int
	height int
}

// menuItem is one entry on the start screen.
type menuItem struct {
	label    string
	category card.Category // empty for the numbers game
	numbers  bool
}

var menuItems = []menuItem{
	{label: "Vocabulary", category: card.CategoryVocab},
	{label: "Reading Practice", category: card.CategoryScript},
	{label: "Thai Letters", category: card.CategoryLetters},
	{label: "Numbers Game", numbers: true},
}

type model struct {
	common   *commonModel
	state    state
	fatalErr error

	menuCursor int

	// Sub-models
	decks   decksModel
	review  reviewModel
	numbers numbersModel
}

func newModel(cfg Config, deps Deps) tea.Model {
	common := commonModel{cfg: cfg, deps: deps}
	return model{
		common: &common,
		state:  stateMenu,
		decks:  newDecksModel(&common),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been an error, any key exits.
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// The deck filter needs its raw input.
			if m.state == stateDecks && m.decks.filtering() {
				break
			}
			return m, tea.Quit

		case "esc":
			switch m.state {
			case stateDecks:
				if m.decks.filtering() || m.decks.filterApplied() {
					break // the sub-model clears its own filter
				}
				m.state = stateMenu
				return m, nil
			case stateReview, stateNumbers:
				m.common.deps.Player.Stop()
				m.state = stateMenu
				return m, nil
			}

		case "ctrl+z":
			return m, tea.Suspend
		}

		if m.state == stateMenu {
			return m.updateMenu(msg)
		}

	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height

	case errMsg:
		m.fatalErr = msg.err
		log.Error("Fatal UI error", "error", msg.err)
		return m, nil

	case reviewDoneMsg:
		m.state = stateDecks
		return m, m.decks.reload()
	}

	switch m.state {
	case stateDecks:
		newDecks, cmd := m.decks.update(msg)
		m.decks = newDecks
		cmds = append(cmds, cmd)

		if deck := m.decks.takeSelection(); deck != nil {
			m.state = stateReview
			m.review = newReviewModel(m.common, deck, m.decks.direction)
			cmds = append(cmds, m.review.start())
		}

	case stateReview:
		newReview, cmd := m.review.update(msg)
		m.review = newReview
		cmds = append(cmds, cmd)

	case stateNumbers:
		newNumbers, cmd := m.numbers.update(msg)
		m.numbers = newNumbers
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case "enter", " ":
		item := menuItems[m.menuCursor]
		if item.numbers {
			m.state = stateNumbers
			m.numbers = newNumbersModel(m.common)
			return m, m.numbers.start()
		}
		m.state = stateDecks
		m.decks.setCategory(item.category)
		return m, m.decks.reload()
	}
	return m, nil
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr, true)
	}

	switch m.state {
	case stateDecks:
		return m.decks.view()
	case stateReview:
		return m.review.view()
	case stateNumbers:
		return m.numbers.view()
	default:
		return m.menuView()
	}
}

func (m model) menuView() string {
	var b strings.Builder
	b.WriteString("\n  " + logoStyle.Render("Thai Drill") + "\n\n")
	for i, item := range menuItems {
		if i == m.menuCursor {
			b.WriteString("  " + selectedStyle.Render("> "+item.label) + "\n")
		} else {
			b.WriteString("    " + item.label + "\n")
		}
	}
	b.WriteString("\n  " + subtleStyle.Render("↑/↓ move · enter select · q quit") + "\n")
	return b.String()
}

func errorView(err error, fatal bool) string {
	exitMsg := "press any key to "
	if fatal {
		exitMsg += "exit"
	} else {
		exitMsg += "return"
	}
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		errorTitleStyle.Render("ERROR"),
		err,
		subtleStyle.Render(exitMsg),
	)
	return "\n" + indent(s, 3)
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}
