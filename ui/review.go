package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/narongdej/thaidrill/internal/card"
	"github.com/narongdej/thaidrill/internal/progress"
	"github.com/narongdej/thaidrill/internal/review"
	"github.com/narongdej/thaidrill/internal/speech"
)

const reviewStatusTimeout = 2 * time.Second

type (
	// slideDoneMsg ends the card transition during which grading keys
	// are ignored.
	slideDoneMsg struct{}

	// autoplayMsg fires after the autoplay lag. It carries the audio
	// text it was scheduled for so a stale timer cannot voice the
	// wrong card.
	autoplayMsg struct{ text string }

	// audioReadyMsg delivers fetched audio. A stale response has still
	// populated the cache; it just isn't played.
	audioReadyMsg struct {
		text  string
		audio []byte
		err   error
	}

	reviewStatusTimeoutMsg struct{}

	// reviewDoneMsg returns to the deck listing.
	reviewDoneMsg struct{}

	completionSavedMsg struct{ err error }
)

type reviewModel struct {
	common *commonModel
	deck   *card.Deck
	dir    progress.Direction
	queue  *review.Queue

	flipped       bool
	transitioning bool
	marked        bool
	status        string
	initErr       error
}

func newReviewModel(common *commonModel, deck *card.Deck, dir progress.Direction) reviewModel {
	m := reviewModel{common: common, deck: deck, dir: dir}
	queue, err := review.New(deck.Cards, common.deps.Rand)
	if err != nil {
		m.initErr = err
		return m
	}
	m.queue = queue
	return m
}

func (m reviewModel) start() tea.Cmd {
	if m.initErr != nil {
		err := m.initErr
		return func() tea.Msg { return errMsg{err} }
	}
	return m.autoplayCmd()
}

// speakingSideShown reports whether the Thai side is currently visible.
func (m reviewModel) speakingSideShown() bool {
	if m.dir == progress.Front {
		return true // Thai is the prompt, always on screen
	}
	return m.flipped
}

func (m reviewModel) current() (card.Card, bool) {
	if m.queue == nil || m.queue.State() != review.StateActive {
		return card.Card{}, false
	}
	c, err := m.queue.Peek()
	if err != nil {
		return card.Card{}, false
	}
	return c, true
}

// autoplayCmd schedules the current card's audio after the autoplay
// lag, if the speaking side is visible.
func (m reviewModel) autoplayCmd() tea.Cmd {
	if m.common.cfg.NoAudio || !m.speakingSideShown() {
		return nil
	}
	c, ok := m.current()
	if !ok {
		return nil
	}
	text := c.AudioText
	return tea.Tick(m.common.cfg.Delays.Autoplay, func(time.Time) tea.Msg {
		return autoplayMsg{text: text}
	})
}

// fetchAudioCmd pulls the clip from the cache, synthesizing on a miss.
func (m reviewModel) fetchAudioCmd(text string) tea.Cmd {
	cache := m.common.deps.Cache
	return func() tea.Msg {
		audio, err := cache.Get(context.Background(), text, speech.CardSpeed)
		return audioReadyMsg{text: text, audio: audio, err: err}
	}
}

func (m reviewModel) markCompleteCmd() tea.Cmd {
	store := m.common.deps.Progress
	deckID, hash, dir := m.deck.ID, m.deck.Hash, m.dir
	return func() tea.Msg {
		return completionSavedMsg{err: store.MarkComplete(deckID, hash, dir)}
	}
}

func (m reviewModel) update(msg tea.Msg) (reviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case autoplayMsg:
		if c, ok := m.current(); ok && m.speakingSideShown() && c.AudioText == msg.text {
			return m, m.fetchAudioCmd(msg.text)
		}
		return m, nil

	case audioReadyMsg:
		if msg.err != nil {
			// Sessions run silently when synthesis is unavailable.
			log.Debug("Audio unavailable", "error", msg.err)
			return m, nil
		}
		c, ok := m.current()
		if !ok || m.common.cfg.NoAudio || c.AudioText != msg.text || !m.speakingSideShown() {
			return m, nil
		}
		if err := m.common.deps.Player.Play(msg.audio); err != nil {
			log.Warn("Playback failed", "error", err)
		}
		return m, nil

	case slideDoneMsg:
		m.transitioning = false
		return m, m.autoplayCmd()

	case completionSavedMsg:
		if msg.err != nil {
			log.Warn("Failed to save progress", "error", msg.err)
		}
		return m, nil

	case reviewStatusTimeoutMsg:
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m reviewModel) updateKeys(msg tea.KeyMsg) (reviewModel, tea.Cmd) {
	if m.queue != nil && m.queue.State() == review.StateComplete {
		if msg.String() == "enter" {
			return m, func() tea.Msg { return reviewDoneMsg{} }
		}
		return m, nil
	}

	switch msg.String() {
	case " ":
		if m.transitioning {
			return m, nil
		}
		wasSpeaking := m.speakingSideShown()
		m.flipped = !m.flipped
		if !wasSpeaking && m.speakingSideShown() {
			return m, m.autoplayCmd()
		}
		return m, nil

	case "left", "right":
		return m.submit(msg.String() == "right")

	case "p":
		if c, ok := m.current(); ok && !m.common.cfg.NoAudio {
			return m, m.fetchAudioCmd(c.AudioText)
		}

	case "c":
		if c, ok := m.current(); ok {
			if err := clipboard.WriteAll(c.Thai); err != nil {
				log.Warn("Clipboard write failed", "error", err)
				return m, nil
			}
			m.status = "Copied!"
			return m, tea.Tick(reviewStatusTimeout, func(time.Time) tea.Msg {
				return reviewStatusTimeoutMsg{}
			})
		}
	}
	return m, nil
}

// submit grades the current card. Grading is ignored while the slide
// transition runs so a key held down cannot double-grade.
func (m reviewModel) submit(correct bool) (reviewModel, tea.Cmd) {
	if m.transitioning {
		return m, nil
	}
	if err := m.queue.Submit(correct); err != nil {
		return m, nil
	}
	m.common.deps.Player.Stop()
	m.flipped = false

	if m.queue.State() == review.StateComplete {
		if m.marked {
			return m, nil
		}
		m.marked = true
		return m, m.markCompleteCmd()
	}

	m.transitioning = true
	return m, tea.Tick(m.common.cfg.Delays.Slide, func(time.Time) tea.Msg {
		return slideDoneMsg{}
	})
}

func (m reviewModel) view() string {
	if m.queue == nil {
		return errorView(m.initErr, false)
	}
	if m.queue.State() == review.StateComplete {
		var b strings.Builder
		b.WriteString("\n  " + correctStyle.Render("Deck complete!") + "\n\n")
		b.WriteString("  " + m.deck.Name + " (" + string(m.dir) + ")\n\n")
		b.WriteString("  " + subtleStyle.Render("enter back to decks · esc menu") + "\n")
		return b.String()
	}

	c, ok := m.current()
	if !ok {
		return ""
	}

	width := m.common.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.deck.Name))
	left := fmt.Sprintf("%d left", m.queue.Len())
	b.WriteString("  " + subtleStyle.Render(left) + "\n\n")

	prompt, answer := c.Thai, c.Eng
	if m.dir == progress.Back {
		prompt, answer = c.Eng, c.Thai
	}

	b.WriteString(centered(renderSide(prompt, width), width) + "\n")
	if m.flipped {
		b.WriteString("\n" + centered(renderSide(answer, width), width) + "\n")
		if c.Phonetic != "" {
			b.WriteString(centered(phoneticStyle.Render(c.Phonetic), width) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + correctStyle.Render(m.status) + "\n")
	}
	help := "space flip · ← wrong · → right · p play · c copy · esc menu"
	if m.transitioning {
		help = "…"
	}
	b.WriteString("  " + subtleStyle.Render(help) + "\n")
	return b.String()
}

// renderSide styles card text, wrapping long sentences.
func renderSide(text string, width int) string {
	wrapped := wordwrap.String(text, max(20, width-8))
	return thaiStyle.Render(wrapped)
}

// centered pads each line to the middle of the width, accounting for
// wide Thai glyphs.
func centered(s string, width int) string {
	var b strings.Builder
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		pad := (width - runewidth.StringWidth(line)) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad) + line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
