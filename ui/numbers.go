package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/narongdej/thaidrill/internal/numbers"
)

type (
	// challengesReadyMsg signals that a ladder's audio finished
	// preloading.
	challengesReadyMsg struct{}

	// numbersAdvanceMsg applies the grade after the feedback pause.
	numbersAdvanceMsg struct{}
)

type numbersModel struct {
	common *commonModel
	game   *numbers.Game

	preloading bool
	spinner    spinner.Model
}

func newNumbersModel(common *commonModel) numbersModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle

	return numbersModel{
		common:  common,
		game:    numbers.NewGame(common.deps.Rand),
		spinner: sp,
	}
}

func (m *numbersModel) start() tea.Cmd {
	return m.preloadCmd()
}

// preloadCmd synthesizes every level's audio before play begins, so a
// correct streak never waits on the network.
func (m *numbersModel) preloadCmd() tea.Cmd {
	m.preloading = true
	cache := m.common.deps.Cache
	challenges := m.game.Challenges()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		numbers.Preload(context.Background(), cache, challenges)
		return challengesReadyMsg{}
	})
}

// playCurrentCmd voices the active challenge. The clip is captured
// here, so a reset that lands mid-flight cannot play the old number
// over the new ladder.
func (m numbersModel) playCurrentCmd() tea.Cmd {
	if m.common.cfg.NoAudio {
		return nil
	}
	clip := m.game.Current().Audio
	if clip == nil {
		return nil
	}
	player := m.common.deps.Player
	return func() tea.Msg {
		if err := player.Play(clip); err != nil {
			log.Warn("Playback failed", "error", err)
		}
		return nil
	}
}

func (m numbersModel) update(msg tea.Msg) (numbersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case challengesReadyMsg:
		m.preloading = false
		return m, m.playCurrentCmd()

	case spinner.TickMsg:
		if !m.preloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case numbersAdvanceMsg:
		result := m.game.Result()
		if result == nil {
			return m, nil
		}
		wasCorrect := result.Correct
		m.game.Advance()
		if m.game.Phase() == numbers.PhaseVictory {
			return m, nil
		}
		if !wasCorrect {
			// A miss redrew the whole ladder; its audio is cold.
			return m, m.preloadCmd()
		}
		return m, m.playCurrentCmd()
	}
	return m, nil
}

func (m numbersModel) updateKeys(msg tea.KeyMsg) (numbersModel, tea.Cmd) {
	if m.game.Phase() == numbers.PhaseVictory {
		if msg.String() == "enter" || msg.String() == "r" {
			m.game.Restart()
			return m, m.preloadCmd()
		}
		return m, nil
	}
	if m.preloading {
		return m, nil
	}

	key := msg.String()
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		result := m.game.Input(int(key[0] - '0'))
		if result == nil {
			return m, nil
		}
		delay := m.common.cfg.Delays.Feedback
		if !result.Correct {
			delay = m.common.cfg.Delays.PreReset
		}
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return numbersAdvanceMsg{}
		})

	case key == "backspace":
		m.game.Backspace()

	case key == " ":
		return m, m.playCurrentCmd()

	case key == "r":
		m.game.Restart()
		return m, m.preloadCmd()
	}
	return m, nil
}

func (m numbersModel) view() string {
	var b strings.Builder
	b.WriteString("\n  " + logoStyle.Render("Numbers") + "  " + m.levelDots() + "\n\n")

	if m.game.Phase() == numbers.PhaseVictory {
		b.WriteString("  " + correctStyle.Render("ชนะแล้ว! All seven levels cleared.") + "\n\n")
		b.WriteString("  " + subtleStyle.Render("enter play again · esc menu") + "\n")
		return b.String()
	}

	if m.preloading {
		b.WriteString("  " + m.spinner.View() + " Preparing numbers…\n")
		return b.String()
	}

	challenge := m.game.Current()
	b.WriteString("  Listen and type the " +
		fmt.Sprintf("%d-digit", challenge.Digits) + " number\n\n")
	b.WriteString("  " + m.slots() + "\n\n")

	if result := m.game.Result(); result != nil && !result.Correct {
		b.WriteString("  " + wrongStyle.Render("It was "+humanize.Comma(int64(challenge.Value))) +
			"  " + subtleStyle.Render(challenge.Text) + "\n\n")
	}

	b.WriteString("  " + subtleStyle.Render(
		"0-9 type · backspace undo · space replay · r restart · esc menu") + "\n")
	return b.String()
}

// slots renders one cell per digit, comma-grouped like the number
// itself, colored by the grade once the entry is complete.
func (m numbersModel) slots() string {
	challenge := m.game.Current()
	entry := m.game.Entry()
	result := m.game.Result()

	glyph := "_"
	if !hasDarkBackground {
		glyph = "▁"
	}

	var cells []string
	for i := 0; i < challenge.Digits; i++ {
		if i > 0 && (challenge.Digits-i)%3 == 0 {
			cells = append(cells, subtleStyle.Render(","))
		}
		if i >= len(entry) {
			cells = append(cells, slotEmptyStyle.Render(glyph))
			continue
		}
		digit := fmt.Sprintf("%d", entry[i])
		switch {
		case result == nil:
			cells = append(cells, slotFilledStyle.Render(digit))
		case result.Marks[i] == numbers.MarkCorrect:
			cells = append(cells, correctStyle.Render(digit))
		default:
			cells = append(cells, wrongStyle.Render(digit))
		}
	}
	return strings.Join(cells, " ")
}

// levelDots shows progress through the seven levels.
func (m numbersModel) levelDots() string {
	var dots []string
	for i := 0; i < numbers.Levels; i++ {
		switch {
		case m.game.Phase() == numbers.PhaseVictory || i < m.game.Level():
			dots = append(dots, dotDoneStyle.Render("●"))
		case i == m.game.Level():
			dots = append(dots, dotActiveStyle.Render("●"))
		default:
			dots = append(dots, dotStyle.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}
