package ui

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/narongdej/thaidrill/internal/numbers"
)

func startedNumbers(t *testing.T) numbersModel {
	t.Helper()
	m := newNumbersModel(testCommon(t))
	m.start()
	// Simulate the preload finishing.
	m, _ = m.update(challengesReadyMsg{})
	return m
}

func TestNumbersDigitKeysFeedGame(t *testing.T) {
	m := startedNumbers(t)

	want := strconv.Itoa(m.game.Current().Value)
	for _, ch := range want[:len(want)-1] {
		var cmd tea.Cmd
		m, cmd = m.update(key(string(ch)))
		if cmd != nil {
			t.Fatal("Expected no command before the entry is complete")
		}
	}

	m, cmd := m.update(key(string(want[len(want)-1])))
	if m.game.Phase() != numbers.PhaseLocked {
		t.Errorf("Expected locked phase after full entry, got %v", m.game.Phase())
	}
	if cmd == nil {
		t.Fatal("Expected a feedback timer after full entry")
	}
}

func TestNumbersInputBlockedWhilePreloading(t *testing.T) {
	m := newNumbersModel(testCommon(t))
	m.start()

	m, _ = m.update(key("5"))
	if len(m.game.Entry()) != 0 {
		t.Error("Expected input to be dropped while preloading")
	}
}

func TestNumbersAdvanceAfterCorrect(t *testing.T) {
	m := startedNumbers(t)

	for _, ch := range strconv.Itoa(m.game.Current().Value) {
		m, _ = m.update(key(string(ch)))
	}
	m, _ = m.update(numbersAdvanceMsg{})

	if m.game.Level() != 1 {
		t.Errorf("Expected level 1 after correct entry, got %d", m.game.Level())
	}
	if m.preloading {
		t.Error("Expected no re-preload on a correct entry")
	}
}

func TestNumbersMissReloadsLadder(t *testing.T) {
	m := startedNumbers(t)

	// Enter a guaranteed-wrong first digit.
	want := strconv.Itoa(m.game.Current().Value)
	wrong := (int(want[0]-'0') + 1) % 10
	m, _ = m.update(key(strconv.Itoa(wrong)))
	for _, ch := range want[1:] {
		m, _ = m.update(key(string(ch)))
	}
	if result := m.game.Result(); result == nil || result.Correct {
		t.Fatal("Expected a wrong grade")
	}

	m, cmd := m.update(numbersAdvanceMsg{})
	if m.game.Level() != 0 {
		t.Errorf("Expected reset to level 0, got %d", m.game.Level())
	}
	if !m.preloading {
		t.Error("Expected fresh ladder to preload after a miss")
	}
	if cmd == nil {
		t.Error("Expected a preload command after a miss")
	}
}

func TestNumbersBackspaceKey(t *testing.T) {
	m := startedNumbers(t)
	if m.game.Current().Digits < 1 {
		t.Fatal("Fixture error: no digits")
	}

	m, _ = m.update(key("7"))
	m, _ = m.update(key("backspace"))
	if len(m.game.Entry()) != 0 {
		t.Errorf("Expected empty entry after backspace, got %v", m.game.Entry())
	}
}
