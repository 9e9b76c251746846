// ABOUTME: Tests for the main menu
// ABOUTME: Validates session-dependent options and selection messages

package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/pickbazar/internal/session"
)

func TestGuestOptions(t *testing.T) {
	m := New(session.Snapshot{})

	want := []Action{ActionBrowse, ActionLogin, ActionRegister, ActionQuit}
	assertActions(t, m.Actions(), want)
}

func TestCustomerOptions(t *testing.T) {
	m := New(session.Snapshot{LoggedIn: true, Profile: &session.Profile{Role: "customer"}})

	want := []Action{ActionBrowse, ActionLogout, ActionQuit}
	assertActions(t, m.Actions(), want)
}

func TestAdminOptions(t *testing.T) {
	m := New(session.Snapshot{LoggedIn: true, Profile: &session.Profile{Role: "admin"}})

	want := []Action{ActionBrowse, ActionDashboard, ActionProducts, ActionCategories, ActionLogout, ActionQuit}
	assertActions(t, m.Actions(), want)
}

func TestDefaultSelectionIsBrowse(t *testing.T) {
	m := New(session.Snapshot{})

	msg, ok := m.choose()().(SelectedMsg)
	if !ok || msg.Action != ActionBrowse {
		t.Errorf("expected browse selected, got %#v", msg)
	}
}

func TestQuitKeyCancels(t *testing.T) {
	m := New(session.Snapshot{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestActionString(t *testing.T) {
	if ActionDashboard.String() != "dashboard" {
		t.Errorf("unexpected %q", ActionDashboard.String())
	}
	if Action(99).String() != "unknown" {
		t.Error("expected unknown for out of range action")
	}
}

func assertActions(t *testing.T, got, want []Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
