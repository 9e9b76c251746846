// ABOUTME: Main menu for the storefront console
// ABOUTME: Offers actions that fit the session: guest, customer or admin

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/markalston/pickbazar/internal/session"
	"github.com/markalston/pickbazar/internal/tui/forms"
)

// Action is a menu choice
type Action int

const (
	ActionBrowse Action = iota
	ActionDashboard
	ActionProducts
	ActionCategories
	ActionLogin
	ActionRegister
	ActionLogout
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionBrowse:
		return "browse"
	case ActionDashboard:
		return "dashboard"
	case ActionProducts:
		return "products"
	case ActionCategories:
		return "categories"
	case ActionLogin:
		return "login"
	case ActionRegister:
		return "register"
	case ActionLogout:
		return "logout"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// SelectedMsg is sent when an action is chosen
type SelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

type option struct {
	label  string
	action Action
}

// Menu lists the actions available to the current session
type Menu struct {
	options  []option
	selected Action
	form     *huh.Form
}

// New builds the menu for a session snapshot
func New(snap session.Snapshot) *Menu {
	m := &Menu{options: optionsFor(snap)}
	m.selected = m.options[0].action

	opts := make([]huh.Option[Action], len(m.options))
	for i, o := range m.options {
		opts[i] = huh.NewOption(o.label, o.action)
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[Action]().
			Title("What would you like to do?").
			Options(opts...).
			Value(&m.selected),
	)).WithTheme(forms.Theme()).WithShowHelp(false)
	return m
}

func optionsFor(snap session.Snapshot) []option {
	opts := []option{{label: "Browse the storefront", action: ActionBrowse}}
	switch {
	case snap.Profile.IsAdmin():
		opts = append(opts,
			option{label: "Admin dashboard", action: ActionDashboard},
			option{label: "Manage products", action: ActionProducts},
			option{label: "Manage categories", action: ActionCategories},
			option{label: "Log out", action: ActionLogout},
		)
	case snap.LoggedIn:
		opts = append(opts, option{label: "Log out", action: ActionLogout})
	default:
		opts = append(opts,
			option{label: "Log in", action: ActionLogin},
			option{label: "Create an account", action: ActionRegister},
		)
	}
	return append(opts, option{label: "Quit", action: ActionQuit})
}

// Actions lists the offered actions in order
func (m *Menu) Actions() []Action {
	out := make([]Action, len(m.options))
	for i, o := range m.options {
		out[i] = o.action
	}
	return out
}

func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.choose()
	}
	return m, cmd
}

func (m *Menu) choose() tea.Cmd {
	action := m.selected
	return func() tea.Msg { return SelectedMsg{Action: action} }
}

func (m *Menu) View() string {
	return m.form.View()
}
