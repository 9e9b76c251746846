// ABOUTME: Multi-step huh forms as bubbletea models
// ABOUTME: Login, registration, product, category and delete confirmation

package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/styles"
)

// LoginSubmittedMsg carries the entered credentials
type LoginSubmittedMsg struct {
	Credentials client.Credentials
}

// RegisterSubmittedMsg carries a new account
type RegisterSubmittedMsg struct {
	Registration client.Registration
}

// ProductSubmittedMsg carries product fields. ID is zero for a new product.
// The image is chosen afterwards.
type ProductSubmittedMsg struct {
	ID    int64
	Input client.ProductInput
}

// CategorySubmittedMsg carries category fields. ID is zero for a new category.
type CategorySubmittedMsg struct {
	ID    int64
	Input client.CategoryInput
}

// ConfirmedMsg answers a confirmation form
type ConfirmedMsg struct {
	Yes bool
}

// CancelledMsg is sent when the user leaves a form with Esc
type CancelledMsg struct{}

// step is one page of a form
type step struct {
	name  string
	build func() *huh.Form
}

// Form runs its steps in order and emits a message when the last completes
type Form struct {
	title string
	steps []step
	step  int
	form  *huh.Form
	width int
	err   string
	done  func() tea.Msg
	sent  bool
}

func newForm(title string, done func() tea.Msg, steps ...step) *Form {
	f := &Form{title: title, steps: steps, done: done}
	f.form = steps[0].build()
	return f
}

// Title names the form for the frame header
func (f *Form) Title() string {
	return f.title
}

// SetError shows a message above the form, e.g. a rejected login
func (f *Form) SetError(msg string) {
	f.err = msg
}

// SetWidth sets the rendering width
func (f *Form) SetWidth(width int) {
	f.width = width
}

func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.sent {
		return f, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	model, cmd := f.form.Update(msg)
	if hf, ok := model.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		return f.advance()
	case huh.StateAborted:
		return f, func() tea.Msg { return CancelledMsg{} }
	}
	return f, cmd
}

func (f *Form) advance() (tea.Model, tea.Cmd) {
	if f.step < len(f.steps)-1 {
		f.step++
		f.form = f.steps[f.step].build()
		return f, f.form.Init()
	}
	f.sent = true
	return f, f.done
}

func (f *Form) View() string {
	var sb strings.Builder

	if len(f.steps) > 1 {
		sb.WriteString(f.renderProgress())
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(styles.Title.Render(f.title))
		sb.WriteString("\n")
	}
	if f.err != "" {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + f.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(f.form.View())
	return sb.String()
}

// renderProgress draws the step indicator box
func (f *Form) renderProgress() string {
	width := max(f.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, s := range f.steps {
		var indicator string
		nameStyle := lipgloss.NewStyle().Foreground(styles.Muted)
		switch {
		case i < f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
		case i == f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
		}
		steps = append(steps, indicator+" "+nameStyle.Render(s.name))
	}
	stepsLine := strings.Join(steps, "    ")

	barWidth := width - 5
	filled := (f.step + 1) * barWidth / len(f.steps)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filled))

	top := "┌─ " + titleStyle.Render(f.title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(f.title))) + "┐"
	middle := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	progress := "│  " + bar + " │"
	bottom := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{top, middle, progress, bottom}, "\n"))
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a price like 2.50")
	}
	if v <= 0 {
		return errors.New("price must be greater than 0")
	}
	return nil
}

func validateStock(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if v < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// NewLogin builds the login form, prefilled with email when known
func NewLogin(email string) *Form {
	creds := &client.Credentials{Email: email}
	return newForm("Log in",
		func() tea.Msg { return LoginSubmittedMsg{Credentials: *creds} },
		step{name: "Credentials", build: func() *huh.Form {
			return huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Email").Value(&creds.Email).Validate(required("email")),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password).Validate(required("password")),
			)).WithTheme(Theme()).WithShowHelp(false)
		}},
	)
}

// NewRegister builds the registration form
func NewRegister() *Form {
	reg := &client.Registration{}
	return newForm("Create account",
		func() tea.Msg { return RegisterSubmittedMsg{Registration: *reg} },
		step{name: "Account", build: func() *huh.Form {
			return huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Name").Value(&reg.Name).Validate(required("name")),
				huh.NewInput().Title("Email").Value(&reg.Email).Validate(required("email")),
				huh.NewInput().Title("Password").Description("At least 6 characters").
					EchoMode(huh.EchoModePassword).Value(&reg.Password).
					Validate(func(s string) error {
						if len(s) < 6 {
							return errors.New("password must be at least 6 characters")
						}
						return nil
					}),
			)).WithTheme(Theme()).WithShowHelp(false)
		}},
	)
}

// productFields holds the string values huh edits
type productFields struct {
	name, description, price, stock, categoryID string
	category                                     int64
}

// NewProduct builds the product form. A nil product creates a new one.
func NewProduct(existing *client.Product, categories []client.Category) *Form {
	v := &productFields{price: "", stock: "0"}
	var id int64
	title := "New product"
	if existing != nil {
		id = int64(existing.ID)
		title = "Edit " + existing.Name
		v.name = existing.Name
		v.description = existing.Description
		v.price = strconv.FormatFloat(float64(existing.Price), 'f', -1, 64)
		v.stock = existing.Stock.String()
		v.category = int64(existing.CategoryRef())
		v.categoryID = existing.CategoryRef().String()
	}

	done := func() tea.Msg {
		return ProductSubmittedMsg{ID: id, Input: v.input(len(categories) > 0)}
	}

	return newForm(title, done,
		step{name: "Details", build: func() *huh.Form {
			return huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Name").Value(&v.name).Validate(required("name")),
				huh.NewText().Title("Description").Lines(3).Value(&v.description),
			).Title("Step 1: Details")).WithTheme(Theme()).WithShowHelp(false)
		}},
		step{name: "Price & Stock", build: func() *huh.Form {
			fields := []huh.Field{
				huh.NewInput().Title("Price").Placeholder("2.50").Value(&v.price).Validate(validatePrice),
				huh.NewInput().Title("Stock").Value(&v.stock).Validate(validateStock),
			}
			if len(categories) > 0 {
				opts := make([]huh.Option[int64], len(categories))
				for i, c := range categories {
					opts[i] = huh.NewOption(c.Name, int64(c.ID))
				}
				fields = append(fields, huh.NewSelect[int64]().Title("Category").Options(opts...).Value(&v.category))
			} else {
				fields = append(fields, huh.NewInput().Title("Category ID").Value(&v.categoryID).Validate(validateStock))
			}
			return huh.NewForm(huh.NewGroup(fields...).Title("Step 2: Price & Stock")).
				WithTheme(Theme()).WithShowHelp(false)
		}},
	)
}

func (v *productFields) input(fromSelect bool) client.ProductInput {
	in := client.ProductInput{
		Name:        strings.TrimSpace(v.name),
		Description: strings.TrimSpace(v.description),
		CategoryID:  v.category,
	}
	in.Price, _ = strconv.ParseFloat(strings.TrimSpace(v.price), 64)
	in.Stock, _ = strconv.Atoi(strings.TrimSpace(v.stock))
	if !fromSelect {
		in.CategoryID, _ = strconv.ParseInt(strings.TrimSpace(v.categoryID), 10, 64)
	}
	return in
}

// NewCategory builds the category form. A nil category creates a new one.
func NewCategory(existing *client.Category) *Form {
	in := &client.CategoryInput{}
	var id int64
	title := "New category"
	if existing != nil {
		id = int64(existing.ID)
		title = "Edit " + existing.Name
		in.Name = existing.Name
		in.Description = existing.Description
	}

	return newForm(title,
		func() tea.Msg { return CategorySubmittedMsg{ID: id, Input: *in} },
		step{name: "Category", build: func() *huh.Form {
			return huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Name").Value(&in.Name).Validate(required("name")),
				huh.NewText().Title("Description").Lines(3).Value(&in.Description),
			)).WithTheme(Theme()).WithShowHelp(false)
		}},
	)
}

// NewConfirm asks a yes/no question, defaulting to no
func NewConfirm(question string) *Form {
	yes := new(bool)
	return newForm("Confirm",
		func() tea.Msg { return ConfirmedMsg{Yes: *yes} },
		step{name: "Confirm", build: func() *huh.Form {
			return huh.NewForm(huh.NewGroup(
				huh.NewConfirm().Title(question).Affirmative("Delete").Negative("Cancel").Value(yes),
			)).WithTheme(Theme()).WithShowHelp(false)
		}},
	)
}
