// ABOUTME: Root bubbletea model for the storefront console
// ABOUTME: Manages screen state, session notifications and routes input to child components

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/session"
	"github.com/markalston/pickbazar/internal/tui/admin"
	"github.com/markalston/pickbazar/internal/tui/dashboard"
	"github.com/markalston/pickbazar/internal/tui/filepicker"
	"github.com/markalston/pickbazar/internal/tui/forms"
	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/menu"
	"github.com/markalston/pickbazar/internal/tui/recentimages"
	"github.com/markalston/pickbazar/internal/tui/storefront"
	"github.com/markalston/pickbazar/internal/tui/styles"
	"github.com/markalston/pickbazar/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenStorefront
	ScreenDashboard
	ScreenProducts
	ScreenCategories
	ScreenProductForm
	ScreenImagePicker
	ScreenCategoryForm
	ScreenConfirm
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	frameOverhead    = 5  // header, footer, status line and two separators
)

// sessionChangedMsg signals that the session store changed
type sessionChangedMsg struct{}

// catalogLoadedMsg is sent when products and categories are fetched
type catalogLoadedMsg struct {
	catalog *client.Catalog
	err     error
}

type loginDoneMsg struct {
	result *client.LoginResult
	err    error
}

type registerDoneMsg struct {
	email   string
	message string
	err     error
}

// savedMsg reports a create or update
type savedMsg struct {
	what string
	back Screen
	err  error
}

// deletedMsg reports a delete
type deletedMsg struct {
	what string
	back Screen
	err  error
}

// pendingDelete is the delete waiting on the confirmation form
type pendingDelete struct {
	what string
	back Screen
	run  func(ctx context.Context) error
}

// App is the root model for the TUI
type App struct {
	client *client.Client
	recent *recentimages.Recent
	logger *slog.Logger

	screen     Screen
	width      int
	height     int
	status     string
	statusErr  bool
	loading    bool
	spinner    spinner.Model
	catalog    *client.Catalog
	lastUpdate time.Time

	snap        session.Snapshot
	sessionCh   chan struct{}
	unsubscribe func()

	cart *storefront.Cart

	// Child models
	menu       *menu.Menu
	form       *forms.Form
	formBack   Screen
	picker     *filepicker.FilePicker
	product    *forms.ProductSubmittedMsg
	deletion   *pendingDelete
	storefront *storefront.Storefront
	dashboard  *dashboard.Dashboard
	products   *admin.ProductList
	categories *admin.CategoryList
}

// New creates the TUI over an API client. Session changes made anywhere through
// the client's store are delivered to the model as messages.
func New(apiClient *client.Client, recent *recentimages.Recent, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if recent == nil {
		recent = recentimages.New("")
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)

	a := &App{
		client:    apiClient,
		recent:    recent,
		logger:    logger,
		screen:    ScreenMenu,
		spinner:   sp,
		cart:      &storefront.Cart{},
		sessionCh: make(chan struct{}, 1),
	}

	store := apiClient.Session()
	a.snap = store.Read()
	a.unsubscribe = store.Subscribe(func(session.Snapshot) {
		select {
		case a.sessionCh <- struct{}{}:
		default:
			// a pending signal already covers this change
		}
	})
	a.menu = menu.New(a.snap)
	return a
}

// Close stops session notifications
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.spinner.Tick, a.waitForSession())
}

// waitForSession blocks on the next store notification
func (a *App) waitForSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, a.forward(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case sessionChangedMsg:
		return a, tea.Batch(a.handleSession(), a.waitForSession())

	case menu.SelectedMsg:
		return a.handleAction(msg.Action)

	case menu.CancelledMsg:
		return a, tea.Quit

	case forms.LoginSubmittedMsg:
		a.loading = true
		return a, a.login(msg.Credentials)

	case forms.RegisterSubmittedMsg:
		a.loading = true
		return a, a.register(msg.Registration)

	case forms.ProductSubmittedMsg:
		a.product = &msg
		a.picker = filepicker.New(a.recent.List())
		a.form = nil
		a.screen = ScreenImagePicker
		return a, a.picker.Init()

	case filepicker.ImageSelectedMsg:
		return a.handleImageSelected(msg)

	case filepicker.CancelledMsg:
		a.picker = nil
		a.product = nil
		a.screen = ScreenProducts
		return a, nil

	case forms.CategorySubmittedMsg:
		a.form = nil
		a.screen = ScreenCategories
		a.loading = true
		return a, a.saveCategory(msg)

	case forms.ConfirmedMsg:
		return a.handleConfirmed(msg)

	case forms.CancelledMsg:
		a.form = nil
		a.screen = a.formBack
		if a.screen == ScreenMenu {
			return a, a.rebuildMenu()
		}
		return a, nil

	case loginDoneMsg:
		return a.handleLoginDone(msg)

	case registerDoneMsg:
		return a.handleRegisterDone(msg)

	case catalogLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		a.applyCatalog(msg.catalog)
		return a, nil

	case savedMsg:
		return a.handleWriteDone(msg.what, "Saved", msg.back, msg.err)

	case deletedMsg:
		return a.handleWriteDone(msg.what, "Deleted", msg.back, msg.err)
	}

	// huh and textinput need their internal messages
	return a, a.forward(msg)
}

// forward passes a message to the active child component
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenMenu:
		if a.menu != nil {
			_, cmd = a.menu.Update(msg)
		}
	case ScreenLogin, ScreenRegister, ScreenProductForm, ScreenCategoryForm, ScreenConfirm:
		if a.form != nil {
			_, cmd = a.form.Update(msg)
		}
	case ScreenImagePicker:
		if a.picker != nil {
			_, cmd = a.picker.Update(msg)
		}
	}
	return cmd
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loading && (a.screen == ScreenLogin || a.screen == ScreenRegister) {
		return a, nil
	}
	switch a.screen {
	case ScreenMenu, ScreenLogin, ScreenRegister, ScreenProductForm, ScreenCategoryForm, ScreenConfirm, ScreenImagePicker:
		return a, a.forward(msg)
	case ScreenStorefront:
		return a.updateStorefront(msg)
	case ScreenDashboard:
		return a.updateDashboard(msg)
	case ScreenProducts:
		return a.updateProducts(msg)
	case ScreenCategories:
		return a.updateCategories(msg)
	}
	return a, nil
}

// globalKey handles keys shared by the browsing screens
func (a *App) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "q":
		return tea.Quit, true
	case "esc", "b":
		a.screen = ScreenMenu
		a.status = ""
		return a.rebuildMenu(), true
	case "r":
		return a.loadCatalog(), true
	}
	return nil, false
}

func (a *App) updateStorefront(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.globalKey(msg.String()); ok {
		return a, cmd
	}
	if a.storefront == nil {
		return a, nil
	}
	_, cmd := a.storefront.Update(msg)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.globalKey(msg.String()); ok {
		return a, cmd
	}
	switch msg.String() {
	case "p":
		a.screen = ScreenProducts
	case "c":
		a.screen = ScreenCategories
	}
	return a, nil
}

func (a *App) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.globalKey(msg.String()); ok {
		return a, cmd
	}
	if a.products == nil {
		return a, nil
	}
	switch msg.String() {
	case "n":
		return a, a.openForm(ScreenProductForm, ScreenProducts, forms.NewProduct(nil, a.catalog.Categories))
	case "e", "enter":
		if p, ok := a.products.Selected(); ok {
			return a, a.openForm(ScreenProductForm, ScreenProducts, forms.NewProduct(&p, a.catalog.Categories))
		}
		return a, nil
	case "d", "x":
		if p, ok := a.products.Selected(); ok {
			id := int64(p.ID)
			a.deletion = &pendingDelete{
				what: "product " + p.Name,
				back: ScreenProducts,
				run:  func(ctx context.Context) error { return a.client.DeleteProduct(ctx, id) },
			}
			return a, a.openForm(ScreenConfirm, ScreenProducts, forms.NewConfirm(fmt.Sprintf("Delete product %q?", p.Name)))
		}
		return a, nil
	case "tab":
		a.screen = ScreenCategories
		return a, nil
	}
	return a, a.products.Update(msg)
}

func (a *App) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.globalKey(msg.String()); ok {
		return a, cmd
	}
	if a.categories == nil {
		return a, nil
	}
	switch msg.String() {
	case "n":
		return a, a.openForm(ScreenCategoryForm, ScreenCategories, forms.NewCategory(nil))
	case "e", "enter":
		if c, ok := a.categories.Selected(); ok {
			return a, a.openForm(ScreenCategoryForm, ScreenCategories, forms.NewCategory(&c))
		}
		return a, nil
	case "d", "x":
		if c, ok := a.categories.Selected(); ok {
			id := int64(c.ID)
			a.deletion = &pendingDelete{
				what: "category " + c.Name,
				back: ScreenCategories,
				run:  func(ctx context.Context) error { return a.client.DeleteCategory(ctx, id) },
			}
			return a, a.openForm(ScreenConfirm, ScreenCategories, forms.NewConfirm(fmt.Sprintf("Delete category %q?", c.Name)))
		}
		return a, nil
	case "tab":
		a.screen = ScreenProducts
		return a, nil
	}
	return a, a.categories.Update(msg)
}

func (a *App) openForm(screen, back Screen, f *forms.Form) tea.Cmd {
	f.SetWidth(a.frameWidth())
	a.form = f
	a.formBack = back
	a.screen = screen
	a.status = ""
	return f.Init()
}

func (a *App) rebuildMenu() tea.Cmd {
	a.menu = menu.New(a.snap)
	return a.menu.Init()
}

// handleSession applies the store's current session. Admin screens are left
// when the session no longer carries an admin profile.
func (a *App) handleSession() tea.Cmd {
	snap := a.client.Session().Read()
	a.snap = snap
	a.logger.Debug("session changed", "logged_in", snap.LoggedIn, "admin", snap.Profile.IsAdmin())

	if !snap.Profile.IsAdmin() && a.isAdminScreen() {
		a.form = nil
		a.picker = nil
		a.screen = ScreenMenu
		a.setStatus("Admin session ended", true)
	}
	if a.screen == ScreenMenu {
		return a.rebuildMenu()
	}
	return nil
}

func (a *App) isAdminScreen() bool {
	switch a.screen {
	case ScreenDashboard, ScreenProducts, ScreenCategories, ScreenProductForm, ScreenImagePicker, ScreenCategoryForm, ScreenConfirm:
		return true
	}
	return false
}

func (a *App) handleAction(action menu.Action) (tea.Model, tea.Cmd) {
	a.status = ""
	switch action {
	case menu.ActionBrowse:
		return a, a.show(ScreenStorefront)
	case menu.ActionDashboard:
		return a, a.show(ScreenDashboard)
	case menu.ActionProducts:
		return a, a.show(ScreenProducts)
	case menu.ActionCategories:
		return a, a.show(ScreenCategories)
	case menu.ActionLogin:
		email := ""
		if a.snap.Profile != nil {
			email = a.snap.Profile.Email
		}
		return a, a.openForm(ScreenLogin, ScreenMenu, forms.NewLogin(email))
	case menu.ActionRegister:
		return a, a.openForm(ScreenRegister, ScreenMenu, forms.NewRegister())
	case menu.ActionLogout:
		a.client.Logout()
		a.cart.Clear()
		a.snap = a.client.Session().Read()
		a.setStatus("Logged out", false)
		a.screen = ScreenMenu
		return a, a.rebuildMenu()
	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

// show switches to a catalog screen and refreshes the catalog
func (a *App) show(screen Screen) tea.Cmd {
	a.screen = screen
	return a.loadCatalog()
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	if msg.err != nil {
		a.logger.Warn("login failed", "error", msg.err)
		// the submitted form is finished, so start a fresh one
		email := ""
		if a.snap.Profile != nil {
			email = a.snap.Profile.Email
		}
		f := forms.NewLogin(email)
		f.SetError(msg.err.Error())
		return a, a.openForm(ScreenLogin, ScreenMenu, f)
	}

	a.form = nil
	a.snap = a.client.Session().Read()
	res := msg.result
	greeting := "Logged in"
	if res.Name != "" {
		greeting = "Welcome, " + res.Name
	}
	if res.CookieOnly {
		greeting += " (cookie-only session, admin writes need a bearer token)"
	}
	a.setStatus(greeting, false)

	if res.IsAdmin {
		return a, a.show(ScreenDashboard)
	}
	return a, a.show(ScreenStorefront)
}

func (a *App) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	if msg.err != nil {
		a.logger.Warn("registration failed", "error", msg.err)
		f := forms.NewRegister()
		f.SetError(msg.err.Error())
		return a, a.openForm(ScreenRegister, ScreenMenu, f)
	}

	status := msg.message
	if status == "" {
		status = "Account created"
	}
	cmd := a.openForm(ScreenLogin, ScreenMenu, forms.NewLogin(msg.email))
	a.setStatus(status+". Please log in.", false)
	return a, cmd
}

func (a *App) handleImageSelected(msg filepicker.ImageSelectedMsg) (tea.Model, tea.Cmd) {
	if a.product == nil {
		a.screen = ScreenProducts
		return a, nil
	}
	pending := *a.product
	if msg.Path != "" {
		if err := a.recent.Add(msg.Path); err != nil {
			a.logger.Warn("could not save recent image", "path", msg.Path, "error", err)
		}
		pending.Input.ImagePath = msg.Path
	}

	a.picker = nil
	a.product = nil
	a.screen = ScreenProducts
	a.loading = true
	return a, a.saveProduct(pending)
}

func (a *App) handleConfirmed(msg forms.ConfirmedMsg) (tea.Model, tea.Cmd) {
	a.form = nil
	del := a.deletion
	a.deletion = nil
	if del == nil {
		a.screen = a.formBack
		return a, nil
	}
	a.screen = del.back
	if !msg.Yes {
		a.setStatus("Delete cancelled", false)
		return a, nil
	}
	a.loading = true
	return a, func() tea.Msg {
		err := del.run(context.Background())
		return deletedMsg{what: del.what, back: del.back, err: err}
	}
}

func (a *App) handleWriteDone(what, verb string, back Screen, err error) (tea.Model, tea.Cmd) {
	a.loading = false
	a.screen = back
	if err != nil {
		a.setError(err)
		return a, nil
	}
	a.setStatus(fmt.Sprintf("%s %s", verb, what), false)
	return a, a.loadCatalog()
}

// applyCatalog rebuilds the catalog views
func (a *App) applyCatalog(cat *client.Catalog) {
	a.catalog = cat
	a.lastUpdate = time.Now()

	w, h := a.frameWidth(), a.contentHeight()
	if a.storefront == nil {
		a.storefront = storefront.New(cat, a.cart, a.client.ImageURL, w, h)
	} else {
		a.storefront.SetCatalog(cat)
	}
	if a.dashboard == nil {
		a.dashboard = dashboard.New(cat, w, h)
	} else {
		a.dashboard.Update(cat)
	}
	a.products = admin.NewProductList(cat)
	a.categories = admin.NewCategoryList(cat)
	a.resize()
}

func (a *App) resize() {
	w, h := a.frameWidth(), a.contentHeight()
	if a.storefront != nil {
		a.storefront.SetSize(w, h)
	}
	if a.dashboard != nil {
		a.dashboard.SetSize(w, h)
	}
	// list title takes two lines
	if a.products != nil {
		a.products.SetHeight(h - 2)
	}
	if a.categories != nil {
		a.categories.SetHeight(h - 2)
	}
	if a.form != nil {
		a.form.SetWidth(w)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// setError shows err in the status line. No error ends the session.
func (a *App) setError(err error) {
	a.logger.Warn("request failed", "screen", int(a.screen), "error", err)
	a.setStatus(err.Error(), true)
}

// loadCatalog fetches products and categories
func (a *App) loadCatalog() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		cat, err := a.client.Catalog(context.Background())
		return catalogLoadedMsg{catalog: cat, err: err}
	}
}

func (a *App) login(creds client.Credentials) tea.Cmd {
	return func() tea.Msg {
		res, err := a.client.Login(context.Background(), creds)
		return loginDoneMsg{result: res, err: err}
	}
}

func (a *App) register(reg client.Registration) tea.Cmd {
	return func() tea.Msg {
		message, err := a.client.Register(context.Background(), reg)
		return registerDoneMsg{email: reg.Email, message: message, err: err}
	}
}

func (a *App) saveProduct(msg forms.ProductSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		var (
			p   *client.Product
			err error
		)
		if msg.ID == 0 {
			p, err = a.client.CreateProduct(context.Background(), msg.Input)
		} else {
			p, err = a.client.UpdateProduct(context.Background(), msg.ID, msg.Input)
		}
		what := "product " + msg.Input.Name
		if p != nil {
			what = "product " + p.Name
		}
		return savedMsg{what: what, back: ScreenProducts, err: err}
	}
}

func (a *App) saveCategory(msg forms.CategorySubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.ID == 0 {
			_, err = a.client.CreateCategory(context.Background(), msg.Input)
		} else {
			_, err = a.client.UpdateCategory(context.Background(), msg.ID, msg.Input)
		}
		return savedMsg{what: "category " + msg.Input.Name, back: ScreenCategories, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenLogin, ScreenRegister, ScreenProductForm, ScreenCategoryForm, ScreenConfirm:
		if a.form != nil {
			content = styles.ActivePanel.Render(a.form.View())
		}
	case ScreenImagePicker:
		if a.picker != nil {
			content = a.picker.View()
		}
	case ScreenStorefront:
		content = a.viewCatalog(func() string { return a.storefront.View() }, a.storefront != nil)
	case ScreenDashboard:
		content = a.viewCatalog(func() string { return a.dashboard.View() }, a.dashboard != nil)
	case ScreenProducts:
		content = a.viewCatalog(func() string { return a.products.View() }, a.products != nil)
	case ScreenCategories:
		content = a.viewCatalog(func() string { return a.categories.View() }, a.categories != nil)
	}

	return a.wrapWithFrame(content + "\n" + a.renderStatus())
}

func (a *App) viewMenu() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("PickBazar"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(a.client.BaseURL()))
	sb.WriteString("\n\n")
	if a.menu != nil {
		sb.WriteString(a.menu.View())
	}
	return sb.String()
}

func (a *App) viewCatalog(render func() string, ready bool) string {
	if !ready {
		if a.loading {
			return a.spinner.View() + " Loading catalog..."
		}
		return styles.Subtitle.Render("No catalog loaded. Press r to retry.")
	}
	return render()
}

func (a *App) renderStatus() string {
	switch {
	case a.loading:
		return a.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.Muted).Render("Working...")
	case a.status == "":
		return ""
	case a.statusErr:
		return styles.StatusCritical.Render(icons.Critical.String() + " " + a.status)
	default:
		return styles.StatusOK.Render(icons.CheckOK.String() + " " + a.status)
	}
}

// frameWidth is one column short of the terminal so the border never wraps
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentHeight is the space between header and footer
func (a *App) contentHeight() int {
	return max(10, a.height-frameOverhead)
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("PickBazar"))

	var parts []string
	if n := a.cart.Count(); n > 0 {
		parts = append(parts, contextStyle.Render(fmt.Sprintf("%s %d", icons.Cart.String(), n)))
	}
	role := ""
	if a.snap.LoggedIn {
		parts = append(parts, contextStyle.Render(icons.User.String()+" "+a.snap.Profile.DisplayName()))
		role = "customer"
		if a.snap.Profile != nil && a.snap.Profile.Role != "" {
			role = a.snap.Profile.Role
		}
	}
	parts = append(parts, widgets.RoleBadge(role))
	right := " " + strings.Join(parts, " · ") + " "

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // -4 for ╭─ and ─╮
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╮")
}

// shortcuts lists the keys for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin, ScreenRegister, ScreenProductForm, ScreenCategoryForm:
		return []string{"Tab Next", "Enter Submit", "Esc Cancel"}
	case ScreenConfirm:
		return []string{"←→ Choose", "Enter Confirm", "Esc Cancel"}
	case ScreenImagePicker:
		return []string{"↑↓ Navigate", "Enter Select", "Esc Back"}
	case ScreenStorefront:
		return []string{"←→ Category", "a Add", "x Remove", "r Refresh", "b Back", "q Quit"}
	case ScreenDashboard:
		return []string{"p Products", "c Categories", "r Refresh", "b Back", "q Quit"}
	case ScreenProducts, ScreenCategories:
		return []string{"n New", "e Edit", "d Delete", "Tab Switch", "b Back", "q Quit"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and catalog age
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var styled []string
	for _, s := range a.shortcuts() {
		key, label, found := strings.Cut(s, " ")
		if found {
			styled = append(styled, keyStyle.Render(key)+" "+labelStyle.Render(label))
		} else {
			styled = append(styled, s)
		}
	}
	left := " " + strings.Join(styled, "  ") + " "

	right := ""
	switch a.screen {
	case ScreenStorefront, ScreenDashboard, ScreenProducts, ScreenCategories:
		if !a.lastUpdate.IsZero() {
			right = statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
		}
	}

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // -4 for ╰─ and ─╯
	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the user quits
func Run(apiClient *client.Client, recent *recentimages.Recent, logger *slog.Logger) error {
	app := New(apiClient, recent, logger)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
