// ABOUTME: Image picker for product uploads
// ABOUTME: Offers recent images, a path input, and continuing without an image

package filepicker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
)

// ImageSelectedMsg is sent when the user picks an image. An empty Path means
// the product is saved without a new image.
type ImageSelectedMsg struct {
	Path string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// FilePicker selects an image file
type FilePicker struct {
	recent    []string
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// New creates a picker listing recent image paths
func New(recent []string) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/apples.jpg"
	ti.CharLimit = 256
	ti.Width = 60

	return &FilePicker{
		recent:    recent,
		textInput: ti,
	}
}

func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""
		if fp.state == stateInput {
			return fp.updateInput(msg)
		}
		return fp.updateList(msg)
	}
	return fp, nil
}

// itemCount is recent images plus "Enter path..." and "No image"
func (fp *FilePicker) itemCount() int {
	return len(fp.recent) + 2
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < fp.itemCount()-1 {
			fp.cursor++
		}
	case "enter":
		return fp.selectListItem()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		fp.textInput.Blur()
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.choose(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	switch n := len(fp.recent); {
	case fp.cursor < n:
		return fp.choose(fp.recent[fp.cursor])
	case fp.cursor == n:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	default:
		return fp, func() tea.Msg { return ImageSelectedMsg{} }
	}
}

// choose checks that path is a readable image before selecting it
func (fp *FilePicker) choose(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	if !client.IsImagePath(expanded) {
		fp.err = "Not an image: use a jpg, png, gif or webp file"
		return fp, nil
	}

	info, err := os.Stat(expanded)
	switch {
	case os.IsNotExist(err):
		fp.err = "File not found: " + path
		return fp, nil
	case os.IsPermission(err):
		fp.err = "Cannot read file: permission denied"
		return fp, nil
	case err != nil:
		fp.err = "Error reading file: " + err.Error()
		return fp, nil
	case info.IsDir():
		fp.err = path + " is a directory"
		return fp, nil
	}

	return fp, func() tea.Msg { return ImageSelectedMsg{Path: expanded} }
}

// expandPath expands a leading ~ and makes the path absolute
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// SetError shows an error under the list
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

func (fp *FilePicker) View() string {
	if fp.state == stateInput {
		return fp.viewInput()
	}
	return fp.viewList()
}

func (fp *FilePicker) item(idx int, label string) string {
	if idx == fp.cursor {
		return "> " + selectedStyle.Render(label) + "\n"
	}
	return "  " + normalStyle.Render(label) + "\n"
}

func (fp *FilePicker) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Product image"))
	b.WriteString("\n")

	if len(fp.recent) > 0 {
		b.WriteString(styles.Subtitle.Render("Recent images:"))
		b.WriteString("\n")
		for i, path := range fp.recent {
			display := path
			if fp.width > 20 && len(display) > fp.width-10 {
				display = "..." + display[len(display)-(fp.width-13):]
			}
			b.WriteString(fp.item(i, display))
		}
		dividerWidth := min(40, fp.width-4)
		if dividerWidth < 1 {
			dividerWidth = 40
		}
		b.WriteString(dividerStyle.Render(strings.Repeat("─", dividerWidth)))
		b.WriteString("\n")
	}

	b.WriteString(fp.item(len(fp.recent), "Enter path..."))
	b.WriteString(fp.item(len(fp.recent)+1, "No new image"))

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}
	return b.String()
}

func (fp *FilePicker) viewInput() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Enter image path"))
	b.WriteString("\n")
	b.WriteString(fp.textInput.View())

	if fp.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}
	return b.String()
}
