// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Storefront and admin glyphs that degrade on plain terminals

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals usually ship with a patched font
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv("PICKBAZAR_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon is a glyph with a Nerd Font and a Unicode variant
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Catalog
	Product  = Icon{"󰏓", "◆"} // nf-md-package_variant
	Category = Icon{"󰓹", "▤"} // nf-md-tag_multiple
	Cart     = Icon{"󰄐", "⊕"} // nf-md-cart
	Stock    = Icon{"󰆼", "▦"} // nf-md-database
	Money    = Icon{"󰄔", "$"} // nf-md-cash
	Image    = Icon{"󰋩", "▣"} // nf-md-image

	// Session
	User   = Icon{"󰀄", "●"} // nf-md-account
	Admin  = Icon{"󰒃", "⛊"} // nf-md-shield_check
	Login  = Icon{"󰍂", "→"} // nf-md-login
	Logout = Icon{"󰍃", "←"} // nf-md-logout

	// Status
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Add     = Icon{"󰐕", "+"} // nf-md-plus
	Edit    = Icon{"󰏫", "✎"} // nf-md-pencil
	Delete  = Icon{"󰆴", "×"} // nf-md-delete
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	App = Icon{"󰉚", "◈"} // nf-md-basket
)
