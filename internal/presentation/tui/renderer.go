package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsInteractive reports whether f is a terminal that accepts ANSI colors.
// NO_COLOR and CLICOLOR_FORCE are honored through termenv.
func IsInteractive(f *os.File) bool {
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
