package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer converts markdown produced by the assistant into styled
// terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a markdown renderer backed by glamour. When stdout
// is not a terminal (pipes, CI) it falls back to passing text through
// unchanged so transcripts stay grep-able.
func NewRenderer() Renderer {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
