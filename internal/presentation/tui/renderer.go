package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/aretw0/dianti/pkg/runner"
)

// NewRenderer returns a renderer turning the final markdown report into
// ANSI text. It falls back to the plain text report when glamour cannot be
// initialized.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil
	}
	return r.Render
}
