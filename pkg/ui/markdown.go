// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// defaultMarkdownWidth is used when stdout is not a terminal
const defaultMarkdownWidth = 100

// TerminalWidth returns the width of stdout, or the default when stdout is
// not a terminal
func TerminalWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultMarkdownWidth
}

// RenderMarkdown renders markdown through glamour at the given wrap width
func RenderMarkdown(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, " \n") + "\n", nil
}
