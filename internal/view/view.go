// Package view renders suggestions for humans.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agarcher/wtp-complete/internal/suggest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("11"))
)

// iconColumn is wide enough for one emoji or the git marker
const iconColumn = 3

// Render writes suggestions as an aligned table under a title
func Render(w io.Writer, title string, suggestions []suggest.Suggestion) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(suggestions))))
	b.WriteString("\n")

	if len(suggestions) == 0 {
		b.WriteString(emptyStyle.Render("  no suggestions"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	width := 0
	for _, s := range suggestions {
		if n := lipgloss.Width(s.Name); n > width {
			width = n
		}
	}

	for _, s := range suggestions {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			"  ",
			lipgloss.NewStyle().Width(iconColumn).Render(Icon(s.Icon)),
			nameStyle.Width(width+2).Render(s.Name),
			descStyle.Render(s.Description),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderPlain writes one "name<TAB>description" line per suggestion
func RenderPlain(w io.Writer, suggestions []suggest.Suggestion) error {
	for _, s := range suggestions {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return err
		}
	}
	return nil
}

// Icon maps icon references to something a terminal can print. Emoji pass
// through; fig-style "fig://icon?type=git" references become a short marker.
func Icon(icon string) string {
	switch {
	case icon == "":
		return ""
	case strings.HasPrefix(icon, "fig://icon?type="):
		return "⎇"
	default:
		return icon
	}
}
