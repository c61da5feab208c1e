// Package styles holds the terminal palette and the lipgloss styles of the
// CLI output.
package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/gerunddev/granite/internal/ast"
)

// Monokai Pro color palette
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings, open tasks
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success, done tasks
	Cyan    = "#78DCE8" // Tokens
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text
	Border  = "#5B595C" // Borders
)

var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Magenta)).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground)).
			Padding(0, 1)

	// composite nodes and tokens of the parse tree
	KindStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Yellow))
	TokenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))

	CheckedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	UncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
)

// Kind renders a node kind, tokens dimmer than composites.
func Kind(k ast.Kind) string {
	if k.IsToken() {
		return TokenStyle.Render(k.String())
	}
	return KindStyle.Render(k.String())
}

// Checkbox renders a task state.
func Checkbox(checked bool) string {
	if checked {
		return CheckedStyle.Render("[x]")
	}
	return UncheckedStyle.Render("[ ]")
}

// Truncate shortens s to width terminal cells. Line breaks become spaces.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Modified renders a dim header naming a note and how long ago it changed.
func Modified(name string, mtime time.Time) string {
	return DimStyle.Render(name + ", modified " + humanize.Time(mtime))
}

// Table builds a bordered table with the header row styled.
func Table(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(Border))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}
