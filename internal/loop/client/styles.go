package client

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/tomz197/invaders/internal/score"
)

// styles are the lipgloss styles for text overlays, bound to one
// connection's renderer.
type styles struct {
	title  lipgloss.Style
	panel  lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	hud    lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

// newStyles builds styles for w. Game pixels are always truecolour, so the
// text overlays use the same profile.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)

	return styles{
		title:  r.NewStyle().Foreground(lipgloss.Color("#7CFC00")).Bold(true),
		panel:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7CFC00")).Padding(0, 2),
		accent: r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#FF4500")).Bold(true),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		header: r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("#3A3A3A")),
	}
}

// leaderboardTable renders persisted records as a ranked table.
func (s styles) leaderboardTable(records []score.Record, stale bool) string {
	if len(records) == 0 {
		msg := "No scores yet"
		if stale {
			msg = "Leaderboard unavailable"
		}
		return s.dim.Render(msg)
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Username, strconv.Itoa(r.Score)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("#", "PILOT", "SCORE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			if col == 2 {
				return s.cell.Align(lipgloss.Right)
			}
			return s.cell
		})

	out := t.Render()
	if stale {
		out = lipgloss.JoinVertical(lipgloss.Center, out, s.dim.Render("(may be out of date)"))
	}
	return out
}

// powerUpText formats the remaining rapid-fire time.
func powerUpText(seconds float64) string {
	return fmt.Sprintf("RAPID FIRE %4.1fs", seconds)
}
