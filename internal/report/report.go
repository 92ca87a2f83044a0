// Package report formats the post-export summary shown on the terminal.
package report

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Size formats a byte count with thousands separators.
func Size(n int64) string {
	return humanize.Comma(n) + " bytes"
}

// StateLabel describes what the export did to a file.
func StateLabel(r artifact.Result) string {
	if r.Changed() {
		return "written"
	}
	return "unchanged"
}

// Summary renders the artifact count and one row per artifact, sorted by
// file name.
func Summary(dir string, results []artifact.Result) string {
	sorted := append([]artifact.Result{}, results...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FileName < sorted[j].FileName
	})
	var total int64
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		total += r.Bytes
		rows = append(rows, []string{r.FileName, Size(r.Bytes), StateLabel(r)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("FILE", "SIZE", "STATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			if col == 1 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	header := headerStyle.Render(fmt.Sprintf("✅ Exported %d artifacts to %s/", len(sorted), dir))
	footer := mutedStyle.Render(fmt.Sprintf("total %s", Size(total)))
	return lipgloss.JoinVertical(lipgloss.Left, header, t.Render(), footer)
}
