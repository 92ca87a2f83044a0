package render

import (
	"fmt"
	"strings"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// Index renders README.md: title, generation metadata, the configuration
// table and links to every other artifact.
func (r *Renderer) Index(doc script.Document, seats []Seat) artifact.Artifact {
	l := r.labels
	na := l.Placeholders.NotAvailable
	lines := []string{
		"# " + r.Title(doc),
		"",
		fmt.Sprintf("> %s: %s  ", l.Index.GeneratedAt, doc.CreatedAt().TextOr(na)),
	}
	release := fmt.Sprintf("> %s: %s | %s: %s", l.Index.Version, doc.Version().TextOr(na), l.Index.Status, doc.Status().TextOr(na))
	if model := modelLine(doc); model != "" {
		lines = append(lines, release+"  ", fmt.Sprintf("> %s: %s", l.Index.Model, model))
	} else {
		lines = append(lines, release)
	}

	cfg := doc.Config()
	cell := func(key string) string {
		return tableCell(cfg.Get(key).TextOr(l.Placeholders.Unknown))
	}
	lines = append(lines,
		"",
		"## "+l.Index.Config,
		"",
		fmt.Sprintf("| %s | %s |", l.Index.ParamColumn, l.Index.ValueColumn),
		"|------|-----|",
		fmt.Sprintf("| %s | %s |", l.Index.PlayerCount, cell("playerCount")),
		fmt.Sprintf("| %s | %s%s |", l.Index.Duration, cell("durationHours"), l.Index.DurationUnit),
		fmt.Sprintf("| %s | %s |", l.Index.GameType, cell("gameType")),
		fmt.Sprintf("| %s | %s%% / %s%% |", l.Index.Ratio, cell("deductionRatio"), cell("restorationRatio")),
		fmt.Sprintf("| %s | %s |", l.Index.Era, cell("era")),
		fmt.Sprintf("| %s | %s |", l.Index.Location, cell("location")),
		fmt.Sprintf("| %s | %s |", l.Index.Theme, cell("theme")),
		"",
		"## "+l.Index.Files,
		"",
		"- "+link(l.Links.DMHandbook, artifact.DMHandbookRef),
	)
	for _, seat := range seats {
		lines = append(lines, r.playerLink(seat))
	}
	lines = append(lines,
		"- "+link(l.Links.Materials, artifact.MaterialsRef),
		"- "+link(l.Links.Branch, artifact.BranchRef),
		"",
	)
	return artifact.New(artifact.IndexRef, lines)
}

func modelLine(doc script.Document) string {
	var parts []string
	for _, v := range []script.Value{doc.AIProvider(), doc.AIModel()} {
		if v.Present() {
			parts = append(parts, script.Stringify(v))
		}
	}
	return strings.Join(parts, " / ")
}

// tableCell keeps a value on one table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
