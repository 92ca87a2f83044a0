package render

import (
	"fmt"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// BranchStructure renders branch-structure.md with optional node, edge and
// ending sections.
func (r *Renderer) BranchStructure(doc script.Document) artifact.Artifact {
	l := r.labels
	unknown := l.Placeholders.Unknown
	branch := doc.BranchStructure()
	lines := []string{
		fmt.Sprintf("# %s - %s", l.Branch.Title, r.Title(doc)),
		"",
		r.navigation(),
		"",
	}
	if nodes := branch.Get("nodes"); nodes.Present() {
		lines = append(lines, "## "+l.Branch.Nodes, "")
		for _, n := range nodes.Items() {
			if n.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(n))
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s** [%s]: %s",
				n.Get("id").TextOr(unknown),
				script.Stringify(n.Get("type")),
				recordBody(n, "content", "description"),
			))
		}
		lines = append(lines, "")
	}
	if edges := branch.Get("edges"); edges.Present() {
		lines = append(lines, "## "+l.Branch.Edges, "")
		for _, e := range edges.Items() {
			if e.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(e))
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s → %s (%s)",
				e.First("from", "fromNodeId").TextOr(unknown),
				e.First("to", "toNodeId", "toEndingId").TextOr(unknown),
				script.Stringify(e.First("condition", "optionId")),
			))
		}
		lines = append(lines, "")
	}
	if endings := branch.Get("endings"); endings.Present() {
		lines = append(lines, "## "+l.Branch.Endings, "")
		for _, e := range endings.Items() {
			if e.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(e))
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s - %s",
				e.Get("id").TextOr(unknown),
				script.Stringify(e.Get("name")),
				script.Stringify(e.First("content", "narrative")),
			))
		}
		lines = append(lines, "")
	}
	return artifact.New(artifact.BranchRef, lines)
}
