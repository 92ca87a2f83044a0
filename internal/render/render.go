// Package render turns a script document into the exported markdown
// artifacts. Rendering is pure: it reads the document and the labels and
// returns file contents without touching the filesystem. Every missing or
// oddly shaped field has a fallback or is omitted, so rendering cannot fail.
package render

import (
	"fmt"
	"strings"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/config"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// Renderer builds artifacts using a fixed label set.
type Renderer struct {
	labels config.Labels
}

// New returns a renderer for the provided labels.
func New(labels config.Labels) *Renderer {
	return &Renderer{labels: labels}
}

// Seat is a player handbook with its resolved display name and artifact
// reference.
type Seat struct {
	Position int
	Name     string
	Ref      artifact.Ref
	Handbook script.Value
}

// Seats resolves the player roster in input order. A missing or blank
// character name falls back to the positional placeholder.
func (r *Renderer) Seats(doc script.Document) []Seat {
	handbooks := doc.PlayerHandbooks()
	seats := make([]Seat, 0, len(handbooks))
	for i, ph := range handbooks {
		position := i + 1
		name := strings.TrimSpace(ph.Get("characterName").TextOr(""))
		if name == "" {
			name = fmt.Sprintf(r.labels.Placeholders.PlayerName, position)
		}
		seats = append(seats, Seat{
			Position: position,
			Name:     name,
			Ref:      artifact.PlayerRef(position, name),
			Handbook: ph,
		})
	}
	return seats
}

// Render produces every artifact: index, DM handbook, one handbook per
// player in input order, materials and branch structure.
func (r *Renderer) Render(doc script.Document) []artifact.Artifact {
	seats := r.Seats(doc)
	arts := make([]artifact.Artifact, 0, len(seats)+4)
	arts = append(arts, r.Index(doc, seats), r.DMHandbook(doc, seats))
	for i := range seats {
		arts = append(arts, r.Player(seats, i))
	}
	arts = append(arts, r.Materials(doc), r.BranchStructure(doc))
	return arts
}

// Title resolves the script title.
func (r *Renderer) Title(doc script.Document) string {
	if title := doc.Title(); title.Present() {
		return script.Stringify(title)
	}
	return r.labels.Placeholders.Untitled
}

func (r *Renderer) round(label string) string {
	return fmt.Sprintf(r.labels.DM.Round, label)
}

// roundLabel picks the declared round number, trying both field spellings.
func (r *Renderer) roundLabel(v script.Value, fallback string) string {
	return v.First("round", "roundIndex").TextOr(fallback)
}

func (r *Renderer) navigation() string {
	return link(r.labels.Links.Back, artifact.IndexRef) + " | " + link(r.labels.Links.DMHandbook, artifact.DMHandbookRef)
}

func (r *Renderer) playerLink(seat Seat) string {
	return "- " + link(r.labels.Links.PlayerIcon+" "+seat.Name, seat.Ref)
}

func link(label string, ref artifact.Ref) string {
	return fmt.Sprintf("[%s](%s)", label, ref.Link())
}

// closeBlock ends a non-empty block with a blank line unless it already has
// one.
func closeBlock(lines []string) []string {
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		return lines
	}
	return append(lines, "")
}

// bullets renders each item as a "- " line, prefixed by marker when set.
func bullets(items []script.Value, marker string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if marker != "" {
			out = append(out, "- "+marker+" "+script.Stringify(item))
			continue
		}
		out = append(out, "- "+script.Stringify(item))
	}
	return out
}
