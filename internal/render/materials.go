package render

import (
	"fmt"
	"strings"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// Materials renders materials.md. A list is grouped by type tag in
// first-seen order; items without a usable tag share the "other" bucket with
// items explicitly tagged as other.
func (r *Renderer) Materials(doc script.Document) artifact.Artifact {
	l := r.labels
	lines := []string{
		fmt.Sprintf("# %s - %s", l.Materials.Title, r.Title(doc)),
		"",
		r.navigation(),
		"",
	}
	materials := doc.Materials()
	switch {
	case materials.Kind() == script.KindSequence && materials.Len() > 0:
		lines = append(lines, r.materialGroups(materials)...)
	case materials.Kind() == script.KindMapping:
		lines = append(lines, script.Dump(materials))
	case materials.Present():
		lines = append(lines, script.Stringify(materials))
	default:
		lines = append(lines, l.Placeholders.NoMaterials)
	}
	lines = append(lines, "")
	return artifact.New(artifact.MaterialsRef, lines)
}

type materialGroup struct {
	tag   string
	items []script.Value
}

func (r *Renderer) materialGroups(materials script.Value) []string {
	l := r.labels
	var groups []*materialGroup
	byTag := map[string]*materialGroup{}
	for _, m := range materials.Items() {
		tag := r.materialTag(m)
		g, ok := byTag[tag]
		if !ok {
			g = &materialGroup{tag: tag}
			byTag[tag] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, m)
	}
	var lines []string
	for _, g := range groups {
		lines = append(lines, "## "+l.MaterialType(g.tag), "")
		for _, m := range g.items {
			if m.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(m))
				continue
			}
			lines = append(lines,
				"### "+m.Get("id").TextOr(l.Placeholders.Unknown),
				script.Stringify(m.Get("content")),
			)
			if owner := m.Get("associatedCharacterId"); owner.Present() {
				lines = append(lines, fmt.Sprintf("> %s: %s", l.Materials.AssociatedCharacter, script.Stringify(owner)))
			}
			lines = append(lines, "")
		}
	}
	return lines
}

// materialTag returns the type tag of a material. Only text tags count;
// numbers, lists and records fall back to the other bucket.
func (r *Renderer) materialTag(m script.Value) string {
	typ := m.Get("type")
	if m.Kind() != script.KindMapping || !typ.IsText() {
		return r.labels.Materials.OtherType
	}
	if tag := strings.TrimSpace(typ.Text()); tag != "" {
		return tag
	}
	return r.labels.Materials.OtherType
}
