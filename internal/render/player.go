package render

import (
	"fmt"
	"strconv"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// Player renders the handbook for seats[i]. The closing directory links to
// every other player, never to the player itself.
func (r *Renderer) Player(seats []Seat, i int) artifact.Artifact {
	l := r.labels.Player
	seat := seats[i]
	ph := seat.Handbook
	lines := []string{
		fmt.Sprintf("# %s - %s", l.Title, seat.Name),
		"",
		r.navigation(),
		"",
		"## " + l.Basics,
		"",
		fmt.Sprintf("- **%s**: %s", l.CharacterID, script.Stringify(ph.Get("characterId"))),
		fmt.Sprintf("- **%s**: %s", l.PrimaryGoal, script.Stringify(ph.Get("primaryGoal"))),
		"",
	}
	if v := ph.Get("secondaryGoals"); v.Present() {
		lines = append(lines, "## "+l.SecondaryGoals, "")
		lines = append(lines, bullets(v.Items(), "")...)
		lines = append(lines, "")
	}
	if v := ph.Get("backgroundStory"); v.Present() {
		lines = append(lines, "## "+l.Background, "", script.Stringify(v), "")
	}
	if v := ph.Get("relationships"); v.Present() {
		lines = append(lines, "## "+l.Relationships, "")
		lines = append(lines, r.relationships(v)...)
		lines = append(lines, "")
	}
	if v := ph.Get("secrets"); v.Present() {
		lines = append(lines, "## "+l.Secrets, "")
		lines = append(lines, bullets(v.Items(), l.SecretMarker)...)
		lines = append(lines, "")
	}
	if v := ph.Get("knownClues"); v.Present() {
		lines = append(lines, "## "+l.KnownClues, "")
		lines = append(lines, bullets(v.Items(), l.ClueMarker)...)
		lines = append(lines, "")
	}
	if v := ph.Get("roundActions"); v.Present() {
		lines = append(lines, "## "+l.RoundActions, "")
		lines = append(lines, r.roundActions(v)...)
	}
	lines = append(lines, "---", "", "### "+l.OtherPlayers, "")
	for j, other := range seats {
		if j == i {
			continue
		}
		lines = append(lines, r.playerLink(other))
	}
	lines = append(lines, "")
	return artifact.New(seat.Ref, lines)
}

func (r *Renderer) relationships(v script.Value) []string {
	unknown := r.labels.Placeholders.Unknown
	var lines []string
	for _, rel := range v.Items() {
		if rel.Kind() != script.KindMapping {
			lines = append(lines, "- "+script.Stringify(rel))
			continue
		}
		target := rel.First("target", "characterName", "targetCharacterName", "targetCharacterId").TextOr(unknown)
		relation := script.Stringify(rel.First("relation", "relationship"))
		lines = append(lines, fmt.Sprintf("- **%s**: %s", target, relation))
	}
	return lines
}

// roundActions uses the declared round number when present and the 1-based
// position otherwise.
func (r *Renderer) roundActions(v script.Value) []string {
	var lines []string
	for j, a := range v.Items() {
		position := strconv.Itoa(j + 1)
		if a.Kind() != script.KindMapping {
			lines = append(lines, "### "+r.round(position), script.Stringify(a), "")
			continue
		}
		lines = append(lines,
			"### "+r.round(r.roundLabel(a, position)),
			recordBody(a, "action", "guide", "instructions"),
			"",
		)
	}
	return lines
}
