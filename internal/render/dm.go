package render

import (
	"fmt"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

// characterIdentity lists the character fields already shown in the heading.
var characterIdentity = map[string]bool{
	"name":          true,
	"role":          true,
	"id":            true,
	"characterName": true,
	"characterId":   true,
}

// DMHandbook renders dm-handbook.md. Each section is emitted only when the
// handbook declares it with content.
func (r *Renderer) DMHandbook(doc script.Document, seats []Seat) artifact.Artifact {
	l := r.labels
	dm := doc.DMHandbook()
	lines := []string{
		fmt.Sprintf("# %s - %s", l.DM.Title, r.Title(doc)),
		"",
		link(l.Links.Back, artifact.IndexRef),
		"",
	}
	if v := dm.Get("overview"); v.Present() {
		lines = append(lines, "## "+l.DM.Overview, "")
		lines = append(lines, r.overview(v)...)
	}
	if v := dm.Get("characters"); v.Present() {
		lines = append(lines, "## "+l.DM.Characters, "")
		lines = closeBlock(append(lines, r.characters(v)...))
	}
	if v := dm.Get("timeline"); v.Present() {
		lines = append(lines, "## "+l.DM.Timeline, "")
		lines = append(lines, Timeline(v)...)
		lines = append(lines, "")
	}
	if v := dm.Get("clueDistribution"); v.Present() {
		if body := r.clueDistribution(v); len(body) > 0 {
			lines = append(lines, "## "+l.DM.Clues, "")
			lines = closeBlock(append(lines, body...))
		}
	}
	if v := dm.Get("roundGuides"); v.Present() {
		lines = append(lines, "## "+l.DM.RoundGuides, "")
		lines = closeBlock(append(lines, r.roundGuides(v)...))
	}
	if v := dm.Get("truthReveal"); v.Present() {
		lines = append(lines, "## "+l.DM.Truth, "", script.Stringify(v), "")
	}
	if v := dm.Get("endings"); v.Present() {
		lines = append(lines, "## "+l.DM.Endings, "")
		lines = closeBlock(append(lines, r.endings(v)...))
	}
	if v := dm.Get("branchDecisionPoints"); v.Present() {
		lines = append(lines, "## "+l.DM.DecisionPoints, "")
		lines = closeBlock(append(lines, r.decisionPoints(v)...))
	}
	if v := dm.Get("judgingRules"); v.Present() {
		lines = append(lines, "## "+l.DM.JudgingRules, "")
		lines = closeBlock(append(lines, keyValueParagraphs(v)...))
	}
	lines = append(lines, "---", "", "## "+l.DM.Players, "")
	for _, seat := range seats {
		lines = append(lines, r.playerLink(seat))
	}
	lines = append(lines, "")
	return artifact.New(artifact.DMHandbookRef, lines)
}

// overview adapts to the overview's shape: a nested mapping gets a
// subsection per key, a flat mapping gets "**key**: value" paragraphs, a list
// gets bullets and a scalar is printed verbatim.
func (r *Renderer) overview(v script.Value) []string {
	var lines []string
	switch v.Kind() {
	case script.KindMapping:
		for _, e := range v.Entries() {
			switch e.Value.Kind() {
			case script.KindMapping:
				lines = append(lines, "### "+e.Key)
				for _, inner := range e.Value.Entries() {
					lines = append(lines, fmt.Sprintf("- **%s**: %s", inner.Key, script.Stringify(inner.Value)))
				}
				lines = append(lines, "")
			case script.KindSequence:
				lines = append(lines, "### "+e.Key)
				lines = append(lines, bullets(e.Value.Items(), "")...)
				lines = append(lines, "")
			default:
				lines = append(lines, fmt.Sprintf("**%s**: %s", e.Key, script.Stringify(e.Value)), "")
			}
		}
	case script.KindSequence:
		lines = append(lines, bullets(v.Items(), "")...)
		lines = append(lines, "")
	default:
		lines = append(lines, script.Stringify(v), "")
	}
	return lines
}

func (r *Renderer) characters(v script.Value) []string {
	unknown := r.labels.Placeholders.Unknown
	var lines []string
	for _, c := range v.Items() {
		if c.Kind() != script.KindMapping {
			lines = append(lines, "- "+script.Stringify(c))
			continue
		}
		name := c.First("name", "characterName").TextOr(unknown)
		role := c.Get("role").TextOr(unknown)
		lines = closeBlock(lines)
		lines = append(lines, fmt.Sprintf("### %s (%s)", name, role))
		for _, e := range c.Entries() {
			if characterIdentity[e.Key] {
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s", e.Key, script.Stringify(e.Value)))
		}
		lines = append(lines, "")
	}
	return lines
}

// clueGroup collects the clues handed out in one round.
type clueGroup struct {
	round string
	clues []script.Value
}

// clueDistribution renders round-keyed clue tables. Entries may either carry
// a "clues" list for their round or be a single clue with its own round
// field; both are grouped under one heading per round in first-seen order.
// A mapping is not round-keyed and is dumped as-is.
func (r *Renderer) clueDistribution(v script.Value) []string {
	if v.Kind() == script.KindMapping {
		return []string{script.Dump(v), ""}
	}
	if v.Kind() != script.KindSequence {
		return []string{script.Stringify(v), ""}
	}
	unknown := r.labels.Placeholders.Unknown
	var groups []*clueGroup
	byRound := map[string]*clueGroup{}
	groupFor := func(round string) *clueGroup {
		if g, ok := byRound[round]; ok {
			return g
		}
		g := &clueGroup{round: round}
		byRound[round] = g
		groups = append(groups, g)
		return g
	}
	for _, entry := range v.Items() {
		if entry.Kind() != script.KindMapping {
			g := groupFor(unknown)
			g.clues = append(g.clues, entry)
			continue
		}
		g := groupFor(r.roundLabel(entry, unknown))
		if entry.Has("clues") || !entry.Has("clueId") {
			g.clues = append(g.clues, entry.Get("clues").Items()...)
			continue
		}
		g.clues = append(g.clues, entry)
	}
	var lines []string
	for _, g := range groups {
		if len(g.clues) == 0 {
			continue
		}
		lines = append(lines, "### "+r.round(g.round))
		for _, clue := range g.clues {
			if clue.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(clue))
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s** [%s]: %s",
				clue.Get("clueId").TextOr(unknown),
				script.Stringify(clue.Get("type")),
				script.Stringify(clue.First("content", "description")),
			))
		}
		lines = append(lines, "")
	}
	return lines
}

func (r *Renderer) roundGuides(v script.Value) []string {
	unknown := r.labels.Placeholders.Unknown
	var lines []string
	for _, g := range v.Items() {
		if g.Kind() != script.KindMapping {
			lines = append(lines, script.Stringify(g))
			continue
		}
		lines = closeBlock(lines)
		lines = append(lines, "### "+r.round(r.roundLabel(g, unknown)))
		lines = append(lines, recordBody(g, "guide", "focus"), "")
	}
	return lines
}

func (r *Renderer) endings(v script.Value) []string {
	unknown := r.labels.Placeholders.Unknown
	var lines []string
	for _, e := range v.Items() {
		if e.Kind() != script.KindMapping {
			lines = append(lines, "- "+script.Stringify(e))
			continue
		}
		lines = closeBlock(lines)
		lines = append(lines,
			"### "+e.Get("name").TextOr(unknown),
			fmt.Sprintf("> %s: %s", r.labels.DM.Condition, script.Stringify(e.First("condition", "triggerConditions"))),
			"",
			script.Stringify(e.First("content", "narrative")),
			"",
		)
	}
	return lines
}

// decisionPoints lists the vote questions that steer the branch graph.
func (r *Renderer) decisionPoints(v script.Value) []string {
	unknown := r.labels.Placeholders.Unknown
	var lines []string
	for _, p := range v.Items() {
		if p.Kind() != script.KindMapping {
			lines = append(lines, "- "+script.Stringify(p))
			continue
		}
		lines = closeBlock(lines)
		heading := "### " + p.First("nodeId", "id").TextOr(unknown)
		if round := p.First("round", "roundIndex"); round.Present() {
			heading += " (" + r.round(script.Stringify(round)) + ")"
		}
		lines = append(lines, heading)
		if q := p.Get("voteQuestion"); q.Present() {
			lines = append(lines, script.Stringify(q), "")
		}
		for _, opt := range p.Get("options").Items() {
			if opt.Kind() != script.KindMapping {
				lines = append(lines, "- "+script.Stringify(opt))
				continue
			}
			line := fmt.Sprintf("- **%s**: %s", opt.First("optionId", "id").TextOr(unknown), script.Stringify(opt.Get("text")))
			if outcome := opt.Get("outcome"); outcome.Present() {
				line += " → " + script.Stringify(outcome)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}
	return lines
}

// keyValueParagraphs renders a mapping as "**key**: value" paragraphs and
// anything else verbatim.
func keyValueParagraphs(v script.Value) []string {
	if v.Kind() != script.KindMapping {
		return []string{script.Stringify(v), ""}
	}
	var lines []string
	for _, e := range v.Entries() {
		lines = append(lines, fmt.Sprintf("**%s**: %s", e.Key, script.Stringify(e.Value)), "")
	}
	return lines
}

// recordBody returns the first declared body field, or the whole record as
// a structured dump when none is declared.
func recordBody(record script.Value, keys ...string) string {
	if body := record.First(keys...); !body.IsNull() {
		return script.Stringify(body)
	}
	return script.Dump(record)
}
