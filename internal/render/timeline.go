package render

import "github.com/gdgeek/murder-mystery-generator/internal/script"

// Timeline flattens the three timeline shapes into display lines:
//   - a sequence of {time, event} entries becomes "**time** event" lines
//   - a sequence of plain entries is used verbatim
//   - a mapping of section -> entries becomes a "### section" heading
//     followed by "- " bullets for each entry
//
// Missing time or event fields render as empty text.
func Timeline(v script.Value) []string {
	var lines []string
	switch v.Kind() {
	case script.KindSequence:
		for _, entry := range v.Items() {
			if entry.Kind() == script.KindMapping {
				lines = append(lines, timedEvent(entry))
				continue
			}
			lines = append(lines, script.Stringify(entry))
		}
	case script.KindMapping:
		for _, section := range v.Entries() {
			lines = append(lines, "### "+section.Key)
			if section.Value.Kind() != script.KindSequence {
				lines = append(lines, script.Stringify(section.Value))
				continue
			}
			for _, entry := range section.Value.Items() {
				if entry.Kind() == script.KindMapping {
					lines = append(lines, "- "+timedEvent(entry))
					continue
				}
				lines = append(lines, "- "+script.Stringify(entry))
			}
		}
	case script.KindScalar:
		lines = append(lines, script.Stringify(v))
	}
	return lines
}

func timedEvent(entry script.Value) string {
	return "**" + script.Stringify(entry.Get("time")) + "** " + script.Stringify(entry.Get("event"))
}
