package textsafe

import (
	"regexp"
	"strings"
)

// Segment is one piece of highlighted text. Text is always HTML-escaped.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// HighlightText splits text around case-insensitive occurrences of query
// and sanitizes every piece. Matching runs on the raw text, so a match never
// lands inside an entity produced by sanitizing. An empty query yields the
// sanitized text as a single plain segment.
func HighlightText(text string, query string) []Segment {
	if query == "" {
		return []Segment{{Text: SanitizeHTML(text)}}
	}

	pattern, err := regexp.Compile("(?i)" + EscapeRegex(query))
	if err != nil {
		// unreachable for an escaped literal
		return []Segment{{Text: SanitizeHTML(text)}}
	}

	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: SanitizeHTML(text)}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, match := range matches {
		if match[0] > last {
			segments = append(segments, Segment{Text: SanitizeHTML(text[last:match[0]])})
		}
		segments = append(segments, Segment{Text: SanitizeHTML(text[match[0]:match[1]]), Highlighted: true})
		last = match[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: SanitizeHTML(text[last:])})
	}

	return segments
}

// RenderHighlight joins segments into markup, wrapping highlighted ones in
// <mark class="highlight">.
func RenderHighlight(segments []Segment) string {
	var builder strings.Builder
	for _, segment := range segments {
		if segment.Highlighted {
			builder.WriteString(`<mark class="highlight">`)
			builder.WriteString(segment.Text)
			builder.WriteString("</mark>")
			continue
		}
		builder.WriteString(segment.Text)
	}

	return builder.String()
}
