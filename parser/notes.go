package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractNotes removes speaker-note comments of the form
// <!-- notes: ... --> from a slide's source and returns the cleaned body
// alongside the collected note text. Other HTML comments are left in place,
// and comments inside fenced code blocks are content.
func ExtractNotes(src string) (body, notes string) {
	lines := strings.Split(src, "\n")
	var out []string
	var collected []string
	var fence fenceState

	i := 0
	for i < len(lines) {
		line := lines[i]
		if fence.inFence() {
			fence.observe(line)
			out = append(out, line)
			i++
			continue
		}
		start := strings.Index(line, "<!--")
		if start < 0 {
			fence.observe(line)
			out = append(out, line)
			i++
			continue
		}

		// Gather the comment, which may span lines
		var buf strings.Builder
		buf.WriteString(line[start:])
		j := i
		for !strings.Contains(buf.String(), "-->") && j+1 < len(lines) {
			j++
			buf.WriteString("\n")
			buf.WriteString(lines[j])
		}
		raw := buf.String()
		end := strings.Index(raw, "-->")
		if end < 0 {
			// Unterminated comment; treat as plain content
			fence.observe(line)
			out = append(out, line)
			i++
			continue
		}

		note, ok := notesText(raw[:end+3])
		if !ok {
			// Not a notes comment: keep the lines verbatim
			for k := i; k <= j; k++ {
				out = append(out, lines[k])
			}
			i = j + 1
			continue
		}
		if note != "" {
			collected = append(collected, note)
		}

		// The closer sits on the last gathered line; stitch the text around
		// the removed comment back together and drop the line if nothing
		// remains
		merged := line[:start] + raw[end+3:]
		if strings.TrimSpace(merged) != "" {
			out = append(out, merged)
		}
		i = j + 1
	}
	return strings.Join(out, "\n"), strings.Join(collected, "\n")
}

// notesText parses one raw <!-- ... --> comment and, if it is a notes
// comment, returns the note text after the marker.
func notesText(raw string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.CommentToken:
			data := strings.TrimSpace(z.Token().Data)
			if len(data) >= 6 && strings.EqualFold(data[:6], "notes:") {
				return strings.TrimSpace(data[6:]), true
			}
			return "", false
		case html.ErrorToken:
			return "", false
		}
	}
}
