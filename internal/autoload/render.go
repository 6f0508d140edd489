package autoload

import "strings"

// Render writes entries back in the declaration shape of b.
// Entries keep the layout they were parsed with; entries built by hand
// take the shape of the block's first entry.
func Render(b *Block, entries EntryList) string {
	var sb strings.Builder
	sb.WriteString(b.Head)

	last := len(entries) - 1
	for i, e := range entries {
		l := e.layout
		if !l.set {
			l = b.def
		}

		sb.WriteString(l.lead)
		sb.WriteString(l.indent)
		sb.WriteString(l.quote)
		sb.WriteString(e.Key)
		sb.WriteString(l.quote)
		sb.WriteString(l.arrow)
		sb.WriteString(e.Value)
		// only the final entry may go without a separator
		if l.comma || i != last {
			sb.WriteByte(',')
		}
		sb.WriteString(l.trail)
		sb.WriteString(l.eol)
	}

	sb.WriteString(b.Tail)
	return sb.String()
}

// Splice replaces the body of b inside text
func Splice(text string, b *Block, body string) string {
	return text[:b.Start] + body + text[b.End:]
}
