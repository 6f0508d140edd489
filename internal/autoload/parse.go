package autoload

import (
	"regexp"
	"strings"
)

// entryRegex matches one declaration line, line ending removed.
// Groups: indent, single-quoted key, double-quoted key, arrow, value, comma, trailing blanks.
// Commas inside a value are only accepted within quoted strings.
var entryRegex = regexp.MustCompile(`^([ \t]*)(?:'([^'\\]*)'|"([^"\\]*)")([ \t]*=>[ \t]*)` +
	`((?:'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|[^'",])+?)(,?)([ \t]*)$`)

// defaultLayout is used for entries that were not produced by Parse
// when the block itself has no entry to copy the shape from
var defaultLayout = layout{
	set:    true,
	indent: "        ",
	quote:  "'",
	arrow:  " => ",
	comma:  true,
	eol:    "\n",
}

// Parse locates the block described by f inside text and extracts its entries.
// A block that is found but holds no declaration lines yields an empty EntryList.
func Parse(text string, f Format) (*Block, error) {
	start, end, err := locate(text, f)
	if err != nil {
		return nil, err
	}

	b := &Block{
		Format: f,
		Start:  start,
		End:    end,
	}
	b.Head, b.Entries, b.Tail = parseBody(text[start:end])

	b.def = defaultLayout
	if len(b.Entries) > 0 {
		b.def = b.Entries[0].layout
		b.def.lead = ""
		b.def.comma = true
	} else if strings.Contains(text[start:end], "\r\n") {
		b.def.eol = "\r\n"
	}

	return b, nil
}

// locate returns the body offsets of the block
func locate(text string, f Format) (int, int, error) {
	if f.Start == "" {
		return 0, 0, &FormatError{Format: f, Marker: f.Start}
	}
	idx := strings.Index(text, f.Start)
	if idx < 0 {
		return 0, 0, &FormatError{Format: f, Marker: f.Start}
	}
	start := idx + len(f.Start)

	end := -1
	if f.End != "" {
		end = indexLineMarker(text, start, f.End)
	}
	if end < 0 {
		return 0, 0, &FormatError{Format: f, Marker: f.End}
	}

	return start, end, nil
}

// indexLineMarker finds the first marker at or after from that opens a line
// once indentation is skipped. from itself counts as a line start.
func indexLineMarker(text string, from int, marker string) int {
	for pos := from; pos <= len(text); {
		i := pos
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if strings.HasPrefix(text[i:], marker) {
			return i
		}

		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			return -1
		}
		pos += nl + 1
	}
	return -1
}

// parseBody splits the body into head, entries and tail.
// Non-entry lines between two entries travel with the entry that follows them.
func parseBody(body string) (string, EntryList, string) {
	var (
		head    string
		entries EntryList
		pending strings.Builder
	)

	for _, line := range splitLines(body) {
		content, eol := cutEOL(line)
		m := entryRegex.FindStringSubmatch(content)
		if m == nil {
			pending.WriteString(line)
			continue
		}

		key, quote := m[2], "'"
		if strings.HasPrefix(content[len(m[1]):], `"`) {
			key, quote = m[3], `"`
		}

		e := Entry{
			Key:   key,
			Value: m[5],
			layout: layout{
				set:    true,
				indent: m[1],
				quote:  quote,
				arrow:  m[4],
				comma:  m[6] == ",",
				trail:  m[7],
				eol:    eol,
			},
		}
		if len(entries) == 0 {
			head = pending.String()
		} else {
			e.layout.lead = pending.String()
		}
		pending.Reset()
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return pending.String(), EntryList{}, ""
	}
	return head, entries, pending.String()
}

// splitLines splits s after every '\n', keeping the line endings
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.SplitAfter(s, "\n")
}

func cutEOL(line string) (string, string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
