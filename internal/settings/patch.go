package settings

import (
	"strings"
)

// defaultIndent is used when a list has no existing entry to copy
// indentation from.
const defaultIndent = "    "

// InsertIntoList inserts entry into the named list literal, immediately
// before the closing bracket. The edit is idempotent: if the entry is
// already present (ignoring surrounding whitespace and a trailing comma)
// the document is returned unchanged.
//
// Multi-line lists get a new line whose indentation is copied from the
// preceding entry; single-line lists are extended in place.
func InsertIntoList(doc Document, list, entry string) (Document, error) {
	region, err := Locate(doc, list)
	if err != nil {
		return nil, err
	}

	entry = normalizeEntry(entry)

	if region.Start == region.End {
		return insertSingleLine(doc, region, entry), nil
	}

	for i := region.Start + 1; i < region.End; i++ {
		if normalizeEntry(doc[i]) == entry {
			return doc, nil
		}
	}

	indent := defaultIndent
	if prev := doc[region.End-1]; region.End-1 > region.Start && strings.TrimSpace(prev) != "" {
		indent = leadingWhitespace(prev)
	}

	out := make(Document, 0, len(doc)+1)
	out = append(out, doc[:region.End]...)
	out = append(out, indent+entry+",")
	out = append(out, doc[region.End:]...)
	return out, nil
}

// insertSingleLine extends a list literal whose opening and closing
// brackets share a line, e.g. INSTALLED_APPS = ["a", "b"].
func insertSingleLine(doc Document, region Region, entry string) Document {
	line := doc[region.Start]
	open := strings.Index(line, "[")
	close := strings.LastIndex(line, "]")

	inner := strings.TrimSpace(line[open+1 : close])
	inner = strings.TrimSuffix(inner, ",")

	if inner != "" {
		for _, existing := range strings.Split(inner, ",") {
			if strings.TrimSpace(existing) == entry {
				return doc
			}
		}
	}

	extended := entry
	if inner != "" {
		extended = inner + ", " + entry
	}

	out := doc.clone()
	out[region.Start] = line[:open+1] + extended + line[close:]
	return out
}

// SetAssignment sets a top-level assignment, replacing the existing value
// when an assignment to the same name is already present and appending at
// end of file otherwise. The value may span multiple lines (dict literals);
// the first value line is joined onto `name = `, the rest are emitted
// verbatim.
//
// Replacement rather than re-append is what makes repeated runs converge
// on the same document.
func SetAssignment(doc Document, name string, valueLines ...string) Document {
	lines := make(Document, 0, len(valueLines))
	lines = append(lines, name+" = "+valueLines[0])
	lines = append(lines, valueLines[1:]...)

	for i, line := range doc {
		if !isAssignmentTo(line, name) {
			continue
		}

		end := assignmentExtent(doc, i)
		out := make(Document, 0, len(doc)-(end-i+1)+len(lines))
		out = append(out, doc[:i]...)
		out = append(out, lines...)
		out = append(out, doc[end+1:]...)
		return out
	}

	// Not present: append at end-of-file scope, separated by a blank line
	// and keeping the trailing newline.
	out := doc.clone()
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	out = append(out, "")
	out = append(out, lines...)
	out = append(out, "")
	return out
}

// EnsureImport guarantees that the given import statement appears in the
// document, inserting it after the last existing import when missing.
func EnsureImport(doc Document, stmt string) Document {
	lastImport := -1
	for i, line := range doc {
		trimmed := strings.TrimSpace(line)
		if trimmed == stmt {
			return doc
		}
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			lastImport = i
		}
	}

	at := lastImport + 1
	out := make(Document, 0, len(doc)+1)
	out = append(out, doc[:at]...)
	out = append(out, stmt)
	out = append(out, doc[at:]...)
	return out
}

// isAssignmentTo reports whether line is a top-level assignment to name.
// Top-level means no leading indentation, which rules out dict keys and
// entries inside nested literals.
func isAssignmentTo(line, name string) bool {
	if !strings.HasPrefix(line, name) {
		return false
	}
	rest := strings.TrimLeft(line[len(name):], " ")
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}

// assignmentExtent returns the index of the last line of the assignment
// starting at line i, tracking depth across all three bracket kinds so
// multi-line dict and list values are covered.
func assignmentExtent(doc Document, i int) int {
	depth := allBracketDelta(doc[i])
	for j := i + 1; j < len(doc) && depth > 0; j++ {
		depth += allBracketDelta(doc[j])
		if depth <= 0 {
			return j
		}
	}
	return i
}

// allBracketDelta returns the net depth change for (), [] and {} on a line.
func allBracketDelta(line string) int {
	delta := 0
	for _, r := range line {
		switch r {
		case '(', '[', '{':
			delta++
		case ')', ']', '}':
			delta--
		}
	}
	return delta
}

// normalizeEntry strips surrounding whitespace and a trailing comma so
// `    'x',` and `'x'` compare as the same entry.
func normalizeEntry(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	return strings.TrimSpace(s)
}

// leadingWhitespace returns the run of spaces and tabs at the start of a line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
