package settings

import (
	"fmt"
	"strings"
)

// Region identifies the span of lines holding one named list literal:
// Start is the line with `NAME = [` and End is the line where the bracket
// depth returns to zero. For a single-line literal Start == End; otherwise
// Start < End and the lines in between contain exactly the list entries.
type Region struct {
	Name  string
	Start int
	End   int
}

// RegionNotFoundError reports that no line in the document opens a list
// literal with the requested name.
type RegionNotFoundError struct {
	// List is the variable name that was searched for.
	List string
}

// Error satisfies the error interface.
func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s = [ ... ] in settings file", e.List)
}

// MalformedRegionError reports a list literal whose bracket depth never
// returns to zero before end of input. This is surfaced rather than
// silently truncated: mispatching a settings file is worse than aborting.
type MalformedRegionError struct {
	// List is the variable name whose literal is unterminated.
	List string

	// Start is the line index of the opening bracket.
	Start int
}

// Error satisfies the error interface.
func (e *MalformedRegionError) Error() string {
	return fmt.Sprintf("list %s opened on line %d is never closed", e.List, e.Start+1)
}

// Locate finds the region of the list literal assigned to name.
//
// The scan looks for the first line whose trimmed content begins with
// `name = [`, then tracks bracket depth across subsequent lines
// (incrementing on every `[` and decrementing on every `]`) until depth
// returns to zero. Nested list literals are handled by the depth count;
// no deeper parsing is attempted because the target file is generated
// with one statement per line.
func Locate(doc Document, name string) (Region, error) {
	opener := name + " = ["

	for i, line := range doc {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, opener) {
			continue
		}

		// Depth starts at zero and the opening bracket is part of this
		// line, so counting the whole line accounts for it, including
		// the single-line case where the closing bracket is here too.
		depth := bracketDelta(trimmed)
		if depth == 0 {
			return Region{Name: name, Start: i, End: i}, nil
		}

		for j := i + 1; j < len(doc); j++ {
			depth += bracketDelta(doc[j])
			if depth <= 0 {
				return Region{Name: name, Start: i, End: j}, nil
			}
		}

		return Region{}, &MalformedRegionError{List: name, Start: i}
	}

	return Region{}, &RegionNotFoundError{List: name}
}

// bracketDelta returns the net change in square-bracket depth for a line.
func bracketDelta(line string) int {
	return strings.Count(line, "[") - strings.Count(line, "]")
}
