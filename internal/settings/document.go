package settings

import (
	"fmt"
	"os"
	"strings"
)

// Document is the full text of a settings file as an ordered sequence of
// lines. Patch functions take a Document and return a new one; the caller
// persists the result with Save.
type Document []string

// Parse splits raw file content into a Document. The split keeps an empty
// final element for content ending in a newline, so String reproduces the
// input byte for byte.
func Parse(content string) Document {
	return Document(strings.Split(content, "\n"))
}

// String joins the document back into file content.
func (d Document) String() string {
	return strings.Join(d, "\n")
}

// clone returns a copy of the document so transformations never alias the
// caller's slice.
func (d Document) clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}

// ReadWriteError reports a failed read or write of a settings file.
// It always names the file path so the orchestrator can print one
// actionable message.
type ReadWriteError struct {
	// Path is the file that could not be accessed.
	Path string

	// Op is "read" or "write".
	Op string

	// Err is the underlying filesystem error.
	Err error
}

// Error satisfies the error interface.
func (e *ReadWriteError) Error() string {
	return fmt.Sprintf("cannot %s settings file %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *ReadWriteError) Unwrap() error {
	return e.Err
}

// Load reads a settings file into a Document.
func Load(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadWriteError{Path: path, Op: "read", Err: err}
	}
	return Parse(string(content)), nil
}

// Save writes the document back to disk with the standard permissions for
// a non-executable source file.
func Save(path string, doc Document) error {
	if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil {
		return &ReadWriteError{Path: path, Op: "write", Err: err}
	}
	return nil
}
