package model

import (
	"fmt"
	"unicode"
)

// InvalidNameError reports a project or app name that cannot be used.
// It names both the offending identifier and the rule it broke, so the
// CLI can print an actionable message without extra context.
type InvalidNameError struct {
	// Name is the rejected identifier.
	Name string

	// Reason describes the rule that was broken.
	Reason string
}

// Error satisfies the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

// pythonKeywords are the reserved words of the Python language. A Django
// app is imported as a Python module, so a keyword can never be an app name.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// frameworkReserved are names that collide with Django itself or with
// modules every generated project already contains.
var frameworkReserved = map[string]bool{
	"django": true,
	"test":   true,
	"site":   true,
	"admin":  true,
}

// ValidateIdentifier checks that name is a legal Python identifier
// (letters, digits, underscore, not starting with a digit) and does not
// collide with a Python keyword or a framework-reserved name.
//
// This is the only validation that runs before any filesystem mutation,
// so a rejection here guarantees nothing has been written yet.
func ValidateIdentifier(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name must not be empty"}
	}

	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsDigit(r) {
			if i == 0 {
				return &InvalidNameError{Name: name, Reason: "name must not start with a digit"}
			}
			continue
		}
		return &InvalidNameError{
			Name:   name,
			Reason: fmt.Sprintf("character %q is not allowed; use only letters, digits, and underscores", r),
		}
	}

	if pythonKeywords[name] {
		return &InvalidNameError{Name: name, Reason: "name is a Python keyword"}
	}
	if frameworkReserved[name] {
		return &InvalidNameError{Name: name, Reason: "name is reserved by Django"}
	}

	return nil
}
