// Package settings patches the settings.py file that django-admin generates.
//
// The file is held as an ordered slice of lines (Document) and every edit is
// a pure transformation over that slice. Load and Save are the only
// functions that touch the filesystem, which keeps the patch logic testable
// with literal line fixtures.
//
// The patcher is not a Python parser. It locates bracketed list literals
// (INSTALLED_APPS, MIDDLEWARE) by name with a bracket-depth scan and edits
// them line by line. This is sufficient because the target file is
// generator-produced with predictable single-statement-per-line formatting;
// anything that does not match that shape is surfaced as an error rather
// than mispatched.
//
// All edits are idempotent: applying the same patch twice yields the same
// document as applying it once.
package settings
