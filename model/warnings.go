package model

import "strings"

// Warning codes produced while restoring persisted state
const (
	WarnUnknownClass = "unknown-class"
	WarnBadGeometry  = "bad-geometry"
	WarnBadColor     = "bad-color"
	WarnBadImage     = "bad-image"
	WarnBadRecord    = "bad-record"
	WarnBadSVG       = "bad-svg"
)

// Warning describes a non-fatal problem found while restoring a
// document or graphic from its persisted form. Restoration repairs
// what it can and reports what it repaired or dropped; warnings never
// abort a decode.
type Warning struct {
	Code    string // stable identifier, e.g. "unknown-class"
	Message string
	Detail  string // offending value, when one exists
}

// String renders the warning for display
func (w Warning) String() string {
	if w.Detail == "" {
		return w.Code + ": " + w.Message
	}
	return w.Code + ": " + w.Message + " (" + w.Detail + ")"
}

// FormatWarnings renders a warning list one per line, or "" for none
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
