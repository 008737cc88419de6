package diffmd

import "fmt"

// StructuralError reports a line that needs an open file or block when none exists.
type StructuralError struct {
	LineNo int
	Line   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}

// HeaderMismatchError reports a header whose two paths differ without a rename.
// It is only produced in strict mode.
type HeaderMismatchError struct {
	LineNo int
	Line   string
	PathA  string
	PathB  string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("line %d: header paths do not match: %q vs %q", e.LineNo, e.PathA, e.PathB)
}

// MalformedMarkerError reports a line that starts like a marker but does not
// have the marker's full shape.
type MalformedMarkerError struct {
	LineNo int
	Line   string
	Marker string
}

func (e *MalformedMarkerError) Error() string {
	if e.LineNo == 0 {
		return fmt.Sprintf("malformed %s line: %q", e.Marker, e.Line)
	}
	return fmt.Sprintf("line %d: malformed %s line: %q", e.LineNo, e.Marker, e.Line)
}
