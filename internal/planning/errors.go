package planning

import "fmt"

// InvalidArgumentError is returned when planning inputs are out of range
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Message)
}

// NoViableSectionError records a keyword that no section relates to. The
// planner recovers by falling back to the least keyword-dense section, so the
// error is reported as a plan warning rather than returned.
type NoViableSectionError struct {
	Keyword  string
	Fallback string // Title of the fallback section, empty when the document has none
}

func (e *NoViableSectionError) Error() string {
	if e.Fallback == "" {
		return fmt.Sprintf("no viable section for keyword %q", e.Keyword)
	}
	return fmt.Sprintf("no viable section for keyword %q: falling back to %q", e.Keyword, e.Fallback)
}
