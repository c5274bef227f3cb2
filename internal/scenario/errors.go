package scenario

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path addresses a field of a scenario document, one segment per level.
// Index segments are kept as "[n]" and join without a dot.
type Path []string

// At starts a path at a top-level field.
func At(field string) Path {
	return Path{field}
}

// Field returns p extended by a named field.
func (p Path) Field(name string) Path {
	return append(slices.Clip(p), name)
}

// Index returns p extended by a list index.
func (p Path) Index(i int) Path {
	return append(slices.Clip(p), "["+strconv.Itoa(i)+"]")
}

// String renders the path the way it reads in YAML, e.g. "steps[0].add[1].name".
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// ValidationError is one field that failed validation.
type ValidationError struct {
	Path   Path
	Reason string
	Value  any // offending value, nil when the field is missing
}

// Key returns the rendered field path.
func (e *ValidationError) Key() string {
	return e.Path.String()
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Key(), e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Key(), e.Reason, e.Value)
}

// Is matches another *ValidationError on the same path, so callers can test
// for a failing field with errors.Is(err, &ValidationError{Path: ...}).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && slices.Equal(e.Path, t.Path)
}

// AggregateError collects every failure found in one document.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	lines := make([]string, 0, len(e.Errors))
	for _, err := range e.sorted() {
		lines = append(lines, "  - "+err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// sorted orders the failures by field path, list indexes numerically.
// Errors that carry no path go last.
func (e *AggregateError) sorted() []error {
	out := slices.Clone(e.Errors)
	slices.SortStableFunc(out, func(a, b error) int {
		pa, okA := pathOf(a)
		pb, okB := pathOf(b)
		switch {
		case !okA || !okB:
			return compareBool(okB, okA)
		default:
			return pa.compare(pb)
		}
	})
	return out
}

func pathOf(err error) (Path, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Path, true
	}
	return nil, false
}

func (p Path) compare(other Path) int {
	for i := range min(len(p), len(other)) {
		if c := compareSegment(p[i], other[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p), len(other))
}

func compareSegment(a, b string) int {
	ia, errA := strconv.Atoi(strings.Trim(a, "[]"))
	ib, errB := strconv.Atoi(strings.Trim(b, "[]"))
	if errA == nil && errB == nil && strings.HasPrefix(a, "[") && strings.HasPrefix(b, "[") {
		return cmp.Compare(ia, ib)
	}
	return cmp.Compare(a, b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the individual failures when err is an *AggregateError,
// ordered by field path, and nil otherwise.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.sorted()
	}
	return nil
}
