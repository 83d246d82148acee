// Package identifier sanitizes raw XML element/attribute names into safe
// SQL identifiers.
package identifier

import (
	"fmt"
	"strings"
)

// ErrBadIdentifier is returned when a name sanitizes to the empty string.
type ErrBadIdentifier struct {
	Raw string
}

func (e *ErrBadIdentifier) Error() string {
	return fmt.Sprintf("identifier: %q sanitizes to empty string", e.Raw)
}

// Sanitize strips every character outside [A-Za-z0-9_] and lowercases the
// result. It is idempotent: Sanitize(Sanitize(x)) == Sanitize(x). An
// attribute sigil such as "@xmlns" is stripped like any other disallowed
// character, leaving "xmlns".
func Sanitize(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		}
	}
	out := b.String()
	if out == "" {
		return "", &ErrBadIdentifier{Raw: s}
	}
	return out, nil
}

// MustSanitize panics on a bad identifier; used only where the caller has
// already validated the input (e.g. fixed internal constants).
func MustSanitize(s string) string {
	out, err := Sanitize(s)
	if err != nil {
		panic(err)
	}
	return out
}
