// Package pattern compiles property selector expressions into reusable
// matchers. A selector is one or more glob alternatives separated by '|',
// e.g. "web*|*.api.com|exact.match". Matching is always case-insensitive.
package pattern

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyPattern is returned when a selector contains no usable alternatives.
var ErrEmptyPattern = errors.New("selector contains no pattern alternatives")

// Matcher is the compiled form of a selector. It is immutable after
// Compile and safe for concurrent use.
type Matcher struct {
	selector     string
	alternatives []*regexp.Regexp
}

// Compile splits the selector on '|', drops empty alternatives, and
// compiles each remaining alternative as a glob. Glob semantics:
// '*' matches any run of characters (including none), '?' matches exactly
// one character, '[set]' and '[!set]' match one character from or outside
// the set. A selector with no metacharacters behaves as an exact
// case-insensitive match. Whitespace inside an alternative is literal,
// so " a " only matches a property with the same padding.
func Compile(selector string) (*Matcher, error) {
	var alternatives []*regexp.Regexp
	for _, alt := range strings.Split(selector, "|") {
		if alt == "" {
			continue
		}
		re, err := regexp.Compile(translateGlob(strings.ToLower(alt)))
		if err != nil {
			// Unbalanced classes and the like are treated as literals by
			// translateGlob, so compilation only fails on pathological input.
			return nil, err
		}
		alternatives = append(alternatives, re)
	}

	if len(alternatives) == 0 {
		return nil, ErrEmptyPattern
	}

	return &Matcher{
		selector:     selector,
		alternatives: alternatives,
	}, nil
}

// Matches reports whether the candidate property satisfies any alternative.
func (m *Matcher) Matches(candidate string) bool {
	candidate = strings.ToLower(candidate)
	for _, re := range m.alternatives {
		if re.MatchString(candidate) {
			return true
		}
	}
	return false
}

// Selector returns the original selector string for reporting.
func (m *Matcher) Selector() string {
	return m.selector
}

// translateGlob converts a glob alternative to an anchored regular
// expression. Unlike path.Match, '*' is not stopped by any separator:
// property names are opaque identifiers, not paths.
func translateGlob(glob string) string {
	var b strings.Builder
	b.WriteString(`(?s)^(?:`)

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			class, consumed := translateClass(runes[i:])
			b.WriteString(class)
			i += consumed - 1
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString(`)$`)
	return b.String()
}

// translateClass translates a character class starting at runes[0] == '['.
// It returns the regexp fragment and the number of runes consumed. An
// unterminated class is matched as a literal '[', consuming one rune.
func translateClass(runes []rune) (string, int) {
	// Find the closing bracket. A ']' directly after '[' or '[!' is a
	// literal member of the set, not a terminator.
	j := 1
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return `\[`, 1
	}

	inner := string(runes[1:j])
	negated := strings.HasPrefix(inner, "!")
	if negated {
		inner = inner[1:]
	}

	// Escape regexp class metacharacters that are not also glob class
	// metacharacters ('-' keeps its range meaning).
	inner = strings.ReplaceAll(inner, `\`, `\\`)
	inner = strings.ReplaceAll(inner, `^`, `\^`)
	inner = strings.ReplaceAll(inner, `[`, `\[`)
	inner = strings.ReplaceAll(inner, `]`, `\]`)

	if negated {
		return "[^" + inner + "]", j + 1
	}
	return "[" + inner + "]", j + 1
}
