package logscan

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/steveyegge/logscan/internal/config"
)

// Pattern is a compiled, immutable matcher for log lines.
type Pattern struct {
	expr string
	re   *regexp2.Regexp

	// first names the leftmost capture group in the expression; empty
	// when that group is unnamed and therefore numbered 1.
	first  string
	groups int
}

// Compile parses expr into a Pattern with the default match timeout.
//
// The syntax is the backtracking Perl/Python dialect: groups, named
// groups (?P<name>...), classes, quantifiers, \d \w \s, inline flags,
// lookahead, lookbehind and backreferences.
// On failure it returns an *InvalidPatternError and a nil Pattern.
func Compile(expr string) (*Pattern, error) {
	return CompileTimeout(expr, config.DefaultMatchTimeout)
}

// CompileTimeout is like Compile with an explicit per-line match timeout.
func CompileTimeout(expr string, timeout time.Duration) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.RE2)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: expr, Err: err}
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return &Pattern{
		expr:   expr,
		re:     re,
		first:  firstGroupName(expr),
		groups: len(re.GetGroupNumbers()) - 1,
	}, nil
}

// MustCompile is like Compile but panics on an invalid expression.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// NumGroups returns the number of capture groups in the pattern.
func (p *Pattern) NumGroups() int {
	return p.groups
}

// Extract searches line for the leftmost match and returns its
// value-bearing text: the first capture group when the pattern has
// groups, otherwise the whole match. Later groups are ignored.
//
// matched is false when the line does not match; a non-nil err then means
// matching itself failed (timeout). When the first group took no part in
// the match, matched is true and err is non-nil.
func (p *Pattern) Extract(line string) (text string, matched bool, err error) {
	m, err := p.re.FindStringMatch(line)
	if err != nil {
		return "", false, fmt.Errorf("matching %q: %w", p.expr, err)
	}
	if m == nil {
		return "", false, nil
	}

	if p.groups == 0 {
		return m.String(), true, nil
	}

	// Named groups are numbered after unnamed ones, so the leftmost group
	// is looked up by name when it has one.
	var g *regexp2.Group
	if p.first != "" {
		g = m.GroupByName(p.first)
	} else {
		g = m.GroupByNumber(1)
	}
	if g == nil || len(g.Captures) == 0 {
		return "", true, errGroupNotMatched
	}
	return g.String(), true, nil
}

// firstGroupName returns the name of the leftmost capturing group in expr,
// or "" when it is unnamed or there is none. Escapes and character
// classes are skipped; only the group openers matter.
func firstGroupName(expr string) string {
	inClass := false
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// a ']' right after '[' or '[^' is literal
			if i+1 < len(expr) && expr[i+1] == '^' {
				i++
			}
			if i+1 < len(expr) && expr[i+1] == ']' {
				i++
			}
		case c == '(':
			rest := expr[i+1:]
			if len(rest) == 0 || rest[0] != '?' {
				return ""
			}
			if name, ok := groupName(rest[1:]); ok {
				return name
			}
		}
	}
	return ""
}

// groupName reads a named-group opener that follows "(?": P<name>,
// <name> or 'name'. Lookbehind (?<= and (?<! is not a name.
func groupName(s string) (string, bool) {
	var open, closer byte
	switch {
	case len(s) > 1 && s[0] == 'P' && s[1] == '<':
		s, open, closer = s[1:], '<', '>'
	case len(s) > 0 && s[0] == '<':
		open, closer = '<', '>'
	case len(s) > 0 && s[0] == '\'':
		open, closer = '\'', '\''
	default:
		return "", false
	}
	if len(s) < 2 || s[0] != open || s[1] == '=' || s[1] == '!' {
		return "", false
	}
	for j := 1; j < len(s); j++ {
		if s[j] == closer {
			return s[1:j], true
		}
	}
	return "", false
}
