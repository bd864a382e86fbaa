package extract

import (
	"regexp"
	"strings"
)

// CanonicalPrefix is the branch prefix every customer identifier carries.
const CanonicalPrefix = "101"

// Rule defines a single identifier-extraction pattern: a pure function from
// free text to an optional canonical customer identifier.
type Rule interface {
	Name() string
	Extract(text string) (string, bool)
}

// patternRule extracts an identifier with a regular expression plus optional
// positional constraints. RE2 has no lookaround, so "not preceded by a digit"
// and "followed by a word character" are explicit checks on the match
// position. The matched token is uppercased and prefixed with "101" unless it
// already carries the prefix.
type patternRule struct {
	name          string
	re            *regexp.Regexp
	noDigitBefore bool
	wordCharAfter bool
	groups        []int // capture groups to concatenate; empty means whole match
}

func (r *patternRule) Name() string { return r.name }

func (r *patternRule) Extract(text string) (string, bool) {
	// Scan candidate positions one by one so that a match rejected by a
	// positional constraint does not hide a later, valid match.
	off := 0
	for off <= len(text) {
		loc := r.re.FindStringSubmatchIndex(text[off:])
		if loc == nil {
			return "", false
		}

		start, end := off+loc[0], off+loc[1]
		if r.boundsOK(text, start, end) {
			return canonicalize(r.token(text, loc, off)), true
		}

		off = start + 1
	}

	return "", false
}

func (r *patternRule) boundsOK(text string, start, end int) bool {
	if r.noDigitBefore && start > 0 && isDigit(text[start-1]) {
		return false
	}
	if r.wordCharAfter && (end >= len(text) || !isWordChar(text[end])) {
		return false
	}
	return true
}

func (r *patternRule) token(text string, loc []int, off int) string {
	if len(r.groups) == 0 {
		return text[off+loc[0] : off+loc[1]]
	}

	var sb strings.Builder
	for _, g := range r.groups {
		if loc[2*g] < 0 {
			continue
		}
		sb.WriteString(text[off+loc[2*g] : off+loc[2*g+1]])
	}
	return sb.String()
}

// canonicalize uppercases a matched token and adds the branch prefix when it
// is not already present.
func canonicalize(token string) string {
	token = strings.ToUpper(token)
	if strings.HasPrefix(token, CanonicalPrefix) {
		return token
	}
	return CanonicalPrefix + token
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordChar(b byte) bool {
	return isDigit(b) || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// DefaultRules returns the extraction cascade in its declared priority order.
// The order is load-bearing: several later rules are shadowed by earlier ones
// for most inputs, but behavior for ambiguous strings depends on trying them
// exactly in this sequence, so do not deduplicate.
func DefaultRules() []Rule {
	return []Rule{
		// Deposit-slip narrations: "ADT CASH DEPO<digits> <code>"
		&patternRule{
			name:   "deposit-slip",
			re:     regexp.MustCompile(`(?i)ADT CASH DEPO\d+\s([A-Za-z]{3}\d{2})`),
			groups: []int{1},
		},
		// Standalone compact token: 101 + 2 letters + 3 digits
		&patternRule{
			name: "compact-canonical",
			re:   regexp.MustCompile(`(?i)\b101[A-Za-z]{2}\d{3}\b`),
		},
		// Identifiers embedded in longer strings, prefixed form first
		&patternRule{
			name:          "prefixed-embedded",
			re:            regexp.MustCompile(`(?i)101[A-Za-z]{3}\d{2}`),
			noDigitBefore: true,
			wordCharAfter: true,
		},
		&patternRule{
			name:          "bare-embedded",
			re:            regexp.MustCompile(`(?i)[A-Za-z]{3}\d{2}`),
			noDigitBefore: true,
			wordCharAfter: true,
		},
		&patternRule{
			name:          "prefixed-loose",
			re:            regexp.MustCompile(`(?i)101[A-Za-z]{3}\d{2}`),
			noDigitBefore: true,
		},
		&patternRule{
			name:          "bare-loose",
			re:            regexp.MustCompile(`(?i)[A-Za-z]{3}\d{2}`),
			noDigitBefore: true,
		},
		// Standalone word forms
		&patternRule{
			name: "standalone-either",
			re:   regexp.MustCompile(`(?i)\b(?:101[A-Za-z]{3}\d{2}|[A-Za-z]{3}\d{2})\b`),
		},
		&patternRule{
			name: "standalone-prefixed",
			re:   regexp.MustCompile(`\b101[A-Za-z]{3}\d{2}\b`),
		},
		&patternRule{
			name: "standalone-bare",
			re:   regexp.MustCompile(`(?i)\b[A-Za-z]{3}\d{2}\b`),
		},
		// Letters and digits separated by whitespace: "ABC 12"
		&patternRule{
			name:   "spaced-code",
			re:     regexp.MustCompile(`(?i)([A-Za-z]{3})\s(\d{2})`),
			groups: []int{1, 2},
		},
	}
}
