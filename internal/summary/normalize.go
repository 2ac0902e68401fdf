package summary

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// quotePairs are wrappers models commonly put around a one-line answer.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"`", "`"},
	{"“", "”"},
	{"‘", "’"},
}

// Normalize cleans raw model output: runs of whitespace become single
// spaces, matching surrounding quotes are removed and the result is cut to
// at most maxChars characters without splitting a rune. Output that is empty
// after cleaning is an ErrBadResponse.
func Normalize(raw string, maxChars int) (string, error) {
	s := strings.Join(strings.Fields(raw), " ")
	s = stripQuotes(s)

	if s == "" {
		return "", fmt.Errorf("%w: empty summary", ErrBadResponse)
	}

	if maxChars > 0 && utf8.RuneCountInString(s) > maxChars {
		s = truncateRunes(s, maxChars)
	}
	return s, nil
}

func stripQuotes(s string) string {
	for {
		stripped := false
		for _, q := range quotePairs {
			if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
				s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
				stripped = true
			}
		}
		if !stripped {
			return s
		}
	}
}

func truncateRunes(s string, maxChars int) string {
	count := 0
	for i := range s {
		if count == maxChars {
			return strings.TrimRight(s[:i], " ")
		}
		count++
	}
	return s
}
