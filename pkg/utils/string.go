package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize uppercases the first letter and lowercases the rest, so
// "light RAIN" becomes "Light rain".
func Capitalize(s string) string {
	if s == "" {
		return ""
	}

	_, size := utf8.DecodeRuneInString(s)

	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// SplitCommand splits "<prefix>name arg1 arg2" into the command name and its
// arguments, which are nil when there are none. It returns false when text
// does not start with the prefix or names no command.
func SplitCommand(text, prefix string) (string, []string, bool) {
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 || strings.HasPrefix(text[len(prefix):], " ") {
		return "", nil, false
	}

	if len(fields) == 1 {
		return fields[0], nil, true
	}

	return fields[0], fields[1:], true
}
