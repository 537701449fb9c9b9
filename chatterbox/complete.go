package chatterbox

import (
	"regexp"
	"strings"
)

var trailingWord = regexp.MustCompile(`\w+$`)

// Complete expands the word at the end of input to the first nickname in
// names that starts with it, ignoring case. The completed nickname is
// followed by ": " when it makes up the whole input, otherwise by a space.
// Without a match, input is returned unchanged.
func Complete(input string, names []string) string {
	loc := trailingWord.FindStringIndex(input)
	if loc == nil {
		return input
	}
	prefix := strings.ToLower(input[loc[0]:])
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		out := input[:loc[0]] + name
		if out == name {
			return out + ": "
		}
		return out + " "
	}
	return input
}
