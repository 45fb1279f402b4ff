package quiz

import "strings"

// NormalizeAnswer lower-cases s, collapses whitespace runs to one space and trims it
func NormalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CheckAnswer reports whether input matches any acceptable answer after normalization.
// Empty input never matches.
func CheckAnswer(input string, acceptable []string) bool {
	given := NormalizeAnswer(input)
	if given == "" {
		return false
	}
	for _, a := range acceptable {
		if NormalizeAnswer(a) == given {
			return true
		}
	}
	return false
}
