package cmd

import "strings"

// maxSuggestDistance is the largest edit distance still worth suggesting.
const maxSuggestDistance = 3

// levenshtein computes the edit distance between a and b using a single
// rolling row.
func levenshtein(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = next
		}
	}
	return row[len(b)]
}

// closest returns the candidate nearest to input. A candidate that input is
// a prefix of wins outright, so "coll" suggests "collections".
func closest(input string, candidates []string, normalize func(string) string) string {
	input = normalize(input)
	if input == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		n := normalize(c)
		if len(input) >= 3 && strings.HasPrefix(n, input) {
			return c
		}
		if d := levenshtein(input, n); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// suggestCommand finds the closest command name to the unknown input.
func suggestCommand(unknown string, commands []string) string {
	return closest(unknown, commands, strings.ToLower)
}

// suggestFlag finds the closest flag name, ignoring leading dashes, and
// returns it with its original prefix.
func suggestFlag(unknown string, flagNames []string) string {
	return closest(unknown, flagNames, func(s string) string {
		return strings.ToLower(strings.TrimLeft(s, "-"))
	})
}
