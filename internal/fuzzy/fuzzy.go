// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy scores approximate string matches on a 0..100 scale.
package fuzzy

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// Ratio returns the indel similarity of a and b: 100 * 2*LCS / (len(a)+len(b)), rounded.
//
// Lengths are counted in runes. Ratio is 0 when either string is empty.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := lcsLength(ra, rb)
	return int(math.RoundToEven(100 * float64(2*lcs) / float64(len(ra)+len(rb))))
}

// lcsLength returns the length of the longest common subsequence using two rows.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// normalize keeps the ASCII letters, digits and underscores of s, lowered,
// and turns every other ASCII character into a space. Non-ASCII runes are dropped.
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= utf8.RuneSelf:
		case r == '_', '0' <= r && r <= '9', 'a' <= r && r <= 'z':
			sb.WriteRune(r)
		case 'A' <= r && r <= 'Z':
			sb.WriteRune(r + 'a' - 'A')
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// tokens returns the sorted set of words of the normalized s.
// Underscores join words, so "dry_spray" is a single token.
func tokens(s string) []string {
	fields := strings.Fields(normalize(s))
	slices.Sort(fields)
	return slices.Compact(fields)
}

// TokenSetRatio compares the token sets of a and b.
//
// The shared tokens are compared with each side's shared plus remaining tokens,
// and the two sides with each other. The best of the three ratios wins.
func TokenSetRatio(a, b string) int {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for _, t := range ta {
		if _, found := slices.BinarySearch(tb, t); found {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if _, found := slices.BinarySearch(ta, t); !found {
			onlyB = append(onlyB, t)
		}
	}

	sorted := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sorted + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sorted + " " + strings.Join(onlyB, " "))

	return max(
		Ratio(sorted, combinedA),
		Ratio(sorted, combinedB),
		Ratio(combinedA, combinedB),
	)
}

// Match is a candidate and its score.
type Match struct {
	Value string
	Score int
}

// Search scores every candidate against query with [TokenSetRatio].
//
// Candidates scoring strictly above threshold are returned best first; ties
// keep their input order.
func Search(query string, candidates []string, threshold int) []Match {
	var matches []Match
	for _, c := range candidates {
		if score := TokenSetRatio(query, c); score > threshold {
			matches = append(matches, Match{Value: c, Score: score})
		}
	}
	slices.SortStableFunc(matches, func(x, y Match) int {
		return cmp.Compare(y.Score, x.Score)
	})
	return matches
}
