// Package suggest answers "did you mean X?" for an unknown method or
// keyword name, adapted from the teacher's internal/helpers.TypoDetector
// (itself a one-deleted-character / one-transposed-character lookup
// table) and generalized to a bounded edit-distance search grounded on
// original_source/common/Levenstein.cc, which the original uses for the
// same unknown-method/unknown-keyword suggestions this package serves.
package suggest

import "unicode/utf8"

// Detector answers typo-correction queries against a fixed vocabulary of
// valid names (method names on a receiver, or keyword-argument names on a
// method). Built once per lookup site; cheap enough that internal/dispatch
// constructs one per UnknownMethod/UnknownKeyword diagnostic rather than
// caching it, since the vocabulary (a receiver's method set, or a call's
// keyword set) is usually small.
type Detector struct {
	oneCharDeletions map[string]string
	valid            []string
}

// New builds a Detector over valid. Mirrors
// internal/helpers.MakeTypoDetector's one-character-deleted index, plus a
// bounded Levenshtein fallback for typos MakeTypoDetector's index
// wouldn't catch (e.g. a single substituted character that isn't just a
// transposition).
func New(valid []string) Detector {
	d := Detector{oneCharDeletions: make(map[string]string), valid: valid}
	for _, correct := range valid {
		if len(correct) > 3 {
			for i, ch := range correct {
				d.oneCharDeletions[correct[:i]+correct[i+utf8.RuneLen(ch):]] = correct
			}
		}
	}
	return d
}

// Correct returns the closest valid name to typo, and whether one was
// found within the allowed distance. Checked in order of cheapest first:
// exact one-character deletion, one-character transposition (both O(1)
// lookups via oneCharDeletions), then bounded Levenshtein distance over
// the full vocabulary.
func (d Detector) Correct(typo string) (string, bool) {
	if corrected, ok := d.oneCharDeletions[typo]; ok {
		return corrected, true
	}
	for i, ch := range typo {
		shortened := typo[:i] + typo[i+utf8.RuneLen(ch):]
		if corrected, ok := d.oneCharDeletions[shortened]; ok {
			return corrected, true
		}
	}
	return d.closestWithinDistance(typo, maxDistanceFor(typo))
}

// maxDistanceFor scales the allowed edit distance with the length of the
// typo, matching original_source/common/Levenstein.cc's reasoning that a
// fixed small budget (e.g. distance <= 2) rejects legitimate corrections
// for long names while accepting too many false positives for short ones.
func maxDistanceFor(typo string) int {
	n := utf8.RuneCountInString(typo)
	switch {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	default:
		return 3
	}
}

func (d Detector) closestWithinDistance(typo string, maxDist int) (string, bool) {
	best := ""
	bestDist := maxDist + 1
	for _, candidate := range d.valid {
		dist := levenshtein(typo, candidate)
		if dist < bestDist {
			bestDist = dist
			best = candidate
		}
	}
	if bestDist > maxDist {
		return "", false
	}
	return best, true
}

// levenshtein computes classic single-character-edit distance (insert,
// delete, substitute) between a and b, grounded on
// original_source/common/Levenstein.cc's dynamic-programming table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minOf3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
