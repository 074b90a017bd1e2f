// Package fuzzy scores approximate substring matches the way bitap-style
// client filters do: an edit-distance error ratio plus a penalty for how far
// the match sits from the expected location.
package fuzzy

import (
	"math"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options tunes matching tolerance.
type Options struct {
	// Threshold is the highest score still considered a match (0 exact, 1 anything).
	Threshold float64
	// Location is the rune offset where a match is expected to start.
	Location int
	// Distance scales the proximity penalty; a match Distance runes away from
	// Location costs a full point.
	Distance int
	// MaxPatternLength splits longer patterns into chunks scored separately.
	MaxPatternLength int
	// MinMatchCharLength is the fewest pattern runes that must match exactly.
	MinMatchCharLength int
}

// DefaultOptions mirrors the permissive defaults of the account search box.
func DefaultOptions() Options {
	return Options{
		Threshold:          0.6,
		Location:           0,
		Distance:           100,
		MaxPatternLength:   32,
		MinMatchCharLength: 1,
	}
}

// Fold lowercases s and strips combining marks so "Zoë" matches "zoe".
// Transformers are stateful, so each call builds its own.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Score returns the best score of pattern inside text and whether it is
// within the threshold. Both inputs are expected to be folded already.
// An empty pattern matches everything with a perfect score.
func Score(text, pattern string, opts Options) (float64, bool) {
	p := []rune(pattern)
	if len(p) == 0 {
		return 0, true
	}
	t := []rune(text)

	chunk := opts.MaxPatternLength
	if chunk <= 0 {
		chunk = len(p)
	}

	total := 0.0
	chunks := 0
	for start := 0; start < len(p); start += chunk {
		end := start + chunk
		if end > len(p) {
			end = len(p)
		}
		score, ok := scoreChunk(t, p[start:end], opts)
		if !ok {
			return 1, false
		}
		total += score
		chunks++
	}
	return total / float64(chunks), true
}

// scoreChunk runs a Sellers edit-distance scan: cell (i, j) holds the fewest
// edits that align p[:i] with some substring of t ending at j, and starts
// tracks where that substring begins so proximity can be charged.
func scoreChunk(t, p []rune, opts Options) (float64, bool) {
	m := len(p)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	prevStart := make([]int, m+1)
	curStart := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}

	best := math.Inf(1)
	for j := 1; j <= len(t); j++ {
		cur[0] = 0
		curStart[0] = j
		for i := 1; i <= m; i++ {
			cost := 1
			if p[i-1] == t[j-1] {
				cost = 0
			}
			cur[i], curStart[i] = prev[i-1]+cost, prevStart[i-1]
			if v := cur[i-1] + 1; v < cur[i] {
				cur[i], curStart[i] = v, curStart[i-1]
			}
			if v := prev[i] + 1; v < cur[i] {
				cur[i], curStart[i] = v, prevStart[i]
			}
		}

		errors := cur[m]
		if m-errors >= opts.MinMatchCharLength {
			score := float64(errors)/float64(m) + proximity(curStart[m], opts)
			if score < best {
				best = score
			}
		}

		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}

	if best > opts.Threshold {
		return 1, false
	}
	return best, true
}

func proximity(start int, opts Options) float64 {
	gap := start - opts.Location
	if gap < 0 {
		gap = -gap
	}
	if opts.Distance <= 0 {
		if gap == 0 {
			return 0
		}
		return 1
	}
	return float64(gap) / float64(opts.Distance)
}
