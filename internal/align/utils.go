package align

import (
	"strings"
	"unicode"
)

// unitDL is the unit-cost restricted Damerau-Levenshtein distance over runes.
func unitDL(ra, rb []rune) int {
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

// charDistance is unitDL over the lowercased forms, scaled to [0,1] by the
// longer length.
func charDistance(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	n := max(len(ra), len(rb))
	if n == 0 {
		return 0
	}
	return float64(unitDL(ra, rb)) / float64(n)
}

func fold(s string) string { return strings.ToLower(s) }

// squash lowercases s and drops all whitespace.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

func isPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

func joinTexts(toks []Features, sep string) string {
	return strings.Join(Texts(toks), sep)
}
