package annotate

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\p{L}+(?:['’-]\p{L}+)*|\p{N}+(?:[.,]\p{N}+)*|\.\.\.|\S`)

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Tokenize splits raw text into word, number and punctuation tokens.
// Contractions are split the usual way: "don't" -> "do" "n't", "it's" -> "it" "'s".
func Tokenize(text string) []string {
	var out []string
	for _, tok := range tokenRe.FindAllString(text, -1) {
		out = append(out, splitClitic(tok)...)
	}
	return out
}

// Split treats text as already tokenized and splits it on whitespace.
func Split(text string) []string { return strings.Fields(text) }

func splitClitic(tok string) []string {
	for _, c := range clitics {
		for _, v := range [...]string{c, strings.ReplaceAll(c, "'", "’")} {
			cut := len(tok) - len(v)
			if cut > 0 && strings.EqualFold(tok[cut:], v) {
				return []string{tok[:cut], tok[cut:]}
			}
		}
	}
	return []string{tok}
}
