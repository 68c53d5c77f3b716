// Package annotate supplies the linguistic features the aligner consumes:
// a tokenizer for raw text and a rule-based English tagger that assigns
// part of speech, lemma and auxiliary relations.
package annotate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"m2align/internal/align"
)

// Annotator turns sentence lines into annotated tokens. It holds no mutable
// state and is safe for concurrent use.
type Annotator struct {
	tokenize bool
}

// New returns an Annotator. With tokenize set, lines are raw text and are
// tokenized first; otherwise they are split on whitespace.
func New(tokenize bool) *Annotator {
	return &Annotator{tokenize: tokenize}
}

// Words splits line into surface tokens.
func (a *Annotator) Words(line string) []string {
	if a.tokenize {
		return Tokenize(line)
	}
	return Split(line)
}

// Sentence splits and tags one line.
func (a *Annotator) Sentence(line string) []align.Token {
	return Tag(a.Words(line))
}

// Tag assigns part of speech, lemma and dependency relation to words.
func Tag(words []string) []align.Token {
	out := make([]align.Token, len(words))
	for i, w := range words {
		pos, lemma := tagWord(w, i)
		out[i] = align.Token{Form: w, Tag: pos, Base: lemma, Index: i}
	}
	attachAux(out)
	return out
}

func tagWord(w string, i int) (pos, lemma string) {
	low := strings.ToLower(strings.ReplaceAll(w, "’", "'"))
	switch {
	case isPunct(w):
		return align.PUNCT, w
	case isNumber(w):
		return align.NUM, w
	}
	if e, ok := closed[low]; ok {
		return e.pos, e.lemma
	}
	if v, ok := verbLemma(low); ok {
		return align.VERB, v
	}
	if r, _ := utf8.DecodeRuneInString(w); i > 0 && unicode.IsUpper(r) {
		return align.PROPN, w
	}
	return guess(low)
}

// attachAux marks be/have/do as auxiliaries when a main verb follows,
// skipping adverbs and negation in between.
func attachAux(toks []align.Token) {
	for i := range toks {
		t := &toks[i]
		if t.Tag != align.VERB || !auxiliaries[t.Base] {
			continue
		}
		for j := i + 1; j < len(toks); j++ {
			next := toks[j]
			if next.Tag == align.ADV || next.Tag == align.PART {
				continue
			}
			if next.Tag == align.VERB {
				t.Rel = "aux"
				if t.Base == "be" && isParticiple(next.Form) {
					t.Rel = "auxpass"
				}
			}
			break
		}
	}
}

func isParticiple(w string) bool {
	w = strings.ToLower(w)
	return strings.HasSuffix(w, "ed") || strings.HasSuffix(w, "en") || strings.HasSuffix(w, "wn")
}

// verbLemma recovers the base form of a known verb from regular inflection.
func verbLemma(w string) (string, bool) {
	if baseVerbs[w] {
		return w, true
	}
	for _, c := range verbCandidates(w) {
		if baseVerbs[c] {
			return c, true
		}
	}
	return "", false
}

func verbCandidates(w string) []string {
	var out []string
	for _, s := range []struct{ suffix, repl string }{
		{"ies", "y"}, {"ied", "y"}, {"es", ""}, {"s", ""}, {"ed", ""}, {"ed", "e"}, {"d", ""},
		{"ing", ""}, {"ing", "e"},
	} {
		if len(w) > len(s.suffix)+1 && strings.HasSuffix(w, s.suffix) {
			stem := w[:len(w)-len(s.suffix)]
			out = append(out, stem+s.repl)
			if s.repl == "" && doubled(stem) {
				out = append(out, stem[:len(stem)-1])
			}
		}
	}
	return out
}

func doubled(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2] && !strings.ContainsRune("aeiouls", rune(s[n-1]))
}

var suffixTags = []struct {
	suffix, pos string
}{
	{"ly", align.ADV},
	{"ing", align.VERB},
	{"ed", align.VERB},
	{"tion", align.NOUN}, {"sion", align.NOUN}, {"ment", align.NOUN}, {"ness", align.NOUN},
	{"ity", align.NOUN}, {"ance", align.NOUN}, {"ence", align.NOUN}, {"ship", align.NOUN},
	{"ous", align.ADJ}, {"ful", align.ADJ}, {"able", align.ADJ}, {"ible", align.ADJ},
	{"ive", align.ADJ}, {"less", align.ADJ}, {"ish", align.ADJ}, {"ic", align.ADJ}, {"al", align.ADJ},
}

// guess tags an open-class word by its ending; anything unmatched is a noun.
func guess(w string) (pos, lemma string) {
	for _, s := range suffixTags {
		if len(w) > len(s.suffix)+2 && strings.HasSuffix(w, s.suffix) {
			switch s.pos {
			case align.VERB:
				if c := verbCandidates(w); len(c) > 0 {
					return align.VERB, c[0]
				}
			case align.ADV:
				return align.ADV, adverbLemma(w)
			}
			return s.pos, w
		}
	}
	return align.NOUN, nounLemma(w)
}

// adverbLemma maps an -ly adverb to the adjective it is built from:
// quickly -> quick, happily -> happy, simply -> simple, truly -> true.
func adverbLemma(w string) string {
	stem := strings.TrimSuffix(w, "ly")
	var cands []string
	if strings.HasSuffix(stem, "i") {
		cands = append(cands, stem[:len(stem)-1]+"y")
	}
	cands = append(cands, stem, stem+"le", stem+"e")
	for _, c := range cands {
		if e, ok := closed[c]; ok && e.pos == align.ADJ {
			return e.lemma
		}
	}
	switch {
	case strings.HasSuffix(stem, "i"):
		return stem[:len(stem)-1] + "y"
	case strings.HasSuffix(stem, "b"), strings.HasSuffix(stem, "p"):
		return stem + "le"
	}
	return stem
}

func nounLemma(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") ||
		strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "sses")):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") &&
		!strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	}
	return w
}

func isPunct(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

func isNumber(w string) bool {
	digits := false
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits = true
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits
}
