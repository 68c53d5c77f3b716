package align

import "strings"

// Category is the error-type label attached to an edit, e.g. "M:DET".
type Category string

// Kind is the coarse family of a Category: the part before ':'.
type Kind string

const (
	KindOrthography Kind = "ORTH"
	KindMorphology  Kind = "MORPH"
	KindWordOrder   Kind = "WO"
	KindPunctuation Kind = "PUNCT"
	KindReplacement Kind = "R"
	KindMissing     Kind = "M"
	KindUnnecessary Kind = "U"
	KindMulti       Kind = "MULTI"
	KindOther       Kind = "OTHER"
)

const (
	Orthography Category = "ORTH"
	Morphology  Category = "MORPH"
	WordOrder   Category = "WO"
	Punctuation Category = "PUNCT"
	MultiEdit   Category = "MULTI"
	Other       Category = "OTHER"
	// Noop labels the placeholder record written for sentences without edits.
	Noop Category = "noop"
)

var knownKinds = map[Kind]bool{
	KindOrthography: true, KindMorphology: true, KindWordOrder: true, KindPunctuation: true,
	KindReplacement: true, KindMissing: true, KindUnnecessary: true, KindMulti: true, KindOther: true,
}

// Kind returns the family of c.
func (c Category) Kind() Kind {
	s := string(c)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return Kind(s)
}

func refined(k Kind, pos string) Category { return Category(string(k) + ":" + pos) }

// Classify labels one non-match step by looking only at the tokens it spans.
// kind matters only for transpositions; everything else follows from the
// two spans, either of which may be empty.
func Classify(kind OpKind, orig, cor []Features) Category {
	if kind == Transposition {
		return WordOrder
	}
	if len(orig) == 0 && len(cor) == 0 {
		return Other
	}
	for _, t := range orig {
		if t.Text() == "" {
			return Other
		}
	}
	for _, t := range cor {
		if t.Text() == "" {
			return Other
		}
	}

	if len(orig) > 0 && len(cor) > 0 {
		if squash(joinTexts(orig, "")) == squash(joinTexts(cor, "")) {
			return Orthography
		}
		if allPunct(orig) && allPunct(cor) {
			return Punctuation
		}
	}

	switch {
	case len(orig) == 0:
		return refined(KindMissing, spanPOS(cor))
	case len(cor) == 0:
		return refined(KindUnnecessary, spanPOS(orig))
	}

	if sameLemma(orig, cor) {
		return Morphology
	}
	if missingPOS(orig) || missingPOS(cor) {
		return Other
	}
	if po, pc := spanPOS(orig), spanPOS(cor); po == pc && po != string(Other) {
		return refined(KindReplacement, po)
	}
	return refined(KindReplacement, string(Other))
}

// spanPOS is the single tag shared by every token, PUNCT for punctuation-only
// spans, and OTHER when tags disagree or are missing.
func spanPOS(toks []Features) string {
	if allPunct(toks) {
		return PUNCT
	}
	tag := ""
	for i, t := range toks {
		p := posOf(t)
		if p == "" {
			return string(Other)
		}
		if i == 0 {
			tag = p
		} else if p != tag {
			return string(Other)
		}
	}
	if tag == "" {
		return string(Other)
	}
	return tag
}

func allPunct(toks []Features) bool {
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if !isPunct(t.Text()) {
			return false
		}
	}
	return true
}

func missingPOS(toks []Features) bool {
	for _, t := range toks {
		if strings.TrimSpace(t.POS()) == "" {
			return true
		}
	}
	return false
}

// sameLemma reports whether both spans are single tokens with the same
// non-empty lemma.
func sameLemma(orig, cor []Features) bool {
	if len(orig) != 1 || len(cor) != 1 {
		return false
	}
	lo, lc := orig[0].Lemma(), cor[0].Lemma()
	return lo != "" && fold(lo) == fold(lc)
}
