package align

import "strings"

// Features is the read-only view the aligner needs of an annotated token.
// Any annotation engine can supply tokens by implementing it.
type Features interface {
	Text() string
	POS() string
	Lemma() string
}

// Dependent is implemented by tokens that also carry a dependency relation.
type Dependent interface {
	Dep() string
}

// Token is the plain carrier for one annotated token.
type Token struct {
	Form  string `json:"text"`
	Tag   string `json:"pos,omitempty"`
	Base  string `json:"lemma,omitempty"`
	Rel   string `json:"dep,omitempty"`
	Index int    `json:"-"`
}

func (t Token) Text() string  { return t.Form }
func (t Token) POS() string   { return t.Tag }
func (t Token) Lemma() string { return t.Base }
func (t Token) Dep() string   { return t.Rel }

// Universal part-of-speech tags used by the cost model and classifier.
const (
	ADJ   = "ADJ"
	ADP   = "ADP"
	ADV   = "ADV"
	AUX   = "AUX"
	CCONJ = "CCONJ"
	CONJ  = "CONJ"
	DET   = "DET"
	INTJ  = "INTJ"
	NOUN  = "NOUN"
	NUM   = "NUM"
	PART  = "PART"
	PRON  = "PRON"
	PROPN = "PROPN"
	PUNCT = "PUNCT"
	SCONJ = "SCONJ"
	SYM   = "SYM"
	VERB  = "VERB"
	X     = "X"
)

var contentPOS = map[string]bool{ADJ: true, ADV: true, NOUN: true, PROPN: true, VERB: true}

var functionPOS = map[string]bool{
	ADP: true, AUX: true, CCONJ: true, CONJ: true, DET: true, PART: true, PRON: true, SCONJ: true,
}

// IsFunctionPOS reports whether tag names a closed word class.
func IsFunctionPOS(tag string) bool { return functionPOS[strings.ToUpper(tag)] }

// posOf returns the normalized tag; verbs attached as auxiliaries count as AUX.
func posOf(t Features) string {
	tag := strings.ToUpper(strings.TrimSpace(t.POS()))
	if tag == VERB {
		if d, ok := t.(Dependent); ok {
			switch strings.ToLower(d.Dep()) {
			case "aux", "auxpass":
				return AUX
			}
		}
	}
	return tag
}

// Texts returns the surface forms of toks.
func Texts(toks []Features) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text()
	}
	return out
}

// Words wraps bare surface forms as tokens without linguistic features.
func Words(words ...string) []Features {
	out := make([]Features, len(words))
	for i, w := range words {
		out[i] = Token{Form: w, Index: i}
	}
	return out
}

// AsFeatures converts a token slice to the interface slice the aligner consumes.
func AsFeatures(toks []Token) []Features {
	out := make([]Features, len(toks))
	for i := range toks {
		out[i] = toks[i]
	}
	return out
}
