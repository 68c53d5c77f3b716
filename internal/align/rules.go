package align

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Condition is the extra test a rule applies to the two ops at a boundary.
type Condition string

const (
	Always       Condition = "always"
	FunctionWord Condition = "function-word"
	SharedToken  Condition = "shared-token"
	JoinedText   Condition = "joined-text"
)

// Outcome decides the category of a span grown by a rule.
type Outcome string

const (
	KeepLeft   Outcome = "left"
	KeepRight  Outcome = "right"
	Reclassify Outcome = "reclassify"
)

// Rule merges a boundary whose left op has kind Left and right op has kind
// Right, provided When holds.
type Rule struct {
	Left   Kind      `yaml:"left" json:"left"`
	Right  Kind      `yaml:"right" json:"right"`
	When   Condition `yaml:"when" json:"when"`
	Result Outcome   `yaml:"result" json:"result"`
}

// RuleTable is the ordered adjacency table of the rules strategy. The first
// matching rule wins.
type RuleTable struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// DefaultRules returns the built-in table.
func DefaultRules() RuleTable {
	// A swap that also fixes the case of a swapped word is already a single
	// transposition, so word order needs no rule here.
	return RuleTable{Rules: []Rule{
		// function word dropped or added next to a replacement
		{Left: KindUnnecessary, Right: KindReplacement, When: FunctionWord, Result: Reclassify},
		{Left: KindMissing, Right: KindReplacement, When: FunctionWord, Result: Reclassify},
		{Left: KindReplacement, Right: KindUnnecessary, When: FunctionWord, Result: Reclassify},
		{Left: KindReplacement, Right: KindMissing, When: FunctionWord, Result: Reclassify},
		// [to eat -> eating], [has go -> went]
		{Left: KindUnnecessary, Right: KindMorphology, When: FunctionWord, Result: KeepRight},
		{Left: KindMissing, Right: KindMorphology, When: FunctionWord, Result: KeepRight},
		{Left: KindMorphology, Right: KindUnnecessary, When: FunctionWord, Result: KeepLeft},
		{Left: KindMorphology, Right: KindMissing, When: FunctionWord, Result: KeepLeft},
		// split or joined words: [a cat -> acat], [sub way -> subway]
		{Left: KindReplacement, Right: KindUnnecessary, When: JoinedText, Result: Reclassify},
		{Left: KindReplacement, Right: KindMissing, When: JoinedText, Result: Reclassify},
		{Left: KindUnnecessary, Right: KindReplacement, When: JoinedText, Result: Reclassify},
		{Left: KindMissing, Right: KindReplacement, When: JoinedText, Result: Reclassify},
		{Left: KindOrthography, Right: KindUnnecessary, When: JoinedText, Result: Reclassify},
		{Left: KindOrthography, Right: KindMissing, When: JoinedText, Result: Reclassify},
	}}
}

// ParseRules decodes a YAML rule table, rejecting unknown fields.
func ParseRules(data []byte) (RuleTable, error) {
	var t RuleTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return RuleTable{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	for i := range t.Rules {
		r := &t.Rules[i]
		r.Left = Kind(strings.ToUpper(string(r.Left)))
		r.Right = Kind(strings.ToUpper(string(r.Right)))
		if r.When == "" {
			r.When = Always
		}
		if r.Result == "" {
			r.Result = Reclassify
		}
	}
	if err := t.Validate(); err != nil {
		return RuleTable{}, err
	}
	return t, nil
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleTable{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(data)
}

// Validate checks every rule for known kinds, conditions and results.
func (t RuleTable) Validate() error {
	for i, r := range t.Rules {
		if !knownKinds[r.Left] {
			return &RuleError{Index: i, Field: "left", Message: fmt.Sprintf("unknown kind %q", r.Left)}
		}
		if !knownKinds[r.Right] {
			return &RuleError{Index: i, Field: "right", Message: fmt.Sprintf("unknown kind %q", r.Right)}
		}
		switch r.When {
		case Always, FunctionWord, SharedToken, JoinedText:
		default:
			return &RuleError{Index: i, Field: "when", Message: fmt.Sprintf("unknown condition %q", r.When)}
		}
		switch r.Result {
		case KeepLeft, KeepRight, Reclassify:
		default:
			return &RuleError{Index: i, Field: "result", Message: fmt.Sprintf("unknown result %q", r.Result)}
		}
	}
	return nil
}

// Lexicon answers whether a word is a function word.
type Lexicon interface {
	Contains(word string) bool
}

// WordSet is an immutable, case-insensitive Lexicon.
type WordSet map[string]struct{}

// NewWordSet builds a WordSet from words.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			s[fold(w)] = struct{}{}
		}
	}
	return s
}

func (s WordSet) Contains(word string) bool {
	_, ok := s[fold(word)]
	return ok
}

// Words returns the folded members in sorted order.
func (s WordSet) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// boundary carries what a rule condition may inspect at one merge point.
type boundary struct {
	left, right ClassifiedOp
	orig, cor   []Features
	lex         Lexicon
}

// lookup returns the first rule accepting the boundary.
func (t RuleTable) lookup(b boundary) (Rule, bool) {
	lk, rk := b.left.Category.Kind(), b.right.Category.Kind()
	for _, r := range t.Rules {
		if r.Left != lk || r.Right != rk {
			continue
		}
		if b.holds(r.When) {
			return r, true
		}
	}
	return Rule{}, false
}

func (b boundary) holds(c Condition) bool {
	switch c {
	case Always:
		return true
	case FunctionWord:
		return b.functionWord()
	case SharedToken:
		return b.sharedToken()
	case JoinedText:
		return b.joinedText()
	}
	return false
}

func (b boundary) span(op Op) (o, c []Features) {
	return b.orig[op.OStart:op.OEnd], b.cor[op.CStart:op.CEnd]
}

// functionWord holds when the inserted or deleted side of the boundary is
// made of function words. With no gap op on either side both ops are checked.
func (b boundary) functionWord() bool {
	var toks []Features
	for _, op := range []Op{b.left.Op, b.right.Op} {
		o, c := b.span(op)
		switch op.Kind {
		case Insertion:
			toks = append(toks, c...)
		case Deletion:
			toks = append(toks, o...)
		}
	}
	if toks == nil {
		for _, op := range []Op{b.left.Op, b.right.Op} {
			o, c := b.span(op)
			toks = append(append(toks, o...), c...)
		}
	}
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if !IsFunctionPOS(posOf(t)) && (b.lex == nil || !b.lex.Contains(t.Text())) {
			return false
		}
	}
	return true
}

func (b boundary) sharedToken() bool {
	seen := map[string]bool{}
	o, c := b.span(b.left.Op)
	for _, side := range [][]Features{o, c} {
		for _, t := range side {
			seen[fold(t.Text())] = true
		}
	}
	o, c = b.span(b.right.Op)
	for _, side := range [][]Features{o, c} {
		for _, t := range side {
			if seen[fold(t.Text())] {
				return true
			}
		}
	}
	return false
}

func (b boundary) joinedText() bool {
	strip := strings.NewReplacer("'", "", "-", "")
	o := b.orig[b.left.OStart:b.right.OEnd]
	c := b.cor[b.left.CStart:b.right.CEnd]
	if len(o) == 0 || len(c) == 0 {
		return false
	}
	return strip.Replace(squash(joinTexts(o, ""))) == strip.Replace(squash(joinTexts(c, "")))
}
