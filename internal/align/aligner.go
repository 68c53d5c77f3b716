// Package align turns an original/corrected token pair into classified,
// merged edit spans.
//
// The pipeline is fixed: CostModel prices steps, Align fills and backtraces
// the edit-distance grid, Classify labels each atomic op and Merge groups
// adjacent ops by the selected Strategy. An Aligner bundles the immutable
// configuration and is safe for concurrent use.
package align

import (
	"fmt"
	"strconv"
	"strings"

	"m2align/pkg/options"
)

type Aligner struct {
	cost     CostModel
	strategy Strategy
	rules    RuleTable
	lexicon  Lexicon
}

// Result is everything computed for one sentence pair.
type Result struct {
	Cost  float64        `json:"cost"`
	Ops   []ClassifiedOp `json:"ops"`
	Edits []Edit         `json:"edits"`
}

// New validates the options and builds an Aligner. Configuration errors
// surface here, before any sentence is processed.
func New(opts ...options.Options) (*Aligner, error) {
	o := options.DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	strategy, err := ParseStrategy(o.Merge)
	if err != nil {
		return nil, err
	}
	cost, err := NewCostModel(o.Levenshtein, o.CaseCost, o.TransposeWeight)
	if err != nil {
		return nil, err
	}
	rules := DefaultRules()
	if o.RulesFile != "" {
		if rules, err = LoadRules(o.RulesFile); err != nil {
			return nil, err
		}
	}
	return &Aligner{cost: cost, strategy: strategy, rules: rules, lexicon: NewWordSet(o.FunctionWords...)}, nil
}

// WithRules returns a copy of a using t as its merge rule table.
func (a *Aligner) WithRules(t RuleTable) (*Aligner, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	c := *a
	c.rules = t
	return &c, nil
}

// WithLexicon returns a copy of a that consults lex for function words.
func (a *Aligner) WithLexicon(lex Lexicon) *Aligner {
	c := *a
	c.lexicon = lex
	return &c
}

// Variant returns a copy of a using strategy s and, when plain is set,
// unit-cost Levenshtein.
func (a *Aligner) Variant(s Strategy, plain bool) (*Aligner, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
	c := *a
	c.strategy = s
	c.cost.plain = plain
	return &c, nil
}

// Fingerprint canonically describes every setting that affects Annotate:
// strategy, cost mode and weights, the rule table and the lexicon words.
// Aligners with equal fingerprints return equal results for equal input.
// A lexicon without a Words method is identified by its type only.
func (a *Aligner) Fingerprint() string {
	var b strings.Builder
	b.WriteString(a.strategy.String())
	b.WriteString("|plain=" + strconv.FormatBool(a.cost.plain))
	b.WriteString("|case=" + strconv.FormatFloat(a.cost.caseCost, 'g', -1, 64))
	b.WriteString("|swap=" + strconv.FormatFloat(a.cost.transposeWeight, 'g', -1, 64))
	b.WriteString("|rules=")
	for _, r := range a.rules.Rules {
		fmt.Fprintf(&b, "%s>%s:%s:%s;", r.Left, r.Right, r.When, r.Result)
	}
	b.WriteString("|lexicon=")
	switch lex := a.lexicon.(type) {
	case nil:
	case interface{ Words() []string }:
		b.WriteString(strings.Join(lex.Words(), ","))
	default:
		fmt.Fprintf(&b, "%T", lex)
	}
	return b.String()
}

func (a *Aligner) Strategy() Strategy { return a.strategy }
func (a *Aligner) Plain() bool        { return a.cost.Plain() }
func (a *Aligner) Rules() RuleTable   { return a.rules }
func (a *Aligner) Cost() CostModel    { return a.cost }

// Annotate aligns orig with cor and returns the alignment cost, the
// classified atomic ops and the merged edits.
func (a *Aligner) Annotate(orig, cor []Features) Result {
	al := a.cost.Align(orig, cor)
	ops := ClassifyOps(al.Ops, orig, cor)
	return Result{
		Cost:  al.Cost,
		Ops:   ops,
		Edits: Merge(a.strategy, ops, orig, cor, a.rules, a.lexicon),
	}
}

// Edits returns only the merged edits. An empty result means the pair needs
// no correction and the caller should write a noop record.
func (a *Aligner) Edits(orig, cor []Features) []Edit {
	return a.Annotate(orig, cor).Edits
}
