package options

// DefaultOptions is linguistically enhanced alignment with rule-based merging.
var DefaultOptions = AlignOptions{
	Levenshtein:     false,
	Merge:           "rules",
	CaseCost:        0.1,
	TransposeWeight: 0.5,
}

type AlignOptions struct {
	Levenshtein     bool     // unit-cost Levenshtein instead of the enhanced Damerau-Levenshtein
	Merge           string   // all-split | all-merge | all-equal | rules
	CaseCost        float64  // cost of a case- or whitespace-only substitution
	TransposeWeight float64  // share of the two substitutions charged for a swap
	RulesFile       string   // YAML rule table; empty uses the built-in table
	FunctionWords   []string // extra words treated as function words by the rules
}

type Options interface {
	Apply(options *AlignOptions)
}

type FuncConfig struct {
	ops func(options *AlignOptions)
}

func (w FuncConfig) Apply(conf *AlignOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *AlignOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithLevenshtein() Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.Levenshtein = true
	})
}

func WithMerge(strategy string) Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.Merge = strategy
	})
}

func WithCaseCost(cost float64) Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.CaseCost = cost
	})
}

func WithTransposeWeight(weight float64) Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.TransposeWeight = weight
	})
}

func WithRulesFile(path string) Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.RulesFile = path
	})
}

func WithFunctionWords(words ...string) Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.FunctionWords = append(options.FunctionWords, words...)
	})
}

// WithOriginalBaseline reproduces a plain edit-distance baseline: unit costs
// and no merging at all.
func WithOriginalBaseline() Options {
	return NewFuncOption(func(options *AlignOptions) {
		options.Levenshtein = true
		options.Merge = "all-split"
	})
}
