package align

import "fmt"

// CostModel prices single alignment steps. It is immutable once built and
// may be shared by any number of concurrent alignments.
type CostModel struct {
	plain           bool
	caseCost        float64
	transposeWeight float64
}

// NewCostModel builds a cost model. plain selects unit-cost Levenshtein;
// otherwise substitutions are discounted by lemma, POS and character overlap
// and adjacent swaps are recognized as transpositions.
func NewCostModel(plain bool, caseCost, transposeWeight float64) (CostModel, error) {
	if caseCost <= 0 || caseCost >= 1 {
		return CostModel{}, fmt.Errorf("%w: case cost %v not in (0,1)", ErrInvalidWeight, caseCost)
	}
	if transposeWeight <= 0 || transposeWeight >= 1 {
		return CostModel{}, fmt.Errorf("%w: transpose weight %v not in (0,1)", ErrInvalidWeight, transposeWeight)
	}
	return CostModel{plain: plain, caseCost: caseCost, transposeWeight: transposeWeight}, nil
}

// Plain reports whether the model is unit-cost Levenshtein.
func (c CostModel) Plain() bool { return c.plain }

func (c CostModel) Insertion(Features) float64 { return gapCost }

func (c CostModel) Deletion(Features) float64 { return gapCost }

// Substitution returns the cost of replacing a with b, in [0,1].
func (c CostModel) Substitution(a, b Features) float64 {
	at, bt := a.Text(), b.Text()
	if at == bt {
		return 0
	}
	if c.plain {
		return 1
	}
	if squash(at) == squash(bt) {
		return c.caseCost
	}
	cost := charWeight * charDistance(at, bt)
	if la, lb := a.Lemma(), b.Lemma(); la == "" || lb == "" || fold(la) != fold(lb) {
		cost += lemmaCost
	}
	pa, pb := posOf(a), posOf(b)
	switch {
	case pa != "" && pa == pb:
	case contentPOS[pa] && contentPOS[pb]:
		cost += contentPOSCost
	default:
		cost += posCost
	}
	return cost
}

// Transposition prices the swap a1 a2 -> b1 b2 where a1~b2 and a2~b1.
// ok is false in plain mode or when the pair is not a swap.
func (c CostModel) Transposition(a1, a2, b1, b2 Features) (cost float64, ok bool) {
	if c.plain || !isAdjacentSwap(a1, a2, b1, b2) {
		return 0, false
	}
	return c.transposeWeight * (c.Substitution(a1, b1) + c.Substitution(a2, b2)), true
}

// isAdjacentSwap reports whether b1 b2 is a2 a1 up to case, with a1 and a2
// distinct so that a plain match is never mistaken for a swap.
func isAdjacentSwap(a1, a2, b1, b2 Features) bool {
	x, y := fold(a1.Text()), fold(a2.Text())
	if x == y {
		return false
	}
	return x == fold(b2.Text()) && y == fold(b1.Text())
}
