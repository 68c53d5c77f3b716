package align

import "strings"

// ClassifiedOp is an atomic op with its category. Matches carry no category.
type ClassifiedOp struct {
	Op
	Category Category `json:"category,omitempty"`
}

// Edit is one reported correction: orig[OStart:OEnd] becomes Correction,
// which is cor[CStart:CEnd] joined by spaces.
type Edit struct {
	OStart     int      `json:"o_start"`
	OEnd       int      `json:"o_end"`
	CStart     int      `json:"c_start"`
	CEnd       int      `json:"c_end"`
	Category   Category `json:"category"`
	Correction string   `json:"correction"`
}

// ClassifyOps labels every non-match op of an alignment.
func ClassifyOps(ops []Op, orig, cor []Features) []ClassifiedOp {
	out := make([]ClassifiedOp, len(ops))
	for i, op := range ops {
		out[i] = ClassifiedOp{Op: op}
		if op.Kind != Match {
			out[i].Category = Classify(op.Kind, orig[op.OStart:op.OEnd], cor[op.CStart:op.CEnd])
		}
	}
	return out
}

// joinFunc decides whether next extends the span that currently ends with
// prev, and what the span's category becomes.
type joinFunc func(span Edit, prev, next ClassifiedOp) (Category, bool)

// Merge groups adjacent non-match ops according to s. Matches only separate
// spans. rules and lex are consulted by the Rules strategy alone.
func Merge(s Strategy, ops []ClassifiedOp, orig, cor []Features, rules RuleTable, lex Lexicon) []Edit {
	var join joinFunc
	switch s {
	case AllSplit:
		join = joinNever
	case AllMerge:
		join = joinAny
	case AllEqual:
		join = joinEqual
	case Rules:
		join = joinRules(rules, orig, cor, lex)
	default:
		panic("align: unhandled strategy " + s.String())
	}
	return group(ops, cor, join)
}

func joinNever(Edit, ClassifiedOp, ClassifiedOp) (Category, bool) { return "", false }

func joinAny(span Edit, _, next ClassifiedOp) (Category, bool) {
	if span.Category == next.Category {
		return span.Category, true
	}
	return MultiEdit, true
}

func joinEqual(span Edit, prev, next ClassifiedOp) (Category, bool) {
	if prev.Category == next.Category && span.Category == next.Category {
		return span.Category, true
	}
	return "", false
}

func joinRules(rules RuleTable, orig, cor []Features, lex Lexicon) joinFunc {
	return func(span Edit, prev, next ClassifiedOp) (Category, bool) {
		if c, ok := joinEqual(span, prev, next); ok {
			return c, true
		}
		r, ok := rules.lookup(boundary{left: prev, right: next, orig: orig, cor: cor, lex: lex})
		if !ok {
			return "", false
		}
		switch r.Result {
		case KeepLeft:
			return span.Category, true
		case KeepRight:
			return next.Category, true
		}
		kind := Substitution
		if prev.Kind == Transposition && next.Kind == Transposition {
			kind = Transposition
		}
		return Classify(kind, orig[span.OStart:next.OEnd], cor[span.CStart:next.CEnd]), true
	}
}

// group walks ops left to right, growing a span while join accepts each
// boundary between two adjacent non-match ops.
func group(ops []ClassifiedOp, cor []Features, join joinFunc) []Edit {
	var (
		out  []Edit
		span Edit
		open bool
		prev ClassifiedOp
	)
	flush := func() {
		if open {
			span.Correction = strings.Join(Texts(cor[span.CStart:span.CEnd]), " ")
			out = append(out, span)
			open = false
		}
	}
	for _, op := range ops {
		if op.Kind == Match {
			flush()
			continue
		}
		if open {
			if c, ok := join(span, prev, op); ok {
				span.OEnd, span.CEnd, span.Category = op.OEnd, op.CEnd, c
				prev = op
				continue
			}
			flush()
		}
		span = Edit{OStart: op.OStart, OEnd: op.OEnd, CStart: op.CStart, CEnd: op.CEnd, Category: op.Category}
		open, prev = true, op
	}
	flush()
	return out
}
