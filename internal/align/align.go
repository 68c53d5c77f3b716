package align

// OpKind is the type of an atomic alignment step. The declaration order is
// also the tie-break preference between equally cheap steps.
type OpKind uint8

const (
	Match OpKind = iota
	Substitution
	Transposition
	Insertion
	Deletion
)

func (k OpKind) String() string {
	switch k {
	case Match:
		return "M"
	case Substitution:
		return "S"
	case Transposition:
		return "T"
	case Insertion:
		return "I"
	case Deletion:
		return "D"
	}
	return "?"
}

func (k OpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op is one atomic edit covering orig[OStart:OEnd] and cor[CStart:CEnd].
type Op struct {
	Kind   OpKind `json:"op"`
	OStart int    `json:"o_start"`
	OEnd   int    `json:"o_end"`
	CStart int    `json:"c_start"`
	CEnd   int    `json:"c_end"`
}

// Alignment is the result of aligning one sentence pair.
type Alignment struct {
	Cost float64
	Ops  []Op
}

// choose returns the cheapest candidate. Candidates come in priority order
// (match or substitution, transposition, insertion, deletion) and a later one
// wins only when cheaper by more than tieEpsilon.
func choose(cands []cell) cell {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.cost < best.cost-tieEpsilon {
			best = c
		}
	}
	return best
}

// Align fills the edit-distance grid for orig against cor and backtraces the
// cheapest path. The grid lives only for the duration of the call.
func (c CostModel) Align(orig, cor []Features) Alignment {
	n, m := len(orig), len(cor)
	g := newGrid(n+1, m+1)

	for i := 1; i <= n; i++ {
		*g.at(i, 0) = cell{cost: g.at(i-1, 0).cost + c.Deletion(orig[i-1]), op: Deletion}
	}
	for j := 1; j <= m; j++ {
		*g.at(0, j) = cell{cost: g.at(0, j-1).cost + c.Insertion(cor[j-1]), op: Insertion}
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			a, b := orig[i-1], cor[j-1]
			var cands [4]cell
			cands[0] = cell{cost: g.at(i-1, j-1).cost + c.Substitution(a, b), op: Substitution}
			if a.Text() == b.Text() {
				cands[0].op = Match
			}
			k := 1
			if i > 1 && j > 1 {
				if t, ok := c.Transposition(orig[i-2], a, cor[j-2], b); ok {
					cands[k] = cell{cost: g.at(i-2, j-2).cost + t, op: Transposition}
					k++
				}
			}
			cands[k] = cell{cost: g.at(i, j-1).cost + c.Insertion(b), op: Insertion}
			cands[k+1] = cell{cost: g.at(i-1, j).cost + c.Deletion(a), op: Deletion}
			*g.at(i, j) = choose(cands[:k+2])
		}
	}

	return Alignment{Cost: g.at(n, m).cost, Ops: backtrace(&g, n, m)}
}
