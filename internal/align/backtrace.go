package align

// backtrace follows backpointers from (n,m) to the origin and returns the
// atomic ops in left-to-right order.
func backtrace(g *grid, n, m int) []Op {
	ops := make([]Op, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch k := g.at(i, j).op; k {
		case Match, Substitution:
			ops = append(ops, Op{Kind: k, OStart: i - 1, OEnd: i, CStart: j - 1, CEnd: j})
			i, j = i-1, j-1
		case Transposition:
			ops = append(ops, Op{Kind: k, OStart: i - 2, OEnd: i, CStart: j - 2, CEnd: j})
			i, j = i-2, j-2
		case Insertion:
			ops = append(ops, Op{Kind: k, OStart: i, OEnd: i, CStart: j - 1, CEnd: j})
			j--
		case Deletion:
			ops = append(ops, Op{Kind: k, OStart: i - 1, OEnd: i, CStart: j, CEnd: j})
			i--
		}
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}
