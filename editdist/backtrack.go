package editdist

import "fmt"

// backtrack walks from (n,m) back to (0,0) and rebuilds the edit script.
//
// At every cell the candidates are tried in a fixed order and the first one
// reproducing the cell value wins. The order is the tie-break policy:
//  1. diagonal      — match (pair only) or substitution (pair + record)
//  2. up            — deletion
//  3. left          — insertion
//  4. backward move — smallest k first, pair only
//  5. forward move  — smallest k first, pair only
//  6. swap          — smallest k first, two crossed pairs
//
// Whatever remains once a border is reached becomes insertions (row 0) or
// deletions (column 0). Records are only emitted for steps that were charged.
func (a *aligner) backtrack() (*Result, error) {
	g := a.g
	var ops []Operation
	var pairs []Pair

	i, j := a.n, a.m
	for i > 0 && j > 0 {
		cur := g.at(i, j)

		// 1. diagonal
		if sub := a.subCost(i, j); cur == g.at(i-1, j-1)+sub {
			pairs = append(pairs, Pair{Source: i - 1, Target: j - 1})
			if sub != 0 {
				ops = append(ops, substitutionOp(i-1, j-1))
			}
			i, j = i-1, j-1
			continue
		}

		// 2. up
		if del := a.delCost(j); cur == g.at(i-1, j)+del {
			if del != 0 {
				ops = append(ops, deletionOp(i-1, j))
			}
			i--
			continue
		}

		// 3. left
		if ins := a.insCost(j - 1); cur == g.at(i, j-1)+ins {
			if ins != 0 {
				ops = append(ops, insertionOp(i, j-1))
			}
			j--
			continue
		}

		if !a.moves {
			return nil, stuck(i, j, cur)
		}

		// 4. backward move
		if k := a.findBackward(i, j, cur); k > 0 {
			pairs = append(pairs, Pair{Source: i - 1, Target: j - 1 - k})
			i, j = i-1, j-1-k
			continue
		}

		// 5. forward move: the pair names target[j+k-1], the note the guard matched.
		if k := a.findForward(i, j, cur); k > 0 {
			pairs = append(pairs, Pair{Source: i - 1, Target: j + k - 1})
			i, j = i-1, j+k
			continue
		}

		// 6. swap
		if k := a.findSwap(i, j, cur); k > 0 {
			pairs = append(pairs,
				Pair{Source: i - 1, Target: j - 1 - k},
				Pair{Source: i - 1 - k, Target: j - 1},
			)
			i, j = i-1-k, j-1-k
			continue
		}

		return nil, stuck(i, j, cur)
	}

	// Unconsumed target prefix: insertions along row i (= 0).
	for ; j > 0; j-- {
		if g.at(i, j) != g.at(i, j-1) {
			ops = append(ops, insertionOp(i, j-1))
		}
	}
	// Unconsumed source prefix: deletions along column 0.
	for ; i > 0; i-- {
		if g.at(i, j) != g.at(i-1, j) {
			ops = append(ops, deletionOp(i-1, j))
		}
	}

	reverseOps(ops)
	reversePairs(pairs)

	return &Result{Ops: ops, Aligned: pairs, Cost: g.at(a.n, a.m)}, nil
}

// findBackward returns the smallest k whose backward move reproduces cur, or 0.
func (a *aligner) findBackward(i, j int, cur int64) int {
	for k := 1; k <= MaxMoveSwap; k++ {
		if a.canBackward(i, j, k) && cur == a.g.at(i-1, j-1-k)+MoveSwapCost {
			return k
		}
	}

	return 0
}

// findForward returns the smallest k whose forward move reproduces cur, or 0.
func (a *aligner) findForward(i, j int, cur int64) int {
	for k := 1; k <= MaxMoveSwap; k++ {
		if a.canForward(i, j, k) && cur == a.g.at(i-1, j+k)+MoveSwapCost {
			return k
		}
	}

	return 0
}

// findSwap returns the smallest k whose swap reproduces cur, or 0.
func (a *aligner) findSwap(i, j int, cur int64) int {
	for k := 1; k <= MaxMoveSwap; k++ {
		if a.canSwap(i, j, k) && cur == a.g.at(i-1-k, j-1-k)+MoveSwapCost {
			return k
		}
	}

	return 0
}

// stuck builds the internal error for a cell no candidate explains.
func stuck(i, j int, cur int64) error {
	return fmt.Errorf("%w at grid[%d,%d]=%d", ErrBacktrackStuck, i, j, cur)
}

func substitutionOp(s, t int) Operation {
	return Operation{Kind: Substitution, SourceIndex: s, TargetIndex: intPtr(t), Pos: s, TPos: t}
}

func deletionOp(s, tPos int) Operation {
	return Operation{Kind: Deletion, SourceIndex: s, Pos: s, TPos: tPos}
}

// insertionOp records the insertion of target[t] while standing in row i.
// The source anchor is the last consumed source note.
func insertionOp(i, t int) Operation {
	return Operation{Kind: Insertion, SourceIndex: max(i-1, 0), TargetIndex: intPtr(t), Pos: i, TPos: t}
}

func intPtr(v int) *int { return &v }

func reverseOps(ops []Operation) {
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
}

func reversePairs(p []Pair) {
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}
