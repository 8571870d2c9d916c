package reversi

// ChooseMove picks a move for p with a single-ply greedy heuristic: every
// legal move is simulated on a scratch copy and the one gaining the most
// own discs wins, ties going to the lowest index. Returns ok=false when p
// has no legal move. Deterministic for a given board.
func ChooseMove(b Board, p Player) (idx int, ok bool) {
	moves := LegalMoves(b, p)
	if len(moves) == 0 {
		return 0, false
	}

	before := countOf(b, p)
	best := moves[0]
	bestGain := 0

	for _, move := range moves {
		scratch := b
		ApplyMove(&scratch, p, move)
		gain := countOf(scratch, p) - before
		if gain > bestGain {
			bestGain = gain
			best = move
		}
	}
	return best, true
}

func countOf(b Board, p Player) int {
	n := 0
	for _, cell := range b {
		if cell == p {
			n++
		}
	}
	return n
}
