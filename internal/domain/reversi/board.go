package reversi

// Player occupies a board cell. The zero value marks an empty cell.
type Player string

const (
	None  Player = ""
	Black Player = "black"
	White Player = "white"
)

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	if p == White {
		return Black
	}
	return None
}

// Outcome of a finished game; None while the game is still running.
type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeBlack Outcome = "black"
	OutcomeWhite Outcome = "white"
	OutcomeDraw  Outcome = "draw"
)

const (
	Size  = 8
	Cells = Size * Size
)

// Board is the 8x8 grid in row-major order, index = row*8 + col.
type Board [Cells]Player

// Eight compass rays as index deltas.
var directions = [8]int{-9, -8, -7, -1, 1, 7, 8, 9}

// New returns the standard starting position: white on 27/36,
// black on 28/35, black to move.
func New() Board {
	var b Board
	b[27], b[36] = White, White
	b[28], b[35] = Black, Black
	return b
}

// inSameRay reports whether current is still on the ray cast from start
// along delta. Index bounds alone are not enough: a ±1, ±7 or ±9 step can
// cross a row boundary and land on a legal index of the wrong row, so the
// column (and for horizontal steps the row) must be compared as well.
func inSameRay(start, current, delta int) bool {
	startRow, startCol := start/Size, start%Size
	curRow, curCol := current/Size, current%Size

	switch delta {
	case -9, 7: // up-left, down-left
		return curCol < startCol
	case -7, 9: // up-right, down-right
		return curCol > startCol
	case -8, 8: // vertical
		return curCol == startCol
	case -1, 1: // horizontal
		return curRow == startRow
	default:
		return false
	}
}

// IsLegalMove reports whether placing p at idx captures at least one
// opposing run in some direction.
func IsLegalMove(b Board, p Player, idx int) bool {
	if idx < 0 || idx >= Cells || b[idx] != None {
		return false
	}
	opponent := p.Opponent()

	for _, delta := range directions {
		cur := idx + delta
		seenOpponent := false

		for cur >= 0 && cur < Cells && inSameRay(idx, cur, delta) {
			if b[cur] == None {
				break
			}
			if b[cur] == opponent {
				seenOpponent = true
				cur += delta
				continue
			}
			// own disc closes the run
			if seenOpponent {
				return true
			}
			break
		}
	}
	return false
}

// ApplyMove places p at idx and flips every captured run. The move is
// re-validated first: an illegal index leaves the board untouched and
// returns false, which callers treat as a no-op rather than an error.
func ApplyMove(b *Board, p Player, idx int) bool {
	if !IsLegalMove(*b, p, idx) {
		return false
	}

	b[idx] = p

	for _, delta := range directions {
		cur := idx + delta
		var run []int

		for cur >= 0 && cur < Cells && inSameRay(idx, cur, delta) {
			if b[cur] == None {
				break
			}
			if b[cur] == p {
				for _, f := range run {
					b[f] = p
				}
				break
			}
			run = append(run, cur)
			cur += delta
		}
	}
	return true
}

// LegalMoves returns every legal index for p in ascending order.
func LegalMoves(b Board, p Player) []int {
	moves := make([]int, 0, 16)
	for i := 0; i < Cells; i++ {
		if IsLegalMove(b, p, i) {
			moves = append(moves, i)
		}
	}
	return moves
}

// Score counts discs per side.
func Score(b Board) (black, white int) {
	for _, cell := range b {
		switch cell {
		case Black:
			black++
		case White:
			white++
		}
	}
	return black, white
}

// Evaluate classifies the board. The game is terminal when no cell is
// empty or when neither side has a legal move; the side with strictly
// more discs wins, equal counts draw. Controllers must call this after
// every move, before switching turns.
func Evaluate(b Board) Outcome {
	black, white := Score(b)
	empty := Cells - black - white

	if empty != 0 && (len(LegalMoves(b, Black)) != 0 || len(LegalMoves(b, White)) != 0) {
		return OutcomeNone
	}

	switch {
	case black > white:
		return OutcomeBlack
	case white > black:
		return OutcomeWhite
	default:
		return OutcomeDraw
	}
}
