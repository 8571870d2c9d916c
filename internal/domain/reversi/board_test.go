package reversi

import (
	"testing"
)

func boardWith(cells map[int]Player) Board {
	var b Board
	for idx, p := range cells {
		b[idx] = p
	}
	return b
}

func TestNewBoardLayout(t *testing.T) {
	b := New()

	for idx, want := range map[int]Player{27: White, 36: White, 28: Black, 35: Black} {
		if b[idx] != want {
			t.Errorf("cell %d = %q, want %q", idx, b[idx], want)
		}
	}

	black, white := Score(b)
	if black != 2 || white != 2 {
		t.Errorf("initial score = %d/%d, want 2/2", black, white)
	}
}

func TestLegalMovesMatchIsLegalMove(t *testing.T) {
	boards := []Board{
		New(),
		boardWith(map[int]Player{2: Black, 10: White, 42: White, 34: Black}),
		boardWith(map[int]Player{9: White, 10: White, 11: Black, 49: White, 57: Black}),
	}

	for _, b := range boards {
		for _, p := range []Player{Black, White} {
			moves := LegalMoves(b, p)

			seen := make(map[int]bool, len(moves))
			prev := -1
			for _, m := range moves {
				if m <= prev {
					t.Fatalf("moves for %s not in ascending order: %v", p, moves)
				}
				prev = m
				seen[m] = true
			}

			for i := 0; i < Cells; i++ {
				if IsLegalMove(b, p, i) != seen[i] {
					t.Errorf("player %s index %d: IsLegalMove=%v, enumerated=%v",
						p, i, IsLegalMove(b, p, i), seen[i])
				}
			}
		}
	}
}

func TestInitialLegalMovesForBlack(t *testing.T) {
	got := LegalMoves(New(), Black)
	want := []int{19, 26, 37, 44}

	if len(got) != len(want) {
		t.Fatalf("LegalMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LegalMoves = %v, want %v", got, want)
		}
	}
}

func TestApplyMoveOpeningFlip(t *testing.T) {
	// Black at 19 captures the white disc at 27 and nothing else.
	b := New()
	if !ApplyMove(&b, Black, 19) {
		t.Fatal("expected move 19 to be legal for black")
	}

	if b[19] != Black {
		t.Errorf("cell 19 = %q, want black", b[19])
	}
	if b[27] != Black {
		t.Errorf("cell 27 = %q, want black after flip", b[27])
	}
	black, white := Score(b)
	if black != 4 || white != 1 {
		t.Errorf("score = %d/%d, want 4/1", black, white)
	}
}

func TestApplyMoveRejectsOccupiedAndOutOfRange(t *testing.T) {
	for _, idx := range []int{27, 28, -1, 64, 100} {
		b := New()
		before := b
		if ApplyMove(&b, Black, idx) {
			t.Errorf("ApplyMove(%d) = true, want false", idx)
		}
		if b != before {
			t.Errorf("ApplyMove(%d) mutated the board", idx)
		}
	}
}

func TestApplyMoveIllegalIsNoOp(t *testing.T) {
	b := New()
	for i := 0; i < Cells; i++ {
		if IsLegalMove(b, White, i) {
			continue
		}
		cp := b
		if ApplyMove(&cp, White, i) {
			t.Errorf("illegal index %d applied", i)
		}
		if cp != b {
			t.Errorf("illegal index %d mutated the board", i)
		}
	}
}

func TestDiscConservation(t *testing.T) {
	// Every legal move adds exactly one disc; flips change ownership only.
	b := New()
	player := Black
	for turn := 0; turn < 10; turn++ {
		moves := LegalMoves(b, player)
		if len(moves) == 0 {
			break
		}
		blackBefore, whiteBefore := Score(b)
		if !ApplyMove(&b, player, moves[0]) {
			t.Fatalf("turn %d: enumerated move %d did not apply", turn, moves[0])
		}
		blackAfter, whiteAfter := Score(b)
		if blackAfter+whiteAfter != blackBefore+whiteBefore+1 {
			t.Fatalf("turn %d: disc count went %d -> %d, want +1",
				turn, blackBefore+whiteBefore, blackAfter+whiteAfter)
		}
		player = player.Opponent()
	}
}

func TestNoHorizontalWrapAround(t *testing.T) {
	// White at 8 and black at 9 sit on row 1; a scan from 7 (row 0) with
	// delta +1 crosses the row boundary and must be rejected.
	b := boardWith(map[int]Player{8: White, 9: Black})
	if IsLegalMove(b, Black, 7) {
		t.Error("move at 7 wrapped across the row boundary")
	}

	// Mirror case at the other edge: 55 (row 6) and 54 precede 56 (row 7)
	// by index but sit on a different row, so -1 from 56 must stop.
	b2 := boardWith(map[int]Player{55: White, 54: Black})
	if IsLegalMove(b2, Black, 56) {
		t.Error("move at 56 wrapped across the row boundary")
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("fresh board is not terminal", func(t *testing.T) {
		if got := Evaluate(New()); got != OutcomeNone {
			t.Errorf("Evaluate = %q, want none", got)
		}
	})

	t.Run("full board is terminal", func(t *testing.T) {
		var b Board
		for i := range b {
			if i < 40 {
				b[i] = Black
			} else {
				b[i] = White
			}
		}
		if got := Evaluate(b); got != OutcomeBlack {
			t.Errorf("Evaluate = %q, want black", got)
		}
	})

	t.Run("full board with equal counts draws", func(t *testing.T) {
		var b Board
		for i := range b {
			if i%2 == 0 {
				b[i] = Black
			} else {
				b[i] = White
			}
		}
		if got := Evaluate(b); got != OutcomeDraw {
			t.Errorf("Evaluate = %q, want draw", got)
		}
	})

	t.Run("no moves for either side is terminal despite empty cells", func(t *testing.T) {
		// One colour only: neither side can bracket anything.
		var b Board
		for i := 1; i < Cells; i++ {
			b[i] = Black
		}
		if got := Evaluate(b); got != OutcomeBlack {
			t.Errorf("Evaluate = %q, want black", got)
		}
	})
}
