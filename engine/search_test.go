package engine

import "testing"

// TestSearchStability checks that searching a quiet position to a fixed
// depth twice, starting from independent Position/Search/HashTable state
// each time, returns the same best move.
func TestSearchStability(t *testing.T) {
	const fen = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3"

	play := func() Move {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN: %v", err)
		}
		tt := NewHashTable(1)
		s := NewSearch(pos, tt, NulLogger{})
		tc := NewTimeControl(pos)
		tc.Depth = 4
		tc.Infinite = true
		move, _ := s.Play(tc)
		return move
	}

	first := play()
	second := play()
	if first != second {
		t.Errorf("search is not stable: first run picked %v, second run picked %v", first, second)
	}
	if first == NullMove {
		t.Errorf("expected a legal move, got NullMove")
	}
}

// TestSearchFindsMateInOne checks a textbook back-rank mate: white's rook
// moves to e8, the black king boxed in by its own pawns on f7/g7/h7 has no
// legal reply.
func TestSearchFindsMateInOne(t *testing.T) {
	const fen = "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1"
	pos, err := PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	tt := NewHashTable(1)
	s := NewSearch(pos, tt, NulLogger{})
	tc := NewTimeControl(pos)
	tc.Depth = 3
	tc.Infinite = true
	move, score := s.Play(tc)

	want, err := pos.UCIToMove("e1e8")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	if move != want {
		t.Errorf("expected mating move %v, got %v", want, move)
	}
	if score < KnownWinScore {
		t.Errorf("expected a known-win (mate) score, got %d", score)
	}
}

// TestRepetitionDetection replays a shuffling line that returns to the
// start position three times over (the position recurs four times
// counting the start itself) and checks IsThreeFoldRepetition flags it,
// the precondition the search's repetition-aware scoring relies on.
func TestRepetitionDetection(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for cycle := 0; cycle < 3; cycle++ {
		for _, m := range shuffle {
			mv, err := pos.UCIToMove(m)
			if err != nil {
				t.Fatalf("UCIToMove(%q): %v", m, err)
			}
			pos.MakeMove(mv)
		}
	}

	// Twelve reversible plies: halfmove clock 12, fullmove number 7.
	if want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 12 7"; pos.String() != want {
		t.Fatalf("shuffle did not return to the start position: got %q", pos.String())
	}
	if !pos.IsThreeFoldRepetition() {
		t.Errorf("expected IsThreeFoldRepetition after three full shuffle cycles")
	}
}

// TestSearchRepetitionAwareScoring gives black a lone king against white's
// king and queen, so every black move is badly lost except one that walks
// into a position already flagged as twice-repeated on the game path. The
// repetition rule scores that branch exactly 0, which black (rationally
// preferring a draw to being down a queen) should therefore pick as its
// best line, pulling the node's negamax score up to 0 instead of the
// deeply negative score a queen deficit would otherwise produce.
func TestSearchRepetitionAwareScoring(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/Q3K3 b - - 0 1"
	pos, err := PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	tt := NewHashTable(1)
	s := NewSearch(pos, tt, NulLogger{})

	repeatMove, err := pos.UCIToMove("e8d8")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	pos.MakeMove(repeatMove)
	s.gameRepeats[pos.Zobrist] = 2
	pos.UnmakeMove(repeatMove)

	score := s.negamax(-InfinityScore, InfinityScore, 3)
	if score != 0 {
		t.Errorf("expected the repetition branch to pull the score to 0, got %d", score)
	}
}

// TestSearchDoubleTwoRepetitionLookahead sets up the same losing-queen
// scenario as TestSearchRepetitionAwareScoring, but this time black's
// saving move (e8d8) does not itself reach an already-twice-seen position —
// only white's reply to it does. With the game path already in a
// double-two configuration (two distinct positions each seen twice), the
// one-ply lookahead must still catch that e8d8 walks into a forced third
// occurrence one ply later, and score that branch 0.
func TestSearchDoubleTwoRepetitionLookahead(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/Q3K3 b - - 0 1"
	pos, err := PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	tt := NewHashTable(1)
	s := NewSearch(pos, tt, NulLogger{})

	// Two unrelated positions already twice-repeated on the game path, so
	// the double-two configuration is in effect regardless of what black
	// does here.
	s.gameRepeats[0xdeadbeef] = 2
	s.gameRepeats[0xfeedface] = 2
	if !s.gameRepeatsDoubleTwo() {
		t.Fatalf("expected gameRepeatsDoubleTwo to report true with two twice-seen keys")
	}

	savingMove, err := pos.UCIToMove("e8d8")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	pos.MakeMove(savingMove)

	replyMove, err := pos.UCIToMove("a1a2")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	pos.MakeMove(replyMove)
	s.gameRepeats[pos.Zobrist] = 2 // white's reply would be a third occurrence
	pos.UnmakeMove(replyMove)

	if s.gameRepeats[pos.Zobrist] >= 2 {
		t.Fatalf("test setup bug: e8d8's own resulting position must not already be twice-seen")
	}
	if !s.repetitionLookahead(pos) {
		t.Fatalf("expected repetitionLookahead to find white's a1a2 reaching a third occurrence")
	}
	pos.UnmakeMove(savingMove)

	s.doubleTwo = true
	score := s.negamax(-InfinityScore, InfinityScore, 3)
	if score != 0 {
		t.Errorf("expected the double-two lookahead to pull the score to 0, got %d", score)
	}
}
