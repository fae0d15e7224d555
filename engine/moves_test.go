package engine

import "testing"

func TestUCIToMoveAndBack(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mv, err := pos.UCIToMove("e2e4")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	if got := mv.String(); got != "e2e4" {
		t.Errorf("String() = %q, want e2e4", got)
	}
}

func TestUCIToMoveRejectsIllegalMove(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	if _, err := pos.UCIToMove("e2e5"); err == nil {
		t.Errorf("expected an error for an illegal pawn double-jump to e5")
	}
}

func TestUCIToMovePromotionIsLowercase(t *testing.T) {
	pos, err := PositionFromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mv, err := pos.UCIToMove("a7a8q")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	if got := mv.String(); got != "a7a8q" {
		t.Errorf("String() = %q, want a7a8q (lowercase promotion letter)", got)
	}
}

func TestSANToMoveBasic(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	data := []struct {
		san string
		uci string
	}{
		{"e4", "e2e4"},
		{"Nf3", "g1f3"},
		{"Nc3", "b1c3"},
	}
	for _, d := range data {
		mv, err := pos.SANToMove(d.san)
		if err != nil {
			t.Errorf("SANToMove(%q): %v", d.san, err)
			continue
		}
		if got := mv.String(); got != d.uci {
			t.Errorf("SANToMove(%q) = %v, want %v", d.san, got, d.uci)
		}
	}
}

func TestSANToMoveDisambiguatesByFile(t *testing.T) {
	// Two white knights, both able to reach d2: one from b1 (after Nc3 is
	// undone) needs no disambiguation, but with knights on b1 and f3 both
	// able to land on d2, SAN requires the origin file.
	pos, err := PositionFromFEN("4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mv, err := pos.SANToMove("Nbd2")
	if err != nil {
		t.Fatalf("SANToMove(Nbd2): %v", err)
	}
	if got := mv.From().String(); got != "b1" {
		t.Errorf("Nbd2 resolved to origin %v, want b1", got)
	}

	mv, err = pos.SANToMove("Nfd2")
	if err != nil {
		t.Fatalf("SANToMove(Nfd2): %v", err)
	}
	if got := mv.From().String(); got != "f3" {
		t.Errorf("Nfd2 resolved to origin %v, want f3", got)
	}
}

func TestSANToMoveCastling(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mv, err := pos.SANToMove("O-O")
	if err != nil {
		t.Fatalf("SANToMove(O-O): %v", err)
	}
	if got := mv.String(); got != "e1g1" {
		t.Errorf("O-O = %v, want e1g1", got)
	}

	mv, err = pos.SANToMove("O-O-O")
	if err != nil {
		t.Fatalf("SANToMove(O-O-O): %v", err)
	}
	if got := mv.String(); got != "e1c1" {
		t.Errorf("O-O-O = %v, want e1c1", got)
	}
}
