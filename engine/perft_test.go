// perft_test.go checks the move generator against known-correct leaf
// counts for the standard perft suite, at depths shallow enough to run
// quickly; deeper depths are run through cmd/kestrel-bench perft.
package engine

import "testing"

func TestPerftStartPos(t *testing.T) {
	data := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, d := range data {
		pos, err := PositionFromFEN(FENStartPos)
		if err != nil {
			t.Fatalf("PositionFromFEN: %v", err)
		}
		if got := Perft(pos, d.depth, nil); got != d.nodes {
			t.Errorf("depth %d: got %d nodes, want %d", d.depth, got, d.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	data := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, d := range data {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN: %v", err)
		}
		if got := Perft(pos, d.depth, nil); got != d.nodes {
			t.Errorf("depth %d: got %d nodes, want %d", d.depth, got, d.nodes)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	data := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, d := range data {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN: %v", err)
		}
		if got := Perft(pos, d.depth, nil); got != d.nodes {
			t.Errorf("depth %d: got %d nodes, want %d", d.depth, got, d.nodes)
		}
	}
}

func TestPerftTableAgreesWithUnmemoized(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	table := NewPerftTable(16)
	got := Perft(pos, 4, table)
	if got != 197281 {
		t.Errorf("memoized perft: got %d, want 197281", got)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	total, divide := PerftDivide(pos, 3, nil)
	var sum uint64
	for _, n := range divide {
		sum += n
	}
	if sum != total {
		t.Errorf("divide sums to %d, total is %d", sum, total)
	}
	if total != 8902 {
		t.Errorf("got %d, want 8902", total)
	}
}
