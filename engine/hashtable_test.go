package engine

import "testing"

func TestHashTableStoreProbeRoundTrip(t *testing.T) {
	h := NewHashTable(1)
	key := uint64(0x123456789abcdef0)
	e2 := RankFile(1, 4)
	h.Store(key, MakeMove(e2, SquareE4, FigurePawn), 137, 6, nodeExact, false)

	mv, score, depth, kind, quiet, ok := h.Probe(key)
	if !ok {
		t.Fatalf("expected a hit after Store")
	}
	if mv != MakeMove(e2, SquareE4, FigurePawn) || score != 137 || depth != 6 || kind != nodeExact || quiet {
		t.Errorf("got (%v, %d, %d, %v, %v), want (e2e4, 137, 6, nodeExact, false)", mv, score, depth, kind, quiet)
	}
}

func TestHashTableDepthPreferredReplacement(t *testing.T) {
	h := NewHashTable(1)
	key := uint64(0xdeadbeefcafef00d)
	h.Store(key, NullMove, 100, 10, nodeExact, false)
	h.Store(key, NullMove, 50, 3, nodeUpperBound, false)

	_, score, depth, _, _, ok := h.Probe(key)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if depth != 10 || score != 100 {
		t.Errorf("shallower non-exact store overwrote a deeper entry: got depth %d score %d", depth, score)
	}
}

func TestHashTableClear(t *testing.T) {
	h := NewHashTable(1)
	key := uint64(42)
	h.Store(key, NullMove, 1, 1, nodeExact, false)
	h.Clear()
	if _, _, _, _, _, ok := h.Probe(key); ok {
		t.Errorf("expected no hit after Clear")
	}
}

func TestHashTableSizing(t *testing.T) {
	h := NewHashTable(64)
	if got := h.SizeMB(); got < 1 || got > 64 {
		t.Errorf("SizeMB() = %d, want roughly 64 (rounded down to a power of two slot count)", got)
	}
	if 1<<uint(h.Exponent()) != h.Slots() {
		t.Errorf("Exponent() = %d does not satisfy 1<<Exponent() == Slots() (%d)", h.Exponent(), h.Slots())
	}
}
