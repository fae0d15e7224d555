package epd

import (
	"strings"
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

func TestParseFENRoundTrip(t *testing.T) {
	cases := []string{
		engine.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
	}
	for _, fen := range cases {
		e, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if e.Position == nil {
			t.Fatalf("ParseFEN(%q): nil position", fen)
		}
	}
}

func TestParseFENRejectsShortInput(t *testing.T) {
	if _, err := ParseFEN("8/8/8/8/8/8/8/8 w"); err == nil {
		t.Fatalf("expected error for truncated FEN")
	}
}

func TestParseEPDBestMove(t *testing.T) {
	line := `r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - bm Nc3; id "opening.1";`
	e, err := ParseEPD(line)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if e.Id != "opening.1" {
		t.Errorf("Id = %q, want opening.1", e.Id)
	}
	if len(e.BestMove) != 1 {
		t.Fatalf("BestMove = %v, want exactly one move", e.BestMove)
	}
	if got := e.BestMove[0].String(); got != "b1c3" {
		t.Errorf("BestMove[0] = %q, want b1c3", got)
	}
}

func TestParseEPDMultipleOperations(t *testing.T) {
	line := `4k3/8/8/8/8/8/4P3/4K3 w - - bm e2e4; id "pawn push"; c0 "e2e4=10, Ke2=1";`
	e, err := ParseEPD(line)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if !strings.Contains(e.Comment["c0"], "e2e4=10") {
		t.Errorf("Comment[c0] = %q, missing candidate", e.Comment["c0"])
	}
}

func TestSplitOperationsRespectsQuotes(t *testing.T) {
	ops := splitOperations(`id "a; b"; bm e4;`)
	if len(ops) != 2 {
		t.Fatalf("splitOperations returned %d ops, want 2: %v", len(ops), ops)
	}
}

func TestParseSTSCandidates(t *testing.T) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	cands, err := parseSTSCandidates(pos, "e4=10, d4=8, Nf3=6")
	if err != nil {
		t.Fatalf("parseSTSCandidates: %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3", len(cands))
	}
	if cands[0].Score != 10 || cands[1].Score != 8 || cands[2].Score != 6 {
		t.Errorf("unexpected scores: %+v", cands)
	}
}

func TestRunSTSReportsMaxPoints(t *testing.T) {
	line := `4k3/8/8/8/8/8/4P3/4K3 w - - c0 "e2e4=10, e2e3=2";`
	e, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}
	c0 := e.Comment["c0"]
	cands, err := parseSTSCandidates(e.Position, c0)
	if err != nil {
		t.Fatal(err)
	}
	tt := engine.NewHashTable(1)
	results := RunSTS([]STSCase{{EPD: e, Candidates: cands}}, 20*time.Millisecond, tt)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].MaxPoints != 10 {
		t.Errorf("MaxPoints = %d, want 10", results[0].MaxPoints)
	}
}
