package main

import (
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

// benchPositions is a small fixed suite spanning the opening, a tactical
// middlegame and a king-and-pawn endgame, enough to catch a search
// regression (a sudden node-count or nps collapse) without needing an
// external EPD file.
var benchPositions = []string{
	engine.FENStartPos,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3",
	"8/8/8/4k3/8/4K3/4P3/8 w - - 0 1",
}

// benchCmd runs a fixed-depth search on each benchPositions entry and
// reports aggregate nodes/time/nps, the throughput regression check
// engines traditionally ship as "bench" alongside perft.
type benchCmd struct {
	Depth int `help:"Fixed search depth." default:"8"`
}

func (c *benchCmd) Run() error {
	tt := engine.NewHashTable(64)
	var totalNodes uint64
	start := time.Now()

	for _, fen := range benchPositions {
		pos, err := engine.PositionFromFEN(fen)
		if err != nil {
			return err
		}
		tt.Clear()
		search := engine.NewSearch(pos, tt, &benchLogger{})
		tc := engine.NewTimeControl(pos)
		tc.Depth = c.Depth
		tc.Infinite = true // depth alone bounds the search; no clock allocation
		_, _ = search.Play(tc)
		totalNodes += lastBenchNodes
	}

	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = totalNodes * uint64(time.Second) / uint64(elapsed)
	}
	fmt.Printf("%d positions, depth %d\n", len(benchPositions), c.Depth)
	fmt.Printf("%d nodes, %d ms, %d nps\n", totalNodes, elapsed.Milliseconds(), nps)
	return nil
}

// lastBenchNodes carries the final iteration's node count out of
// benchLogger, the simplest way to read Stats back from engine.Search
// without adding a return value to Search.Play.
var lastBenchNodes uint64

// benchLogger discards PV lines but keeps the most recent Stats snapshot.
type benchLogger struct{}

func (l *benchLogger) BeginSearch() { lastBenchNodes = 0 }
func (l *benchLogger) EndSearch()   {}
func (l *benchLogger) PrintPV(stats engine.Stats, score int32, pv []engine.Move) {
	lastBenchNodes = stats.Nodes
}
