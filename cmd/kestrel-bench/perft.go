package main

import (
	"fmt"

	"github.com/kestrelchess/kestrel/engine"
)

// perftCmd counts leaf nodes reached from a position, the correctness
// check section 8 calls out by name (startpos to depth 5/6, Kiwipete).
type perftCmd struct {
	Depth  int    `arg:"" help:"Ply depth to search to."`
	Fen    string `help:"FEN to start from; the initial position if omitted."`
	Divide bool   `help:"Print a per-root-move node count breakdown."`
}

func (c *perftCmd) Run() error {
	fen := c.Fen
	if fen == "" {
		fen = engine.FENStartPos
	}
	pos, err := engine.PositionFromFEN(fen)
	if err != nil {
		return err
	}

	table := engine.NewPerftTable(22)
	if c.Divide {
		total, divide := engine.PerftDivide(pos, c.Depth, table)
		for move, nodes := range divide {
			fmt.Printf("%s: %d\n", move, nodes)
		}
		fmt.Printf("\n%d\n", total)
		return nil
	}

	nodes := engine.Perft(pos, c.Depth, table)
	fmt.Println(nodes)
	return nil
}
