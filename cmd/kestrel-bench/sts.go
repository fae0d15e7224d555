package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kestrelchess/kestrel/engine"
	"github.com/kestrelchess/kestrel/internal/epd"
)

// stsCmd runs a Strategic Test Suite file (EPD with weighted `c0`
// candidates) and reports the standard STS percentage.
type stsCmd struct {
	File      string        `arg:"" help:"Path to an STS-format EPD file."`
	ThinkTime time.Duration `help:"Search time per position." default:"1s"`
}

func (c *stsCmd) Run() error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	cases, err := epd.ParseSTSFile(f)
	if err != nil {
		return err
	}

	tt := engine.NewHashTable(64)
	results := epd.RunSTS(cases, c.ThinkTime, tt)

	for _, r := range results {
		fmt.Printf("%-16s %3d/%-3d chose %s\n", r.Case.EPD.Id, r.Awarded, r.MaxPoints, r.Chosen.LAN())
	}
	fmt.Printf("\nSTS score: %.2f%%\n", epd.STSPercentage(results))
	return nil
}
