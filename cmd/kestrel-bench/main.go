// Command kestrel-bench is the external measurement/tuning collaborator:
// perft correctness counts, a fixed-position search benchmark, and the
// EPD/STS harnesses, all driven by the engine package's exported API with
// no UCI protocol involved. Subcommands are structured with kong (see
// cmd/kestrel for the teacher's flag-based shape; this binary's subcommand
// surface is wide enough to earn a proper CLI framework instead).
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var buildVersion = "(devel)"

type cli struct {
	Config  string           `help:"Optional kestrel.toml overlay of material weights."`
	Perft   perftCmd         `cmd:"" help:"Count leaf nodes to a fixed depth from a position."`
	Bench   benchCmd         `cmd:"" help:"Run a fixed-depth search over a small built-in position set."`
	Epd     epdCmd           `cmd:"" help:"Score searches against an EPD file's bm operations."`
	Sts     stsCmd           `cmd:"" help:"Run a Strategic Test Suite file and report its percentage score."`
	Datagen datagenCmd       `cmd:"" help:"Generate self-play training data (requires -tags gen)."`
	Version kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	c := cli{}
	parser := kong.Must(&c,
		kong.Name("kestrel-bench"),
		kong.Description("Measurement and tuning tools for the kestrel chess engine."),
		kong.UsageOnError(),
		kong.Vars{"version": buildVersion},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if c.Config != "" {
		if err := loadWeightsOverlay(c.Config); err != nil {
			fmt.Fprintln(os.Stderr, "kestrel-bench:", err)
			os.Exit(1)
		}
	}

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
