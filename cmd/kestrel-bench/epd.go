package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kestrelchess/kestrel/engine"
	"github.com/kestrelchess/kestrel/internal/epd"
)

// epdCmd scores a search's chosen move against each line's `bm` operation,
// the plain pass/fail counterpart to the weighted sts subcommand.
type epdCmd struct {
	File      string        `arg:"" help:"Path to an EPD file, one test per line."`
	ThinkTime time.Duration `help:"Search time per position." default:"1s"`
}

func (c *epdCmd) Run() error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	tt := engine.NewHashTable(64)
	passed, total := 0, 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := epd.ParseEPD(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "kestrel-bench:", err)
			continue
		}
		if len(e.BestMove) == 0 {
			continue
		}
		total++

		search := engine.NewSearch(e.Position, tt, engine.NulLogger{})
		tc := engine.NewTimeControl(e.Position)
		tc.MoveTime = c.ThinkTime
		move, _ := search.Play(tc)

		ok := false
		for _, bm := range e.BestMove {
			if bm == move {
				ok = true
				break
			}
		}
		label := "FAIL"
		if ok {
			passed++
			label = "PASS"
		}
		fmt.Printf("%s %-12s got %s want %v\n", label, e.Id, move.LAN(), e.BestMove)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("\n%d/%d\n", passed, total)
	return nil
}
