// uci.go implements the newline-delimited command protocol of section 6:
// uci, isready, setoption, ucinewgame, position, go (depth/infinite/
// wtime-btime/movetime/perft), debug, print and quit. Shaped after the
// teacher's zurichess/uci.go (UCI struct, Execute dispatch, uciLogger
// printing "info depth ... pv ..." lines), generalized to this project's
// Hash/MaxSearchTime option pair and the perft sub-mode spec.md carves out.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

var errQuit = errors.New("quit")

const (
	defaultHashMB        = 256
	defaultMaxSearchSecs = 5
	minHashMB            = 1
	maxHashMB            = 16384
	minMaxSearchSecs     = 1
	maxMaxSearchSecs     = 120
)

// UCI holds the live engine state across commands: the position being
// played, the shared transposition table, and the two configurable
// options section 6 names.
type UCI struct {
	pos           *engine.Position
	search        *engine.Search
	tt            *engine.HashTable
	perftTable    *engine.PerftTable
	maxSearchTime time.Duration
	debug         bool
}

// NewUCI returns a UCI set up at the start position with default options.
func NewUCI() *UCI {
	u := &UCI{
		tt:            engine.NewHashTable(defaultHashMB),
		maxSearchTime: defaultMaxSearchSecs * time.Second,
	}
	u.resetGame()
	return u
}

func (u *UCI) resetGame() {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	if err != nil {
		panic(err) // FENStartPos is a constant; this can never fail
	}
	u.pos = pos
	u.search = engine.NewSearch(u.pos, u.tt, newUCILogger())
}

// Execute parses and runs one protocol line, wrapping every command in a
// catch-all so a malformed command never kills the engine, per section 7's
// propagation policy.
func (u *UCI) Execute(line string) (err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		return u.cmdUCI()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "setoption":
		return u.cmdSetOption(line)
	case "ucinewgame":
		u.resetGame()
		u.tt.Clear()
		return nil
	case "position":
		return u.cmdPosition(args)
	case "go":
		return u.cmdGo(args)
	case "debug":
		return u.cmdDebug(args)
	case "print", "d":
		fmt.Println(boardDump(u.pos))
		return nil
	case "eval":
		fmt.Println(engine.Breakdown(u.pos).String())
		return nil
	case "quit":
		return errQuit
	default:
		return fmt.Errorf("Unknown command: %s", cmd)
	}
}

func (u *UCI) cmdUCI() error {
	fmt.Println("id name kestrel", buildVersion)
	fmt.Println("id author the kestrel authors")
	fmt.Println()
	fmt.Printf("option name Hash type spin default %d min %d max %d\n", defaultHashMB, minHashMB, maxHashMB)
	fmt.Printf("option name MaxSearchTime type spin default %d min %d max %d\n", defaultMaxSearchSecs, minMaxSearchSecs, maxMaxSearchSecs)
	fmt.Println("uciok")
	return nil
}

func (u *UCI) cmdDebug(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("debug expects on|off")
	}
	switch args[0] {
	case "on":
		u.debug = true
	case "off":
		u.debug = false
	default:
		return fmt.Errorf("debug expects on|off, got %s", args[0])
	}
	return nil
}

var reOption = func() func(string) (name, value string, ok bool) {
	return func(line string) (string, string, bool) {
		const p1, p2 = "name ", " value "
		i := strings.Index(line, p1)
		if i < 0 {
			return "", "", false
		}
		rest := line[i+len(p1):]
		if j := strings.Index(rest, p2); j >= 0 {
			return strings.TrimSpace(rest[:j]), strings.TrimSpace(rest[j+len(p2):]), true
		}
		return strings.TrimSpace(rest), "", true
	}
}()

func (u *UCI) cmdSetOption(line string) error {
	name, value, ok := reOption(line)
	if !ok {
		return fmt.Errorf("Failed to process setoption")
	}
	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Failed to process setoption")
		}
		if mb < minHashMB {
			mb = minHashMB
		}
		if mb > maxHashMB {
			mb = maxHashMB
		}
		u.tt = engine.NewHashTable(mb)
		u.search = engine.NewSearch(u.pos, u.tt, newUCILogger())
		log.Printf("Hash set to %d MB (2^%d entries)", u.tt.SizeMB(), u.tt.Exponent())
		return nil
	case "MaxSearchTime":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Failed to process setoption")
		}
		if secs < minMaxSearchSecs {
			secs = minMaxSearchSecs
		}
		if secs > maxMaxSearchSecs {
			secs = maxMaxSearchSecs
		}
		u.maxSearchTime = time.Duration(secs) * time.Second
		return nil
	default:
		return fmt.Errorf("Failed to process setoption")
	}
}

func (u *UCI) cmdPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = engine.PositionFromFEN(engine.FENStartPos)
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = engine.PositionFromFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	u.pos = pos
	u.search = engine.NewSearch(u.pos, u.tt, newUCILogger())

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got '%s'", args[i])
		}
		for _, m := range args[i+1:] {
			move, err := u.pos.UCIToMove(m)
			if err != nil {
				return err
			}
			u.pos.MakeMove(move)
			u.search.Push()
		}
	}
	return nil
}

func (u *UCI) cmdGo(args []string) error {
	if len(args) > 0 && args[0] == "perft" {
		return u.cmdPerft(args[1:])
	}

	tc := engine.NewTimeControl(u.pos)
	explicitDepth := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			tc.Depth = d
			explicitDepth = true
		case "infinite":
			tc.Infinite = true
		case "movetime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.MoveTime = time.Duration(ms) * time.Millisecond
		case "wtime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.WTime = time.Duration(ms) * time.Millisecond
		case "btime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.BTime = time.Duration(ms) * time.Millisecond
		case "winc":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.WInc = time.Duration(ms) * time.Millisecond
		case "binc":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.BInc = time.Duration(ms) * time.Millisecond
		}
	}

	// MaxSearchTime is a hard ceiling on a single search, independent of
	// whatever clock-based allocation a timed search computes. It never
	// applies to "go infinite" (only "stop" or depth exhaustion ends that)
	// nor to an explicit "go depth N" (that command's whole point is to
	// run to a fixed depth regardless of wall-clock time).
	if !tc.Infinite && !explicitDepth {
		ceiling := u.maxSearchTime
		go func() {
			time.Sleep(ceiling)
			tc.Stop()
		}()
	}

	move, _ := u.search.Play(tc)
	if move == engine.NullMove {
		fmt.Println("bestmove (none)")
	} else {
		fmt.Println("bestmove", move.String())
	}
	return nil
}

func (u *UCI) cmdPerft(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("go perft expects a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	if u.perftTable == nil {
		u.perftTable = engine.NewPerftTable(22)
	}
	nodes := engine.Perft(u.pos, depth, u.perftTable)
	fmt.Printf("Nodes searched: %d\n", nodes)
	return nil
}

func boardDump(pos *engine.Position) string {
	var b bytes.Buffer
	for r := 7; r >= 0; r-- {
		fmt.Fprintf(&b, "%d  ", r+1)
		for f := 0; f < 8; f++ {
			pi := pos.Get(engine.RankFile(r, f))
			if pi == engine.NoPiece {
				b.WriteString(". ")
			} else {
				fmt.Fprintf(&b, "%s ", pi.String())
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&b, "FEN: %s\n", pos.String())
	return b.String()
}

// uciLogger formats search progress the way the teacher's uciLogger does:
// depth, score (mate-aware), node/time/nps stats, and the PV, all on one
// "info" line per completed iteration.
type uciLogger struct {
	start time.Time
}

func newUCILogger() *uciLogger { return &uciLogger{} }

func (l *uciLogger) BeginSearch() { l.start = time.Now() }
func (l *uciLogger) EndSearch()   {}

func (l *uciLogger) PrintPV(stats engine.Stats, score int32, pv []engine.Move) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "info depth %d seldepth %d ", stats.Depth, stats.SelDepth)

	switch {
	case score > engine.KnownWinScore:
		fmt.Fprintf(&b, "score mate %d ", (engine.MateScore-score+1)/2)
	case score < engine.KnownLossScore:
		fmt.Fprintf(&b, "score mate %d ", (engine.MatedScore-score)/2)
	default:
		fmt.Fprintf(&b, "score cp %d ", score)
	}

	elapsed := time.Since(l.start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	nps := stats.Nodes * uint64(time.Second) / uint64(elapsed)
	fmt.Fprintf(&b, "nodes %d time %d nps %d ", stats.Nodes, elapsed.Milliseconds(), nps)

	b.WriteString("pv")
	for _, m := range pv {
		fmt.Fprintf(&b, " %s", m.String())
	}
	b.WriteByte('\n')

	os.Stdout.Write(b.Bytes())
}
