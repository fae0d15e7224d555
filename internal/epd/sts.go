// sts.go implements the Strategic Test Suite harness: an EPD-driven
// benchmark that scores the engine's chosen move against a weighted list
// of "good" moves per position and reports a percentage, the way the
// original C++ source's STS.h does for Tesseract. zurichess (the Go
// teacher) has no equivalent; this file follows zurichess's search-driving
// idiom (engine.NewSearch + engine.TimeControl) applied to the STS loop
// described in STS.h.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

// STSCandidate is one weighted move choice from an STS position's `c0`
// comment, e.g. "Bb5=10".
type STSCandidate struct {
	Move  engine.Move
	Score int
}

// STSCase is a single STS position plus its scored candidate moves.
type STSCase struct {
	EPD        *EPD
	Candidates []STSCandidate
}

// STSResult is the outcome of running a move search against one STSCase.
type STSResult struct {
	Case      STSCase
	Chosen    engine.Move
	Awarded   int
	MaxPoints int
}

// ParseSTSFile reads EPD lines from r, each expected to carry a `c0`
// comment of comma-separated "SAN=score" candidates (the STS convention),
// and returns one STSCase per line. Blank lines and lines starting with
// '#' are skipped.
func ParseSTSFile(r io.Reader) ([]STSCase, error) {
	var cases []STSCase
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := ParseEPD(line)
		if err != nil {
			return nil, fmt.Errorf("sts: line %d: %v", lineNo, err)
		}
		c0, ok := e.Comment["c0"]
		if !ok {
			return nil, fmt.Errorf("sts: line %d: missing c0 candidate list", lineNo)
		}
		cands, err := parseSTSCandidates(e.Position, c0)
		if err != nil {
			return nil, fmt.Errorf("sts: line %d: %v", lineNo, err)
		}
		cases = append(cases, STSCase{EPD: e, Candidates: cands})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseSTSCandidates(pos *engine.Position, c0 string) ([]STSCandidate, error) {
	var out []STSCandidate
	for _, part := range strings.Split(c0, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed candidate %q", part)
		}
		mv, err := pos.SANToMove(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("candidate move %q: %v", kv[0], err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("candidate score %q: %v", kv[1], err)
		}
		out = append(out, STSCandidate{Move: mv, Score: score})
	}
	return out, nil
}

// RunSTS drives one timed search per test case and scores the chosen move
// against its candidate list. Each case gets its own fresh Search; all
// cases share tt, which is not cleared between them.
func RunSTS(cases []STSCase, thinkTime time.Duration, tt *engine.HashTable) []STSResult {
	results := make([]STSResult, 0, len(cases))
	for _, c := range cases {
		pos := c.EPD.Position
		search := engine.NewSearch(pos, tt, engine.NulLogger{})
		tc := engine.NewTimeControl(pos)
		tc.MoveTime = thinkTime
		move, _ := search.Play(tc)

		maxPoints := 0
		awarded := 0
		for _, cand := range c.Candidates {
			if cand.Score > maxPoints {
				maxPoints = cand.Score
			}
			if cand.Move == move {
				awarded = cand.Score
			}
		}
		results = append(results, STSResult{Case: c, Chosen: move, Awarded: awarded, MaxPoints: maxPoints})
	}
	return results
}

// STSPercentage is the standard STS reporting metric: total points
// awarded over total points available, as a percentage.
func STSPercentage(results []STSResult) float64 {
	var got, max int
	for _, r := range results {
		got += r.Awarded
		max += r.MaxPoints
	}
	if max == 0 {
		return 0
	}
	return 100 * float64(got) / float64(max)
}
