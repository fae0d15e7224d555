// Package epd parses chess positions in FEN and Extended Position
// Description (EPD) notation, and runs EPD-driven test suites against the
// engine package's search.
//
// The teacher (zurichess) parses EPD with a goyacc-generated grammar
// (engine/epd_parser.y → epd_parser.go); that generated file isn't part of
// this project's retrieval pack, so this package is a hand-written
// tokenizer instead. It follows the teacher's epd_ast.go for the data
// shape (EPD.Position/Id/BestMove/Comment) and operator semantics (`bm`,
// `id`), not its parser mechanics.
package epd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrelchess/kestrel/engine"
)

// EPD is a parsed Extended Position Description: a position plus zero or
// more annotations. BestMove holds every move named by a `bm` operation;
// Comment holds every other quoted/unquoted operation by its opcode.
type EPD struct {
	Position *engine.Position
	Id       string
	BestMove []engine.Move
	Comment  map[string]string
}

// ParseFEN parses a plain FEN string (the four-to-six space-separated
// fields of section 3) and returns an EPD with no annotations.
func ParseFEN(line string) (*EPD, error) {
	pos, err := engine.PositionFromFEN(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	return &EPD{Position: pos, Comment: map[string]string{}}, nil
}

// ParseEPD parses a full EPD line: four position fields followed by
// semicolon-terminated "opcode argument...;" operations, e.g.
//
//	r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - bm Bb5; id "test.1";
func ParseEPD(line string) (*EPD, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 4 {
		return nil, fmt.Errorf("epd: expected at least 4 position fields, got %d", len(fields))
	}

	fen := strings.Join(fields[:4], " ")
	pos, err := engine.PositionFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("epd: bad position fields %q: %v", fen, err)
	}
	epd := &EPD{Position: pos, Comment: map[string]string{}}

	rest := strings.TrimSpace(strings.Join(fields[4:], " "))
	for _, op := range splitOperations(rest) {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		if err := applyOperation(epd, op); err != nil {
			return nil, fmt.Errorf("epd: %v", err)
		}
	}
	return epd, nil
}

// splitOperations splits an EPD operation list on ';', respecting quoted
// string arguments that may themselves contain ';'.
func splitOperations(s string) []string {
	var ops []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ';' && !inQuotes:
			ops = append(ops, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		ops = append(ops, cur.String())
	}
	return ops
}

func applyOperation(epd *EPD, op string) error {
	fields := strings.Fields(op)
	if len(fields) == 0 {
		return nil
	}
	opcode, args := fields[0], fields[1:]

	switch opcode {
	case "id":
		epd.Id = strings.Trim(strings.Join(args, " "), `"`)
	case "bm":
		for _, san := range args {
			mv, err := epd.Position.SANToMove(san)
			if err != nil {
				return fmt.Errorf("bm %q: %v", san, err)
			}
			epd.BestMove = append(epd.BestMove, mv)
		}
	default:
		epd.Comment[opcode] = strings.Trim(strings.Join(args, " "), `"`)
	}
	return nil
}

// String formats e back as an EPD line: position fields, then `bm`, `id`
// and any remaining comment operations, each ';'-terminated.
func (e *EPD) String() string {
	var b strings.Builder
	b.WriteString(e.Position.String())

	if len(e.BestMove) > 0 {
		b.WriteString(" bm")
		for _, mv := range e.BestMove {
			b.WriteString(" " + mv.LAN())
		}
		b.WriteString(";")
	}
	if e.Id != "" {
		b.WriteString(fmt.Sprintf(" id %q;", e.Id))
	}
	for k, v := range e.Comment {
		b.WriteString(fmt.Sprintf(" %s %q;", k, v))
	}
	return b.String()
}

// acd, acs, dm, ce are common STS/EPD numeric opcodes; Int looks one up
// from Comment, following the teacher's convention of keeping unrecognized
// operations around as raw strings rather than rejecting the line.
func (e *EPD) Int(opcode string) (int, bool) {
	v, ok := e.Comment[opcode]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
