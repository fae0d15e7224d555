// moves.go converts between Move and the two textual notations external
// collaborators use: UCI long algebraic ("e2e4", "e7e8q") for the command
// protocol, and SAN ("Nf3", "exd5", "O-O") for EPD best-move annotations.
// Both walk the legal move list and match by shape rather than re-deriving
// legality, the way the teacher's moves.go does.

package engine

import "fmt"

var (
	errWrongLength       = fmt.Errorf("move string is too short")
	errUnknownFigure     = fmt.Errorf("unknown figure symbol")
	errBadDisambiguation = fmt.Errorf("bad disambiguation")
	errNoSuchMove        = fmt.Errorf("no such move")
)

var symbolToFigure = map[rune]Figure{
	'N': FigureKnight, 'B': FigureBishop, 'R': FigureRook,
	'Q': FigureQueen, 'K': FigureKing,
}

// UCIToMove parses s ("a2a4", "h7h8q") against pos's legal moves. Unlike
// the FEN/EPD parsers, which build state from nothing, this only accepts
// strings that name an actually-legal move in pos.
func (pos *Position) UCIToMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, errWrongLength
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	promo := FigurePawn
	if len(s) == 5 {
		fig, ok := symbolToFigure[upperRune(rune(s[4]))]
		if !ok {
			return NullMove, errUnknownFigure
		}
		promo = fig
	}
	for _, mv := range pos.GenerateMoves() {
		if mv.From() == from && mv.To() == to && mv.Promotion() == promo {
			return mv, nil
		}
	}
	return NullMove, errNoSuchMove
}

func upperRune(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// SANToMove parses standard algebraic notation ("Nf3", "exd5", "e8=Q",
// "O-O"), ignoring check/mate suffixes and the capture 'x', and matches the
// result against pos's legal moves. Used by internal/epd to interpret `bm`
// fields in EPD test suites.
func (pos *Position) SANToMove(s string) (Move, error) {
	b, e := 0, len(s)
	if b == e {
		return NullMove, errWrongLength
	}
	for e > b && (s[e-1] == '#' || s[e-1] == '+') {
		e--
	}
	s = s[b:e]

	if s == "O-O" || s == "o-o" || s == "0-0" {
		return pos.castleMove(false)
	}
	if s == "O-O-O" || s == "o-o-o" || s == "0-0-0" {
		return pos.castleMove(true)
	}

	fig := FigurePawn
	i := 0
	if r := rune(s[0]); 'A' <= r && r <= 'Z' {
		f, ok := symbolToFigure[r]
		if !ok {
			return NullMove, errUnknownFigure
		}
		fig = f
		i++
	}

	promo := FigurePawn
	if j := len(s) - 1; j >= 0 {
		if r := rune(s[j]); 'A' <= r && r <= 'Z' {
			if p, ok := symbolToFigure[r]; ok {
				promo = p
				s = s[:j]
				if len(s) > 0 && s[len(s)-1] == '=' {
					s = s[:len(s)-1]
				}
			}
		}
	}

	if len(s)-i < 2 {
		return NullMove, errWrongLength
	}
	to, err := SquareFromString(s[len(s)-2:])
	if err != nil {
		return NullMove, err
	}
	disambig := s[i : len(s)-2]
	if len(disambig) > 0 && (disambig[len(disambig)-1] == 'x' || disambig[len(disambig)-1] == '-') {
		disambig = disambig[:len(disambig)-1]
	}

	fromFile, fromRank := -1, -1
	for _, c := range disambig {
		switch {
		case 'a' <= c && c <= 'h':
			fromFile = int(c - 'a')
		case '1' <= c && c <= '8':
			fromRank = int(c - '1')
		default:
			return NullMove, errBadDisambiguation
		}
	}

	us := pos.SideToMove
	for _, mv := range pos.GenerateMoves() {
		pi := pos.Get(mv.From())
		if pi.Color() != us || pi.Figure() != fig {
			continue
		}
		if mv.To() != to || mv.Promotion() != promo {
			continue
		}
		if fromFile != -1 && mv.From().File() != fromFile {
			continue
		}
		if fromRank != -1 && mv.From().Rank() != fromRank {
			continue
		}
		return mv, nil
	}
	return NullMove, errNoSuchMove
}

func (pos *Position) castleMove(queenSide bool) (Move, error) {
	rank := 0
	if pos.SideToMove == Black {
		rank = 7
	}
	from := RankFile(rank, 4)
	to := RankFile(rank, 6)
	if queenSide {
		to = RankFile(rank, 2)
	}
	for _, mv := range pos.GenerateMoves() {
		if mv.From() == from && mv.To() == to {
			return mv, nil
		}
	}
	return NullMove, errNoSuchMove
}
