// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "fmt"

var errorInvalidSquare = fmt.Errorf("invalid square")

// Square identifies one of the 64 board squares, little-endian
// rank-file encoded: A1 = 0, H8 = 63.
type Square uint8

const (
	SquareA1 Square = 0
	SquareC1 Square = 2
	SquareE1 Square = 4
	SquareG1 Square = 6
	SquareH1 Square = 7
	SquareA4 Square = 24
	SquareE4 Square = 28
	SquareA5 Square = 32
	SquareE5 Square = 36
	SquareA8 Square = 56
	SquareC8 Square = 58
	SquareE8 Square = 60
	SquareG8 Square = 62
	SquareH8 Square = 63

	SquareArraySize = 64
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8
)

// RankFile returns a square with rank r and file f. r and f should be
// between 0 and 7.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square from standard chess notation [a-h][1-8].
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errorInvalidSquare
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, errorInvalidSquare
	}
	return RankFile(r, f), nil
}

// Bitboard returns a bitboard with only sq set.
func (sq Square) Bitboard() Bitboard { return 1 << uint(sq) }

// Relative returns the square dr ranks and df files away. Not bounds checked.
func (sq Square) Relative(dr, df int) Square { return sq + Square(dr*8+df) }

// Rank returns 0..7.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns 0..7.
func (sq Square) File() int { return int(sq % 8) }

func (sq Square) String() string {
	return string([]byte{uint8(sq.File() + 'a'), uint8(sq.Rank() + '1')})
}

// Color identifies a side: White or Black.
type Color uint8

const (
	White Color = iota
	Black

	ColorArraySize = 2
)

// Opposite returns the other color.
func (c Color) Opposite() Color { return c ^ 1 }

// Figure is a piece kind, stripped of color and ordered to match the
// Piece numbering fixed below (pawn, knight, bishop, rook, king, queen —
// king sits before queen, not after, a quirk of Piece = Figure<<1|Color).
type Figure uint8

const (
	FigurePawn Figure = iota
	FigureKnight
	FigureBishop
	FigureRook
	FigureKing
	FigureQueen

	FigureArraySize = 6
)

var figureToSymbol = [FigureArraySize]string{"", "N", "B", "R", "K", "Q"}
var figureToUCISymbol = [FigureArraySize]string{"", "n", "b", "r", "k", "q"}

func (f Figure) String() string { return figureToSymbol[f] }

// Piece identifies a figure owned by a side, or a board aggregate. Pieces
// 0..11 are addressed as Figure<<1|Color; NoPiece (12) marks an empty
// square; WhiteAll/BlackAll/AllPieces (13..15) are aggregate occupancy
// boards that reuse the same 16-entry array Position.Pieces indexes.
type Piece uint8

const (
	WhitePawn Piece = iota
	BlackPawn
	WhiteKnight
	BlackKnight
	WhiteBishop
	BlackBishop
	WhiteRook
	BlackRook
	WhiteKing
	BlackKing
	WhiteQueen
	BlackQueen

	NoPiece   Piece = 12
	WhiteAll  Piece = 13
	BlackAll  Piece = 14
	AllPieces Piece = 15

	PieceArraySize = 16
	PieceMinValue  = WhitePawn
	PieceMaxValue  = BlackQueen
)

// ColorFigure builds the piece of figure fig owned by col.
func ColorFigure(col Color, fig Figure) Piece {
	return Piece(fig)<<1 | Piece(col)
}

// Color returns the piece's owner. Undefined for NoPiece and aggregates.
func (pi Piece) Color() Color { return Color(pi & 1) }

// Figure returns the piece's kind. Undefined for NoPiece and aggregates.
func (pi Piece) Figure() Figure { return Figure(pi >> 1) }

var pieceToSymbol = [PieceArraySize]byte{
	'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'K', 'k', 'Q', 'q', '.', 0, 0, 0,
}

func (pi Piece) String() string { return string(pieceToSymbol[pi]) }

// Bitboard is a 64-bit set of squares, bit i set iff Square(i) is a member.
type Bitboard uint64

const BbEmpty Bitboard = 0

// RankBb returns all squares on rank (0..7).
func RankBb(rank int) Bitboard { return Bitboard(0xff) << uint(8*rank) }

// FileBb returns all squares on file (0..7).
func FileBb(file int) Bitboard { return Bitboard(0x0101010101010101) << uint(file) }

// Has reports whether sq is a member of bb.
func (bb Bitboard) Has(sq Square) bool { return bb&sq.Bitboard() != 0 }

// AsSquare returns the single square set in bb. Undefined if bb isn't a
// singleton.
func (bb Bitboard) AsSquare() Square { return Square(logN(uint64(bb))) }

// LSB returns the board containing only the lowest set square.
func (bb Bitboard) LSB() Bitboard { return bb & (-bb) }

// Popcnt counts the squares set in bb.
func (bb Bitboard) Popcnt() int { return popcnt(uint64(bb)) }

// Pop pops the lowest set square from bb and returns it.
func (bb *Bitboard) Pop() Square {
	sq := (*bb).LSB()
	*bb -= sq
	return sq.AsSquare()
}

func popcnt(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

func logN(x uint64) int {
	if x == 0 {
		return 0
	}
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

// North/South/East/West shift bb by one rank/file, clipping wraparound.
func North(bb Bitboard) Bitboard { return bb << 8 }
func South(bb Bitboard) Bitboard { return bb >> 8 }
func East(bb Bitboard) Bitboard  { return (bb &^ FileBb(7)) << 1 }
func West(bb Bitboard) Bitboard  { return (bb &^ FileBb(0)) >> 1 }

// Forward shifts towards the opponent's back rank for col; Backward reverses.
func Forward(col Color, bb Bitboard) Bitboard {
	if col == White {
		return North(bb)
	}
	return South(bb)
}

func Backward(col Color, bb Bitboard) Bitboard {
	if col == White {
		return South(bb)
	}
	return North(bb)
}

// Move packs a move in 16 bits: destination (bits 0-5), origin (bits 6-11),
// promotion figure id (bits 12-15, 0 meaning none). This is the wire format
// used throughout search and move generation; Move values are compared and
// stored by plain equality.
type Move uint16

// NullMove is the zero move (a1a1), never a legal move, used as a sentinel.
const NullMove Move = 0

// MakeMove packs from, to and an optional promotion figure into a Move.
func MakeMove(from, to Square, promotion Figure) Move {
	return Move(to) | Move(from)<<6 | Move(promotion)<<12
}

// To returns the destination square.
func (m Move) To() Square { return Square(m & 0x3f) }

// From returns the origin square.
func (m Move) From() Square { return Square((m >> 6) & 0x3f) }

// Promotion returns the promotion figure, or FigurePawn if none.
func (m Move) Promotion() Figure { return Figure(m >> 12) }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion() != FigurePawn }

// IsCastleShape reports whether m moves a piece two files on the same rank,
// the shape make_move uses to detect castling (see domove.go).
func (m Move) IsCastleShape() bool {
	from, to := m.From(), m.To()
	return from.Rank() == to.Rank() && absInt(from.File()-to.File()) == 2
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// String formats m in UCI notation (e2e4, e7e8q); promotion letters are
// lowercase, per the UCI move-string convention.
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += figureToUCISymbol[m.Promotion()]
	}
	return s
}

// LAN is an alias for String, following the teacher's Move.UCI()/LAN()
// naming convention for the same UCI-form string.
func (m Move) LAN() string { return m.String() }

// Castle packs castling rights and "already castled" flags. Bits 0-3 are
// the four standard UCI castling rights; bits 4-5 record that a side has
// already castled, consulted only by the evaluator's castling bonus.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO
	WhiteCastled
	BlackCastled

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO
)

var castleToSymbol = map[Castle]byte{
	WhiteOO: 'K', WhiteOOO: 'Q', BlackOO: 'k', BlackOOO: 'q',
}

func (c Castle) String() string {
	c &= AnyCastle
	if c == 0 {
		return "-"
	}
	var r []byte
	for c > 0 {
		k := c & (-c)
		r = append(r, castleToSymbol[k])
		c -= k
	}
	return string(r)
}

// CastlingRook returns the rook piece, and its start/end squares, moved
// when the king lands on kingEnd during castling.
func CastlingRook(kingEnd Square) (Piece, Square, Square) {
	piece := ColorFigure(Color(kingEnd>>5)&1, FigureRook)
	if kingEnd.File() < 4 {
		return piece, RankFile(kingEnd.Rank(), 0), RankFile(kingEnd.Rank(), 3)
	}
	return piece, RankFile(kingEnd.Rank(), 7), RankFile(kingEnd.Rank(), 5)
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}
