// domove.go implements make/unmake (C4): MakeMove applies a move produced
// by GenerateMoves to pos in place, pushing enough undo information onto
// pos.history for UnmakeMove to restore the exact prior state, incremental
// accumulators included.

package engine

// MakeMove applies mv to pos. mv must have come from pos.GenerateMoves (or
// otherwise be known pseudo-legal in pos); MakeMove does not itself check
// legality beyond what the generator already guaranteed.
func (pos *Position) MakeMove(mv Move) {
	us, them := pos.Sides()
	from, to, promo := mv.From(), mv.To(), mv.Promotion()
	moved := pos.Get(from)
	fig := moved.Figure()

	rec := historyRec{
		castle:        pos.Castle,
		epTarget:      pos.EpTarget,
		zobrist:       pos.Zobrist,
		pawnZobrist:   pos.PawnZobrist,
		halfMoveClock: pos.HalfMoveClock,
		pinnedMask:    pos.PinnedMask,
		pinnedPawns:   pos.PinnedPawns,
		inCheck:       pos.InCheck,
		mgBase:        pos.MgBase,
		egBase:        pos.EgBase,
		phase:         pos.Phase,
		movedPiece:    moved,
		capturedPiece: NoPiece,
	}

	isEnPassant := fig == FigurePawn && to == pos.EpTarget && pos.IsEmpty(to)
	isCastle := fig == FigureKing && mv.IsCastleShape()
	isPawnMove := fig == FigurePawn

	capturedSq := to
	if isEnPassant {
		capturedSq = RankFile(from.Rank(), to.File())
	}
	captured := pos.Get(capturedSq)
	if captured != NoPiece {
		rec.capturedPiece = captured
		rec.capturedSquare = capturedSq
		pos.Remove(capturedSq, captured)
	}

	pos.Remove(from, moved)
	if promo != FigurePawn {
		pos.Put(to, ColorFigure(us, promo))
	} else {
		pos.Put(to, moved)
	}

	if isCastle {
		rookPiece, rookFrom, rookTo := CastlingRook(to)
		pos.Remove(rookFrom, rookPiece)
		pos.Put(rookTo, rookPiece)
		rec.isCastle = true
		rec.rookFrom = rookFrom
		rec.rookTo = rookTo
		pos.Castle |= castledBit(us)
	}
	rec.isEnPassant = isEnPassant

	newEp := SquareA1
	if isPawnMove && absInt(int(to)-int(from)) == 16 {
		newEp = from.Relative(signOfStep(us), 0)
	}
	pos.SetEpTarget(newEp, pos.ByPiece(them, FigurePawn))

	pos.SetCastlingAbility(pos.Castle &^ (lostCastleRights[from] | lostCastleRights[to]))

	if isPawnMove || captured != NoPiece {
		pos.HalfMoveClock = 0
	} else {
		pos.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}

	pos.SetSideToMove(them)
	pos.Ply++
	pos.recomputeDerived()

	pos.history = append(pos.history, rec)
}

// signOfStep returns the rank direction a pawn of color c pushes in.
func signOfStep(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// UnmakeMove reverts the most recent MakeMove. Calling it without a
// matching prior MakeMove is a programming error.
func (pos *Position) UnmakeMove(mv Move) {
	n := len(pos.history) - 1
	rec := pos.history[n]
	pos.history = pos.history[:n]

	them := pos.SideToMove
	us := them.Opposite()
	from, to := mv.From(), mv.To()

	if rec.isCastle {
		rookPiece, _, _ := CastlingRook(to)
		pos.rawRemove(rec.rookTo, rookPiece)
		pos.rawPut(rec.rookFrom, rookPiece)
	}

	placed := pos.Get(to)
	pos.rawRemove(to, placed)
	pos.rawPut(from, rec.movedPiece)

	if rec.capturedPiece != NoPiece {
		pos.rawPut(rec.capturedSquare, rec.capturedPiece)
	}

	pos.Castle = rec.castle
	pos.EpTarget = rec.epTarget
	pos.Zobrist = rec.zobrist
	pos.PawnZobrist = rec.pawnZobrist
	pos.HalfMoveClock = rec.halfMoveClock
	pos.PinnedMask = rec.pinnedMask
	pos.PinnedPawns = rec.pinnedPawns
	pos.InCheck = rec.inCheck
	pos.MgBase = rec.mgBase
	pos.EgBase = rec.egBase
	pos.Phase = rec.phase

	pos.SideToMove = us
	pos.Ply--
	if us == Black {
		pos.FullMoveNumber--
	}
}

// MakeNullMove flips the side to move without moving a piece, used by the
// search's null-move pruning. The en passant target is cleared, matching
// the rule that a null move forfeits any pending en passant capture.
func (pos *Position) MakeNullMove() {
	rec := historyRec{
		castle:        pos.Castle,
		epTarget:      pos.EpTarget,
		zobrist:       pos.Zobrist,
		pawnZobrist:   pos.PawnZobrist,
		halfMoveClock: pos.HalfMoveClock,
		pinnedMask:    pos.PinnedMask,
		pinnedPawns:   pos.PinnedPawns,
		inCheck:       pos.InCheck,
		mgBase:        pos.MgBase,
		egBase:        pos.EgBase,
		phase:         pos.Phase,
		movedPiece:    NoPiece,
		capturedPiece: NoPiece,
	}
	pos.history = append(pos.history, rec)

	pos.SetEpTarget(SquareA1, 0)
	them := pos.SideToMove.Opposite()
	pos.SetSideToMove(them)
	pos.NullMoveApplied = true
	pos.Ply++
	pos.recomputeDerived()
}

// UnmakeNullMove reverts MakeNullMove.
func (pos *Position) UnmakeNullMove() {
	n := len(pos.history) - 1
	rec := pos.history[n]
	pos.history = pos.history[:n]

	pos.Castle = rec.castle
	pos.EpTarget = rec.epTarget
	pos.Zobrist = rec.zobrist
	pos.PawnZobrist = rec.pawnZobrist
	pos.HalfMoveClock = rec.halfMoveClock
	pos.PinnedMask = rec.pinnedMask
	pos.PinnedPawns = rec.pinnedPawns
	pos.InCheck = rec.inCheck
	pos.MgBase = rec.mgBase
	pos.EgBase = rec.egBase
	pos.Phase = rec.phase
	pos.NullMoveApplied = false
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.Ply--
}
