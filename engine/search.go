// search.go implements the search (C6): iterative deepening negamax with
// PVS, a transposition table probe/store at every node, null-move pruning,
// quiescence search bounded to depth 10, killer/history move ordering, and
// repetition-draw detection (including the "double-two" one-ply lookahead,
// see gameRepeatsDoubleTwo/repetitionLookahead). The framework (Engine
// holding Position/Stats/Logger, ply() helper, tryMove()-style recursive
// descent) follows the teacher's engine.go; the node-ordering rules and
// pruning conditions follow this project's own search design rather than
// the teacher's aspiration-window/LMR/futility machinery, which this
// engine does not implement.

package engine

const (
	quiescenceDepthLimit = 10
	nullMoveReduction    = 3
	nullMoveDepthLimit   = 3
	checkExtension       = 1

	ttMoveBonus      = 10000
	killerOneBonus   = 890
	killerTwoBonus   = 889
)

var mvvlvaVictim = [FigureArraySize]int32{
	FigurePawn: 100, FigureKnight: 320, FigureBishop: 330, FigureRook: 500, FigureQueen: 900, FigureKing: 10000,
}
var mvvlvaAttacker = [FigureArraySize]int32{
	FigurePawn: 0, FigureKnight: 1, FigureBishop: 2, FigureRook: 3, FigureQueen: 4, FigureKing: 5,
}

// Logger reports search progress, the way the teacher's engine.go defines
// it, so a UCI front-end can print `info` lines as each depth finishes.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger discards every event.
type NulLogger struct{}

func (NulLogger) BeginSearch()                               {}
func (NulLogger) EndSearch()                                 {}
func (NulLogger) PrintPV(Stats, int32, []Move)                {}

// Stats tracks search progress for the current iteration.
type Stats struct {
	Nodes    uint64
	Depth    int
	SelDepth int
}

// historyTable scores quiet moves by how often they raised alpha in the
// past, indexed directly by moved piece and destination square.
type historyTable [PieceArraySize][SquareArraySize]int32

func (h *historyTable) get(pi Piece, to Square) int32 { return h[pi][to] }
func (h *historyTable) add(pi Piece, to Square, depth int) {
	h[pi][to] += int32(depth)
}

// Search holds everything one search run needs: the position being
// searched, move ordering state, the transposition table it shares across
// runs, and the repetition map for the real game path.
type Search struct {
	Log   Logger
	Stats Stats
	TT    *HashTable

	pos     *Position
	tc      *TimeControl
	rootPly int
	stopped bool

	killers [maxPly][2]Move
	history historyTable

	gameRepeats map[uint64]int // played positions, updated by Push/Pop
	doubleTwo   bool           // cached once per Play(): see gameRepeatsDoubleTwo
}

// NewSearch returns a Search over pos, sharing tt across games.
func NewSearch(pos *Position, tt *HashTable, log Logger) *Search {
	if log == nil {
		log = NulLogger{}
	}
	return &Search{
		Log:         log,
		TT:          tt,
		pos:         pos,
		gameRepeats: map[uint64]int{pos.Zobrist: 1},
	}
}

// Push records a played move's resulting position on the repetition map;
// call this once a move is actually committed to the game, not for
// hypothetical moves explored inside the search tree.
func (s *Search) Push() { s.gameRepeats[s.pos.Zobrist]++ }

// Pop reverses the most recent Push.
func (s *Search) Pop() {
	z := s.pos.Zobrist
	if s.gameRepeats[z] > 0 {
		s.gameRepeats[z]--
		if s.gameRepeats[z] == 0 {
			delete(s.gameRepeats, z)
		}
	}
}

func (s *Search) ply() int { return s.pos.Ply - s.rootPly }

// gameRepeatsDoubleTwo reports whether the real game path already has two
// distinct positions that have each occurred twice (a "double-two"
// configuration). gameRepeats only changes via Push/Pop, which the search
// never calls, so this is computed once per Play and cached in s.doubleTwo.
func (s *Search) gameRepeatsDoubleTwo() bool {
	twice := 0
	for _, n := range s.gameRepeats {
		if n >= 2 {
			twice++
			if twice >= 2 {
				return true
			}
		}
	}
	return false
}

// repetitionLookahead reports whether, from pos, some legal reply reaches a
// position that has already occurred twice on the game path — i.e. a
// position one ply beyond pos would be a third occurrence. Used only in a
// double-two configuration, where the spec treats such a move as forced
// into a draw rather than waiting for the repetition to actually occur.
func (s *Search) repetitionLookahead(pos *Position) bool {
	us := pos.SideToMove
	moves := pos.GenerateMoves()
	cp := make([]Move, len(moves))
	copy(cp, moves)

	for _, m := range cp {
		pos.MakeMove(m)
		checked := pos.IsCheckedSide(us)
		reached := s.gameRepeats[pos.Zobrist] >= 2
		pos.UnmakeMove(m)
		if !checked && reached {
			return true
		}
	}
	return false
}

// Play runs iterative deepening until tc says to stop, returning the best
// move found (NullMove if the position has no legal moves) and its score
// from the side-to-move's point of view.
func (s *Search) Play(tc *TimeControl) (Move, int32) {
	s.Log.BeginSearch()
	defer s.Log.EndSearch()

	s.tc = tc
	s.rootPly = s.pos.Ply
	s.stopped = false
	s.doubleTwo = s.gameRepeatsDoubleTwo()
	tc.Start()

	var bestMove Move
	var bestScore int32
	var bestMovesCopy []Move

	legal := s.pos.GenerateMoves()
	if len(legal) == 0 {
		return NullMove, 0
	}

	for depth := 1; tc.NextDepth(depth); depth++ {
		s.Stats = Stats{Depth: depth}
		move, score, ordered, completed := s.searchRoot(depth, bestMovesCopy)
		if !completed {
			break
		}
		bestMove, bestScore, bestMovesCopy = move, score, ordered
		s.Log.PrintPV(s.Stats, score, []Move{move})
		if depth >= 64 {
			break
		}
	}
	return bestMove, bestScore
}

// searchRoot runs one PVS iteration at the root. preferred holds the
// previous iteration's moves in descending score order, tried first.
func (s *Search) searchRoot(depth int, preferred []Move) (best Move, bestScore int32, ordered []Move, completed bool) {
	moves := s.pos.GenerateMoves()
	cp := make([]Move, len(moves))
	copy(cp, moves)
	orderMoves(cp, preferred, NullMove, &s.killers[0], &s.history, s.pos)

	alpha, beta := int32(-InfinityScore), int32(InfinityScore)
	best = NullMove
	bestScore = -InfinityScore
	first := true

	type scored struct {
		m Move
		v int32
	}
	var results []scored

	for _, m := range cp {
		if s.checkTime() {
			return best, bestScore, ordered, false
		}

		s.pos.MakeMove(m)
		if s.pos.IsCheckedSide(s.pos.SideToMove.Opposite()) {
			s.pos.UnmakeMove(m)
			continue
		}

		var score int32
		if rep := s.gameRepeats[s.pos.Zobrist]; rep >= 2 {
			score = 0
		} else if s.doubleTwo && s.repetitionLookahead(s.pos) {
			score = 0
		} else if first {
			score = -s.negamax(-beta, -alpha, depth-1)
		} else {
			score = -s.negamax(-alpha-1, -alpha, depth-1)
			if score > alpha {
				score = -s.negamax(-beta, -alpha, depth-1)
			}
		}
		s.pos.UnmakeMove(m)
		first = false

		results = append(results, scored{m, score})
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}

	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].v > results[i].v {
				results[i], results[j] = results[j], results[i]
			}
		}
	}
	ordered = make([]Move, len(results))
	for i, r := range results {
		ordered[i] = r.m
	}
	return best, bestScore, ordered, true
}

// checkTime polls the clock and latches s.stopped once tripped, so a
// single expired check is enough to unwind the whole tree.
func (s *Search) checkTime() bool {
	if s.stopped {
		return true
	}
	if s.tc != nil && s.tc.Stopped() {
		s.stopped = true
	}
	return s.stopped
}

// negamax implements the order of operations: terminal check, check
// extension, quiescence handoff, null-move pruning, TT probe, move
// ordering, PVS descent, TT store.
func (s *Search) negamax(alpha, beta int32, depth int) int32 {
	s.Stats.Nodes++
	if s.checkTime() {
		return alpha
	}

	pos := s.pos
	us := pos.SideToMove
	inCheck := pos.InCheck
	ply := s.ply() & (maxPly - 1)

	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		if inCheck {
			return -MateScore + int32(s.ply())
		}
		return 0
	}
	// The null-move search below regenerates into pos.MoveBuffer, which
	// moves aliases; copy it out first.
	cp := make([]Move, len(moves))
	copy(cp, moves)

	if inCheck {
		depth += checkExtension
	}
	if depth <= 1 {
		return s.quiescence(alpha, beta, 0)
	}

	if !pos.NullMoveApplied && !inCheck && depth > nullMoveDepthLimit {
		pos.MakeNullMove()
		score := -s.negamax(-beta, -beta+1, depth-1-nullMoveReduction)
		pos.UnmakeNullMove()
		if score >= beta {
			return beta
		}
	}

	var ttMove Move
	if mv, score, ttDepth, kind, quiet, ok := s.TT.Probe(pos.Zobrist); ok {
		ttMove = mv
		if ttDepth >= depth && !quiet {
			switch kind {
			case nodeExact:
				return score
			case nodeUpperBound:
				if score <= alpha {
					return alpha
				}
			case nodeLowerBound:
				if score >= beta {
					return beta
				}
			}
		}
	}

	orderMoves(cp, nil, ttMove, &s.killers[ply], &s.history, pos)

	origAlpha := alpha
	var best Move
	legalSeen := false

	for i, m := range cp {
		pos.MakeMove(m)
		if pos.IsCheckedSide(us) {
			pos.UnmakeMove(m)
			continue
		}
		legalSeen = true

		var score int32
		if rep := s.gameRepeats[pos.Zobrist]; rep >= 2 {
			score = 0
		} else if s.doubleTwo && s.repetitionLookahead(pos) {
			score = 0
		} else if i == 0 {
			score = -s.negamax(-beta, -alpha, depth-1)
		} else {
			score = -s.negamax(-alpha-1, -alpha, depth-1)
			if score > alpha && score < beta {
				score = -s.negamax(-beta, -alpha, depth-1)
			}
		}
		pos.UnmakeMove(m)

		if score >= beta {
			if isQuiet(pos, m) {
				s.recordKiller(ply, m)
			}
			s.TT.Store(pos.Zobrist, m, beta, depth, nodeLowerBound, false)
			return beta
		}
		if score > alpha {
			alpha = score
			best = m
			if isQuiet(pos, m) {
				s.history.add(pos.Get(m.From()), m.To(), depth)
			}
		}
	}

	if !legalSeen {
		if inCheck {
			return -MateScore + int32(s.ply())
		}
		return 0
	}

	kind := nodeUpperBound
	if alpha > origAlpha {
		kind = nodeExact
	}
	s.TT.Store(pos.Zobrist, best, alpha, depth, kind, false)
	return alpha
}

// quiescence searches captures (every legal move when in check) until the
// position is quiet or qDepth reaches the bound. Quiet moves that give
// check are not searched.
func (s *Search) quiescence(alpha, beta int32, qDepth int) int32 {
	s.Stats.Nodes++
	if s.checkTime() {
		return alpha
	}

	pos := s.pos
	inCheck := pos.InCheck

	if !inCheck {
		static := Evaluate(pos) * sideMultiplier(pos.SideToMove)
		if static >= beta {
			return beta
		}
		if static > alpha {
			alpha = static
		}
	}
	if qDepth >= quiescenceDepthLimit {
		return alpha
	}

	moves := pos.GenerateMoves()
	captures := moves[:0:0]
	for _, m := range moves {
		if !inCheck && !isCaptureMove(pos, m) {
			continue
		}
		captures = append(captures, m)
	}
	orderMoves(captures, nil, NullMove, nil, &s.history, pos)

	us := pos.SideToMove
	for _, m := range captures {
		pos.MakeMove(m)
		if pos.IsCheckedSide(us) {
			pos.UnmakeMove(m)
			continue
		}
		score := -s.quiescence(-beta, -alpha, qDepth+1)
		pos.UnmakeMove(m)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func sideMultiplier(c Color) int32 {
	if c == White {
		return 1
	}
	return -1
}

func isCaptureMove(pos *Position, m Move) bool {
	return !pos.IsEmpty(m.To()) || (pos.Get(m.From()).Figure() == FigurePawn && m.To() == pos.EpTarget)
}

func isQuiet(pos *Position, m Move) bool { return !isCaptureMove(pos, m) }

func (s *Search) recordKiller(ply int, m Move) {
	k := &s.killers[ply]
	if k[0] != m {
		k[1] = k[0]
		k[0] = m
	}
}

// orderMoves sorts ms in place by descending sort key: the TT move scores
// ttMoveBonus, captures score victim value*64 minus attacker rank (MVV-LVA,
// so a capture of a knight or anything heavier sorts ahead of the TT move),
// then killers, then history.
func orderMoves(ms []Move, preferred []Move, ttMove Move, killers *[2]Move, history *historyTable, pos *Position) {
	rank := make(map[Move]int, len(preferred))
	for i, m := range preferred {
		rank[m] = len(preferred) - i
	}

	keys := make([]int32, len(ms))
	for i, m := range ms {
		switch {
		case m == ttMove && ttMove != NullMove:
			keys[i] = ttMoveBonus
		case isCaptureMove(pos, m):
			victim := pos.Get(m.To()).Figure()
			if pos.IsEmpty(m.To()) {
				victim = FigurePawn // en passant
			}
			attacker := pos.Get(m.From()).Figure()
			keys[i] = mvvlvaVictim[victim]*64 - mvvlvaAttacker[attacker]
		case killers != nil && m == killers[0]:
			keys[i] = killerOneBonus
		case killers != nil && m == killers[1]:
			keys[i] = killerTwoBonus
		default:
			keys[i] = history.get(pos.Get(m.From()), m.To())
		}
		if r, ok := rank[m]; ok {
			keys[i] += int32(r) * ttMoveBonus
		}
	}

	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && keys[j-1] < keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
			ms[j-1], ms[j] = ms[j], ms[j-1]
		}
	}
}
