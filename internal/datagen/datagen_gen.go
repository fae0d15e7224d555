//go:build gen

package datagen

import (
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

func init() {
	Available = true
	Generate = selfPlay
}

// selfPlay plays `games` games from the start position, each side picking
// its move via a short, fixed-movetime search, and records one GameRecord
// per position reached (before the move that leaves it is made) together
// with the eventual game result. Games end on checkmate, stalemate, the
// fifty-move rule, threefold repetition, or reaching maxPlies.
func selfPlay(games, maxPlies int, moveTime time.Duration) ([]GameRecord, error) {
	var out []GameRecord

	for g := 0; g < games; g++ {
		pos, err := engine.PositionFromFEN(engine.FENStartPos)
		if err != nil {
			return nil, err
		}
		tt := engine.NewHashTable(16)
		search := engine.NewSearch(pos, tt, engine.NulLogger{})

		type pending struct {
			fen                             string
			material, mobility, pawns int32
		}
		var positions []pending
		result := 0.5

		for ply := 0; ply < maxPlies; ply++ {
			moves := pos.GenerateMoves()
			if len(moves) == 0 {
				if pos.InCheck {
					if pos.SideToMove == engine.White {
						result = 0
					} else {
						result = 1
					}
				}
				break
			}
			if pos.IsFiftyMoveRule() || pos.IsThreeFoldRepetition() {
				break
			}

			brk := engine.Breakdown(pos)
			positions = append(positions, pending{
				fen:      pos.String(),
				material: brk.MaterialPSQT,
				mobility: brk.Mobility,
				pawns:    brk.PawnStructure,
			})

			tc := engine.NewTimeControl(pos)
			tc.MoveTime = moveTime
			move, _ := search.Play(tc)
			if move == engine.NullMove {
				break
			}
			pos.MakeMove(move)
			search.Push()
		}

		for _, p := range positions {
			out = append(out, GameRecord{
				FEN:           p.fen,
				Material:      p.material,
				Mobility:      p.mobility,
				PawnStructure: p.pawns,
				Result:        result,
			})
		}
	}

	return out, nil
}
