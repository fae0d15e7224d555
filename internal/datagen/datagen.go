// Package datagen generates self-play (FEN, result) training data for
// offline weight tuning, the way the original C++ source's
// DataGenerator.h/.cpp does for Tesseract. zurichess (the teacher) has no
// direct equivalent, but gates its own experimental feature-tuning code
// (score_coach.go, features_coach.go, lib_coach.go) behind a `coach` build
// tag so the instrumented path never ships in the normal engine binary;
// this package follows that same convention with its own `gen` tag, via
// the Generate function-variable swap in datagen_gen.go.
package datagen

import (
	"fmt"
	"time"
)

// GameRecord is one exported training sample: a position and the
// eventual game result from White's point of view (1 = White win,
// 0 = Black win, 0.5 = draw).
type GameRecord struct {
	FEN           string
	Material      int32
	Mobility      int32
	PawnStructure int32
	Result        float64
}

// Header names the exported CSV columns, following the teacher's
// registerMany/registerOne labeling convention for naming tunable
// features by what they measure rather than their storage slot.
var Header = []string{"fen", "material_psqt", "mobility", "pawn_structure", "result"}

// Available reports whether this binary was built with `-tags gen`, the
// only configuration in which self-play generation is compiled in.
var Available = false

// Generate runs `games` self-play games, each capped at maxPlies half-moves
// and moveTime thinking per move, and returns one GameRecord per position
// visited. Overridden by datagen_gen.go when built with `-tags gen`; the
// default implementation always fails so a normal build never silently
// skips generation without saying why.
var Generate func(games, maxPlies int, moveTime time.Duration) ([]GameRecord, error) = generateUnavailable

func generateUnavailable(int, int, time.Duration) ([]GameRecord, error) {
	return nil, fmt.Errorf("datagen: this binary was built without -tags gen")
}
