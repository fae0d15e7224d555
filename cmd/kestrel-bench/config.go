package main

import (
	"github.com/BurntSushi/toml"

	"github.com/kestrelchess/kestrel/engine"
)

// weightsFile is the decoding target for an optional kestrel.toml, shaped
// after Mgrdich-TermChess's ConfigFile/toml.DecodeFile pattern: a small
// struct of plain fields decoded in one call, with zero-value fields left
// untouched rather than zeroing out the built-in table.
type weightsFile struct {
	Material struct {
		PawnMg, PawnEg     int32
		KnightMg, KnightEg int32
		BishopMg, BishopEg int32
		RookMg, RookEg     int32
		QueenMg, QueenEg   int32
	}
}

// loadWeightsOverlay decodes path and applies any non-zero fields on top
// of the engine's built-in material table. A field left at zero in the
// TOML file (including simply being absent) keeps the engine's default
// for that figure, so a kestrel.toml only needs to name the weights it
// wants to change.
func loadWeightsOverlay(path string) error {
	var f weightsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return err
	}

	w := engine.CurrentMaterialWeights()
	overlayScore(&w.Pawn, f.Material.PawnMg, f.Material.PawnEg)
	overlayScore(&w.Knight, f.Material.KnightMg, f.Material.KnightEg)
	overlayScore(&w.Bishop, f.Material.BishopMg, f.Material.BishopEg)
	overlayScore(&w.Rook, f.Material.RookMg, f.Material.RookEg)
	overlayScore(&w.Queen, f.Material.QueenMg, f.Material.QueenEg)
	engine.SetMaterialWeights(w)
	return nil
}

func overlayScore(s *engine.Score, mg, eg int32) {
	if mg != 0 {
		s.M = mg
	}
	if eg != 0 {
		s.E = eg
	}
}
