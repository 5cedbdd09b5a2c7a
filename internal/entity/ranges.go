package entity

import (
	"math"

	"go-towers/internal/defs"
	"go-towers/pkg/gridmap"
)

// Range decides whether an offset from a tower, in cell units, is within reach.
type Range interface {
	Contains(offset gridmap.Point) bool
}

// CircularRange reaches everything within Radius cells.
type CircularRange struct {
	Radius float64
}

func (r CircularRange) Contains(offset gridmap.Point) bool {
	return offset.Length() <= r.Radius
}

// PlusRange reaches along the row and column of the tower, between Min and Max cells away.
type PlusRange struct {
	Min, Max float64
}

func (r PlusRange) Contains(offset gridmap.Point) bool {
	ax, ay := math.Abs(offset.X), math.Abs(offset.Y)
	if ax <= 0.5 && ay >= r.Min && ay <= r.Max {
		return true
	}
	return ay <= 0.5 && ax >= r.Min && ax <= r.Max
}

// NewRange builds the range described by a definition.
func NewRange(def defs.RangeDef) Range {
	if def.Shape == defs.RangePlus {
		return PlusRange{Min: def.Min, Max: def.Max}
	}
	return CircularRange{Radius: def.Radius}
}
