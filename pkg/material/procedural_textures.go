package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Parity selects how a world coordinate is mapped to a checker cell index
type Parity int

const (
	// TruncatedParity truncates toward zero, so the cells touching the origin are twice as
	// wide as the others. This is the default.
	TruncatedParity Parity = iota
	// FlooredParity uses floor, giving uniform cells on both sides of the origin.
	FlooredParity
)

// checkerScale is the number of cells per world unit along each axis
const checkerScale = 2.0

// Checkerboard is a procedural two-color pattern in the XZ plane
type Checkerboard struct {
	Even   core.Vec3 // Color where the X and Z cell parities match
	Odd    core.Vec3 // Color where they differ
	Parity Parity
}

// NewCheckerboard creates a white/black checkerboard
func NewCheckerboard(parity Parity) *Checkerboard {
	return &Checkerboard{
		Even:   core.NewVec3(1, 1, 1),
		Odd:    core.NewVec3(0, 0, 0),
		Parity: parity,
	}
}

// Evaluate returns the checker color at the given point. Y is ignored.
func (c *Checkerboard) Evaluate(point core.Vec3) core.Vec3 {
	if c.cellParity(point.X) == c.cellParity(point.Z) {
		return c.Even
	}
	return c.Odd
}

// cellParity returns 0 or 1 for the cell containing coordinate v
func (c *Checkerboard) cellParity(v float64) int {
	scaled := v * checkerScale
	var cell float64
	if c.Parity == FlooredParity {
		cell = math.Floor(scaled)
	} else {
		cell = math.Trunc(scaled)
	}
	// Stay in float64 so cells beyond the int range keep their parity
	if math.Abs(math.Mod(cell, 2)) == 1 {
		return 1
	}
	return 0
}
