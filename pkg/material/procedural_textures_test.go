package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	white = core.NewVec3(1, 1, 1)
	black = core.NewVec3(0, 0, 0)
)

func TestCheckerboard_Periodic(t *testing.T) {
	for _, parity := range []Parity{TruncatedParity, FlooredParity} {
		board := NewCheckerboard(parity)

		// Stay away from the origin so truncation and floor agree on cell width
		for _, x := range []float64{0.6, 1.3, 2.7, 5.05} {
			for _, z := range []float64{0.55, 1.8, 3.1} {
				p := core.NewVec3(x, 0, z)
				q := core.NewVec3(x+1, 0, z+1)
				r := core.NewVec3(x+1, 0, z)
				if board.Evaluate(p) != board.Evaluate(q) {
					t.Errorf("parity %d: color at %v should repeat at %v", parity, p, q)
				}
				if board.Evaluate(p) != board.Evaluate(r) {
					t.Errorf("parity %d: color at %v should repeat one unit along X at %v", parity, p, r)
				}
			}
		}
	}
}

func TestCheckerboard_AdjacentCellsAlternate(t *testing.T) {
	board := NewCheckerboard(TruncatedParity)

	tests := []struct {
		name string
		a, b core.Vec3
	}{
		{"step along X", core.NewVec3(0.75, 0, 0.75), core.NewVec3(1.25, 0, 0.75)},
		{"step along Z", core.NewVec3(0.75, 0, 0.75), core.NewVec3(0.75, 0, 1.25)},
		{"far positive X", core.NewVec3(10.25, 0, 3.75), core.NewVec3(10.75, 0, 3.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if board.Evaluate(tt.a) == board.Evaluate(tt.b) {
				t.Errorf("Expected %v and %v to have different colors", tt.a, tt.b)
			}
		})
	}
}

func TestCheckerboard_OriginAsymmetry(t *testing.T) {
	// -0.4 and 0.4 truncate to the same cell, floor puts them in neighbouring cells
	near := core.NewVec3(0.2, 0, 0.2)
	mirrored := core.NewVec3(-0.2, 0, 0.2)

	truncated := NewCheckerboard(TruncatedParity)
	if truncated.Evaluate(near) != white || truncated.Evaluate(mirrored) != white {
		t.Errorf("Truncated parity: expected both sides of the origin to be white, got %v and %v",
			truncated.Evaluate(near), truncated.Evaluate(mirrored))
	}

	floored := NewCheckerboard(FlooredParity)
	if floored.Evaluate(near) != white {
		t.Errorf("Floored parity: expected %v to be white, got %v", near, floored.Evaluate(near))
	}
	if floored.Evaluate(mirrored) != black {
		t.Errorf("Floored parity: expected %v to be black, got %v", mirrored, floored.Evaluate(mirrored))
	}
}

func TestCheckerboard_NegativeRemainder(t *testing.T) {
	// trunc(2 * -0.6) = -1; the remainder must be treated as 1, matching trunc(2 * 0.6) = 1
	board := NewCheckerboard(TruncatedParity)
	p := core.NewVec3(-0.6, 0, 0.6)
	if board.Evaluate(p) != white {
		t.Errorf("Expected %v to be white, got %v", p, board.Evaluate(p))
	}
}

func TestCheckerboard_FarCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		expected int
	}{
		{"largest odd exact cell", (1<<52 + 1) / 2.0, 1},
		{"negative odd exact cell", -(1<<52 + 1) / 2.0, 1},
		{"beyond int64", 1e19, 0},
		{"beyond int64 negative", -3e19, 0},
	}

	for _, parity := range []Parity{TruncatedParity, FlooredParity} {
		board := NewCheckerboard(parity)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := board.cellParity(tt.v); got != tt.expected {
					t.Errorf("parity %d: expected cell parity %d for %g, got %d", parity, tt.expected, tt.v, got)
				}
			})
		}
	}
}

func TestCheckerboard_IgnoresHeight(t *testing.T) {
	board := NewCheckerboard(TruncatedParity)
	a := board.Evaluate(core.NewVec3(1.3, -0.5, 2.2))
	b := board.Evaluate(core.NewVec3(1.3, 42, 2.2))
	if a != b {
		t.Errorf("Expected color to be independent of Y, got %v and %v", a, b)
	}
}

func TestMaterialConstructors(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	sphere := NewSphereMaterial(red)
	if sphere.Reflection != SphereReflection {
		t.Errorf("Expected sphere reflection %f, got %f", SphereReflection, sphere.Reflection)
	}
	if got := sphere.Color.Evaluate(core.NewVec3(5, 5, 5)); got != red {
		t.Errorf("Expected solid color %v, got %v", red, got)
	}

	plane := NewPlaneMaterial(TruncatedParity)
	if plane.Reflection != PlaneReflection {
		t.Errorf("Expected plane reflection %f, got %f", PlaneReflection, plane.Reflection)
	}
}
