package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/scene"
)

// Grid maps the world's X/Z plane onto terminal cells centred on the
// observer. Cells are roughly twice as tall as wide, so a row covers twice
// the distance of a column.
type Grid struct {
	Center     mgl64.Vec3
	Cols, Rows int
	// CellWidth is metres per column.
	CellWidth float64
}

// Cell returns the cell containing world point p.
func (g Grid) Cell(p mgl64.Vec3) (x, y int, ok bool) {
	fx := float64(g.Cols)/2 + (p.X()-g.Center.X())/g.CellWidth
	fy := float64(g.Rows)/2 + (p.Z()-g.Center.Z())/(2*g.CellWidth)
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	return x, y, x < g.Cols && y < g.Rows
}

// Glyph picks the character for a material kind.
func Glyph(kind string) rune {
	switch kind {
	case scene.KindJet:
		return 'A'
	case scene.KindBullet:
		return '*'
	case scene.KindCube:
		return '#'
	default:
		return '?'
	}
}

// HeadingGlyph draws the observer with an arrow for its facing direction,
// given as a world X/Z vector.
func HeadingGlyph(dir mgl64.Vec3) rune {
	x, z := dir.X(), dir.Z()
	if abs(x) > abs(z) {
		if x > 0 {
			return '>'
		}
		return '<'
	}
	if z > 0 {
		return 'v'
	}
	return '^'
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
