package sim

import "math"

// Battlefield geometry in world units.
const (
	TileSize    = 48
	Cols        = 20
	Rows        = 12
	WorldWidth  = Cols * TileSize
	WorldHeight = Rows * TileSize
)

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// DistSq returns the squared distance between two points.
func (p Point) DistSq(o Point) float64 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return dx*dx + dy*dy
}

// Dist returns the distance between two points.
func (p Point) Dist(o Point) float64 {
	return math.Sqrt(p.DistSq(o))
}

// StepToward moves p toward target by at most step units along the
// straight line between them. It returns the new position and the
// distance that remained before moving.
func (p Point) StepToward(target Point, step float64) (Point, float64) {
	dx := target.X - p.X
	dy := target.Y - p.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return p, 0
	}
	return Point{X: p.X + dx/dist*step, Y: p.Y + dy/dist*step}, dist
}

// DefaultPath returns the built-in polyline enemies walk, from the left edge
// of the map to the base on the right edge. Every waypoint sits on a tile
// centre line.
func DefaultPath() []Point {
	const t, h = TileSize, TileSize / 2
	return []Point{
		{X: 0, Y: 2*t + h},
		{X: 5*t + h, Y: 2*t + h},
		{X: 5*t + h, Y: 8*t + h},
		{X: 14*t + h, Y: 8*t + h},
		{X: 14*t + h, Y: 4*t + h},
		{X: WorldWidth, Y: 4*t + h},
	}
}

// CellCenter returns the world position at the centre of a grid cell.
func CellCenter(col, row int) Point {
	return Point{
		X: float64(col*TileSize + TileSize/2),
		Y: float64(row*TileSize + TileSize/2),
	}
}

// CellAt returns the grid cell containing a world position.
func CellAt(p Point) (col, row int) {
	return int(math.Floor(p.X / TileSize)), int(math.Floor(p.Y / TileSize))
}

// segmentIntersectsRect reports whether the segment a-b touches the closed
// rectangle [minX,maxX]x[minY,maxY]. Liang-Barsky clipping with inclusive
// bounds, so a segment lying exactly on an edge counts as touching.
func segmentIntersectsRect(a, b Point, minX, minY, maxX, maxY float64) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - minX, maxX - a.X, a.Y - minY, maxY - a.Y}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return t0 <= t1
}
