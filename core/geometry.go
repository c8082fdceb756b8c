package core

import "math/rand"

// Vec2 is a world-space position
type Vec2 struct {
	X, Y float64
}

// Add returns v+o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is an axis-aligned region, Min inclusive and Max exclusive
type Rect struct {
	Min, Max Vec2
}

// RectXYWH builds a Rect from a corner and a size
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// Width of the region
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height of the region
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports a zero or negative area
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Center of the region
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// RandomPoint returns a point uniformly distributed over r
// An empty region collapses to its Min corner
func (r Rect) RandomPoint(rng *rand.Rand) Vec2 {
	if r.Empty() {
		return r.Min
	}
	return Vec2{
		X: r.Min.X + rng.Float64()*r.Width(),
		Y: r.Min.Y + rng.Float64()*r.Height(),
	}
}
