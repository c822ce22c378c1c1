package math

// Vec2 is a 2D vector. It carries screen sizes and top-down projections.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Min returns the component-wise minimum.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{min(v.X, other.X), min(v.Y, other.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{max(v.X, other.X), max(v.Y, other.Y)}
}
