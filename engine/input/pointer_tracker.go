package input

// PointerTracker derives relative movement from absolute cursor positions, for hosts that do
// not report movementX/movementY themselves.
type PointerTracker struct {
	x, y  float32
	valid bool
}

// Move records a cursor position and returns the movement since the previous one. The first
// position after construction or Reset yields zero movement.
//
// Parameters:
//   - x, y: absolute cursor position in pixels
//
// Returns:
//   - dx, dy: movement since the previous position
func (p *PointerTracker) Move(x, y float32) (dx, dy float32) {
	if p.valid {
		dx, dy = x-p.x, y-p.y
	}
	p.x, p.y, p.valid = x, y, true
	return dx, dy
}

// Position returns the last recorded position.
func (p *PointerTracker) Position() (x, y float32) {
	return p.x, p.y
}

// Reset forgets the last position so a cursor warp does not read as movement.
func (p *PointerTracker) Reset() {
	p.valid = false
}
