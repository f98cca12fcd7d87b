package input

// TouchTracker turns polled snapshots of active touches into DOM-style touch events.
// Hosts that only expose the current contact set each frame (ebiten) feed every snapshot to
// Update and publish the returned events in order.
type TouchTracker struct {
	active map[int]TouchPoint
}

// NewTouchTracker creates a tracker with no active touches.
//
// Returns:
//   - *TouchTracker: the tracker
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{active: make(map[int]TouchPoint)}
}

// Update diffs the snapshot against the previous one.
// Lifted contacts produce a TouchEnd, new contacts a TouchStart, and when the set is unchanged
// any position change produces a TouchMove. Each event lists all contacts active after it.
//
// Parameters:
//   - points: every contact currently down
//
// Returns:
//   - []TouchEvent: events describing the transition, possibly empty
func (t *TouchTracker) Update(points []TouchPoint) []TouchEvent {
	var events []TouchEvent

	current := make(map[int]TouchPoint, len(points))
	for _, p := range points {
		current[p.ID] = p
	}

	ended := false
	for id := range t.active {
		if _, ok := current[id]; !ok {
			ended = true
			break
		}
	}
	if ended {
		var survivors []TouchPoint
		for _, p := range points {
			if _, ok := t.active[p.ID]; ok {
				survivors = append(survivors, p)
			}
		}
		events = append(events, TouchEvent{Phase: TouchEnd, Touches: survivors})
	}

	started := false
	for _, p := range points {
		if _, ok := t.active[p.ID]; !ok {
			started = true
			break
		}
	}
	if started {
		events = append(events, TouchEvent{Phase: TouchStart, Touches: clonePoints(points)})
	}

	if !ended && !started {
		for _, p := range points {
			if prev := t.active[p.ID]; prev.X != p.X || prev.Y != p.Y {
				events = append(events, TouchEvent{Phase: TouchMove, Touches: clonePoints(points)})
				break
			}
		}
	}

	t.active = current
	return events
}

// Reset forgets every active contact.
//
// Returns:
//   - []TouchEvent: a single TouchCancel when contacts were active, otherwise nil
func (t *TouchTracker) Reset() []TouchEvent {
	if len(t.active) == 0 {
		return nil
	}
	t.active = make(map[int]TouchPoint)
	return []TouchEvent{{Phase: TouchCancel}}
}

func clonePoints(points []TouchPoint) []TouchPoint {
	out := make([]TouchPoint, len(points))
	copy(out, points)
	return out
}
