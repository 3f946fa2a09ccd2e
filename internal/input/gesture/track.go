package gesture

// Track holds the state of the single active touch on one axis.
type Track struct {
	// active indicates a touch is in progress.
	active bool

	// start is the coordinate captured at touch start.
	start float64

	// offset is the signed distance from start.
	offset float64
}

// Begin starts tracking at coordinate c.
// Returns false, leaving the current track untouched, if a track is already active.
func (t *Track) Begin(c float64) bool {
	if t.active {
		return false
	}
	t.active = true
	t.start = c
	t.offset = 0
	return true
}

// Move updates the offset from the start coordinate.
// Returns false if no track is active.
func (t *Track) Move(c float64) bool {
	if !t.active {
		return false
	}
	t.offset = c - t.start
	return true
}

// End deactivates the track and returns the final offset.
// The second result is false if no track was active.
func (t *Track) End() (float64, bool) {
	if !t.active {
		return 0, false
	}
	offset := t.offset
	t.Clear()
	return offset, true
}

// Clear discards the track.
func (t *Track) Clear() {
	t.active = false
	t.start = 0
	t.offset = 0
}

// Active returns true if a touch is in progress.
func (t *Track) Active() bool {
	return t.active
}

// Start returns the coordinate captured at touch start.
func (t *Track) Start() float64 {
	return t.start
}

// Offset returns the signed distance from the start coordinate.
func (t *Track) Offset() float64 {
	return t.offset
}
