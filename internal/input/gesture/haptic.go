package gesture

// HapticDevice emits short tactile feedback.
type HapticDevice interface {
	// Pulse requests a single short pulse. Best effort.
	Pulse()
}

// HapticFunc adapts a function to a HapticDevice.
type HapticFunc func()

// Pulse calls f.
func (f HapticFunc) Pulse() {
	if f != nil {
		f()
	}
}

// pulse requests feedback from d if the capability is present.
func pulse(d HapticDevice) {
	if d != nil {
		d.Pulse()
	}
}
