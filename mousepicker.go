package render

// PickEntry is one (model, face) hit recorded during scanline emission
// (§4.7).
type PickEntry struct {
	Model *Model
	Face  int
}

// MousePicker collects (model, face) pairs whose rasterized span covers
// the configured pointer location, in painter (back-to-front) order, so
// the last entry is the frontmost pickable hit (§4.7).
type MousePicker struct {
	x, y    int
	entries []PickEntry
}

// NewMousePicker creates a picker with no configured pointer location.
func NewMousePicker() *MousePicker {
	return &MousePicker{x: -1, y: -1}
}

// SetPosition configures the pointer location tested during the next
// frame's scanline generation.
func (p *MousePicker) SetPosition(x, y int) {
	p.x, p.y = x, y
}

// Position returns the configured pointer location.
func (p *MousePicker) Position() (x, y int) { return p.x, p.y }

// Reset clears the collected entries; called once per frame by
// SceneRenderer before scanline generation (§5 "must not be observed
// externally during a pass").
func (p *MousePicker) Reset() {
	p.entries = p.entries[:0]
}

// add records a hit, skipping unpickable models (§4.7).
func (p *MousePicker) add(m *Model, face int) {
	if m.Unpickable {
		return
	}
	p.entries = append(p.entries, PickEntry{Model: m, Face: face})
}

// addIf records a hit only when pickable is true, used for sprite faces
// whose pickability is per-entity rather than per-model (§4.1 step 4,
// §4.7).
func (p *MousePicker) addIf(pickable bool, m *Model, face int) {
	if !pickable {
		return
	}
	p.entries = append(p.entries, PickEntry{Model: m, Face: face})
}

// Entries returns all entries recorded this frame, in painter order.
func (p *MousePicker) Entries() []PickEntry { return p.entries }

// Topmost returns the last (frontmost) recorded entry, if any.
func (p *MousePicker) Topmost() (PickEntry, bool) {
	if len(p.entries) == 0 {
		return PickEntry{}, false
	}
	return p.entries[len(p.entries)-1], true
}
