package render

// Scanline is a per-row span record in 24.8 fixed point (§3).
type Scanline struct {
	StartX, EndX         int
	StartShade, EndShade int
}

// ScanlineBuffer holds one Scanline per screen row, reused across
// polygons within a frame (§3 "ScanlineBuffer").
type ScanlineBuffer struct {
	rows   []Scanline
	baseY  int
	clipY  int
}

// NewScanlineBuffer allocates a buffer sized baseY+clipY (§3 invariant).
func NewScanlineBuffer(baseY, clipY int) *ScanlineBuffer {
	return &ScanlineBuffer{
		rows:  make([]Scanline, baseY+clipY),
		baseY: baseY,
		clipY: clipY,
	}
}

// Resize reallocates the buffer for new bounds, as SceneRenderer.SetBounds
// does (§6).
func (b *ScanlineBuffer) Resize(baseY, clipY int) {
	b.rows = make([]Scanline, baseY+clipY)
	b.baseY = baseY
	b.clipY = clipY
}

// Len returns the buffer's row count.
func (b *ScanlineBuffer) Len() int { return len(b.rows) }

// Row returns the Scanline for row y.
func (b *ScanlineBuffer) Row(y int) *Scanline { return &b.rows[y] }

// InitRow resets row y to the empty-span sentinel used by the general
// scanline path (scanEdgesGeneral, every vertex count) before edges are
// walked (§4.4 step 4):
// [+640000, -655360] guarantees any real edge contribution narrows it.
func (b *ScanlineBuffer) InitRow(y int) {
	b.rows[y].StartX = 640000
	b.rows[y].EndX = -655360
}
