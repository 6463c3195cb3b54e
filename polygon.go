package render

// Polygon is a core-owned, pooled per-face screen-space record built by
// PolygonProjector and consumed by DepthSorter, ScanlineGenerator, and
// Rasterizer (§3).
type Polygon struct {
	// model/face is a non-owning back-reference: Polygon is scratch state
	// reused every frame, never the owner of the Model (§9).
	model *Model
	face  int

	// depth is the average projected Z across the face's vertices plus
	// the model's depth bias.
	depth int

	// visibility is v0 . N; sign indicates which side of the polygon the
	// camera lies on, magnitude is used in separation tests.
	visibility int

	normalX, normalY, normalZ int

	minZ, maxZ                     int
	minPlaneX, maxPlaneX           int
	minPlaneY, maxPlaneY           int

	// faceFill is the resolved fill id for this polygon's orientation:
	// >=0 texture index, <0 encoded 15-bit gradient base, ColourTransparent
	// sentinel (skip), -2 (skip).
	faceFill int

	// isSprite marks a 2D billboard polygon (degree-2 "polygon": an edge,
	// not a closed shape) built by initialisePolygon2d.
	isSprite bool
	spriteID int

	// Sprite draw geometry in view-space (pre baseX/baseY), set by the
	// conductor's sprite-face build step (§4.1 step 4) and consumed by
	// its final spriteClip dispatch (§4.5).
	spriteAnchorX, spriteAnchorY int
	spriteDrawW, spriteDrawH     int

	// Scratch fields used only by the intersection resolver (§3).
	skipSomething bool
	index         int
	index2        int
}

// PolygonPool is an O(1)-per-frame allocator for Polygon records, sized to
// MaxPolygons (§3 "Lifecycle").
type PolygonPool struct {
	polygons []Polygon
	// visible holds pointers into polygons, reused across frames; the
	// slice is truncated and refilled each frame rather than reallocated.
	visible []*Polygon
}

// NewPolygonPool allocates the pool once.
func NewPolygonPool() *PolygonPool {
	p := &PolygonPool{
		polygons: make([]Polygon, MaxPolygons),
		visible:  make([]*Polygon, 0, MaxPolygons),
	}
	return p
}

// Reset clears the visible-polygon list for a new frame without
// deallocating the backing array.
func (p *PolygonPool) Reset() {
	p.visible = p.visible[:0]
}

// Count returns the number of polygons currently visible this frame.
func (p *PolygonPool) Count() int { return len(p.visible) }

// At returns the visible polygon at index i.
func (p *PolygonPool) At(i int) *Polygon { return p.visible[i] }

// Acquire returns a scratch Polygon to populate, or nil if the pool is
// exhausted (§3 "visiblePolygonCount never exceeds MAX_POLYGONS; on
// overflow the excess is silently dropped").
func (p *PolygonPool) Acquire() *Polygon {
	n := len(p.visible)
	if n >= MaxPolygons {
		Logger().Warn("visible polygon count saturated MAX_POLYGONS; dropping polygon", "max", MaxPolygons)
		return nil
	}
	poly := &p.polygons[n]
	*poly = Polygon{index: n, index2: -1}
	p.visible = append(p.visible, poly)
	return poly
}
