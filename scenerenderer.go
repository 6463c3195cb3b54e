package render

import "math/rand"

// Stats reports counters from the most recently completed Render call,
// useful for tests and diagnostics without exposing internal state.
type Stats struct {
	VisiblePolygons   int
	IntersectionSwaps int
	GradientEvictions int
	MousePicks        int
}

// SceneRenderer is the per-frame conductor: camera setup, per-model
// projection, per-face visibility cull, polygon list build, depth sort,
// intersection resolve, and per-polygon scanline generation plus
// rasterization (§4.1).
type SceneRenderer struct {
	scene         *Scene
	width, height int

	baseX, baseY int
	clipX, clipY int
	viewDistance int

	pool       *PolygonPool
	buf        *ScanlineBuffer
	picker     *MousePicker
	gradients  *GradientCache
	rasterizer *Rasterizer
	projector  PolygonProjector
	scanliner  ScanlineGenerator
	sorter     DepthSorter

	gradientRand *rand.Rand
	stats        Stats
}

// NewSceneRenderer constructs a renderer for scene at the given surface
// dimensions, defaulting bounds to the full surface centered at its
// midpoint (§6 "Construction: (scene, widthPixels, heightPixels)").
func NewSceneRenderer(scene *Scene, widthPixels, heightPixels int, opts ...Option) *SceneRenderer {
	r := &SceneRenderer{
		scene:        scene,
		width:        widthPixels,
		height:       heightPixels,
		baseX:        widthPixels / 2,
		baseY:        heightPixels / 2,
		clipX:        widthPixels / 2,
		clipY:        heightPixels / 2,
		viewDistance: ViewDistance,
		pool:         NewPolygonPool(),
		picker:       NewMousePicker(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.buf = NewScanlineBuffer(r.baseY, r.clipY)
	r.gradients = NewGradientCache(r.gradientRand)
	r.rasterizer = NewRasterizer(r.gradients)
	return r
}

// SetBounds reallocates the scanline buffer and resets the mouse picker
// for new projection bounds (§6). clipX/clipY are half-extents from the
// projection center (baseX, baseY).
func (r *SceneRenderer) SetBounds(baseX, baseY, clipX, clipY, width, viewDistance int) {
	r.baseX, r.baseY = baseX, baseY
	r.clipX, r.clipY = clipX, clipY
	r.width = width
	r.viewDistance = viewDistance
	r.buf.Resize(baseY, clipY)
	r.picker.Reset()
}

// GetMousePicker returns the picker populated by the most recent Render
// call (§6 "getMousePicker()").
func (r *SceneRenderer) GetMousePicker() *MousePicker { return r.picker }

// Stats reports counters from the most recently completed Render call.
func (r *SceneRenderer) Stats() Stats { return r.stats }

// Render performs one full frame: project, cull, sort, generate
// scanlines, rasterize (§4.1).
func (r *SceneRenderer) Render(surface *PixelSurface) {
	r.pool.Reset()
	r.picker.Reset()

	camera := r.scene.Camera
	clipXModified := (r.clipX * ClipFar3d) >> uint(r.viewDistance)
	clipYModified := (r.clipY * ClipFar3d) >> uint(r.viewDistance)
	camera.PrepareForRendering(r.clipX, r.clipY, ClipFar3d, clipXModified, clipYModified)

	for _, m := range r.scene.Models {
		m.Project(camera, r.viewDistance, ClipNear)
	}
	if r.scene.SpriteFaces != nil {
		r.scene.SpriteFaces.IsSpriteSet = true
		r.scene.SpriteFaces.Project(camera, r.viewDistance, ClipNear)
	}

	for _, m := range r.scene.Models {
		if !m.Visible {
			continue
		}
		r.buildModelPolygons(m)
	}
	r.buildSpriteFacePolygons()

	r.stats = Stats{VisiblePolygons: r.pool.Count()}
	if r.pool.Count() == 0 {
		return
	}

	polys := r.pool.visible
	swaps := r.sorter.Sort(polys)
	evictionsBefore := r.gradients.Evictions()

	pickX, pickY := r.picker.Position()
	pickActive := pickX >= 0 && pickY >= 0
	pickViewX := pickX - r.baseX

	for _, poly := range polys {
		if poly.isSprite {
			left, top := r.baseX+poly.spriteAnchorX, r.baseY+poly.spriteAnchorY-poly.spriteDrawH
			if pickActive && pickY >= top && pickY < top+poly.spriteDrawH &&
				pickX >= left && pickX < left+poly.spriteDrawW {
				r.picker.addIf(r.scene.SpriteEntities[poly.face].Pickable, poly.model, poly.face)
			}
			surface.spriteClip(left, top, poly.spriteDrawW, poly.spriteDrawH, poly.spriteID)
			continue
		}
		minY, maxY := r.scanliner.Build(poly, r.scene, surface, r.buf, r.baseY, pickY, pickViewX, pickActive, r.picker)
		if minY >= maxY {
			continue
		}
		r.rasterizer.Render(poly, surface, r.buf, minY, maxY, r.baseX, r.baseY, r.clipX)
	}

	r.stats.IntersectionSwaps = swaps
	r.stats.GradientEvictions = r.gradients.Evictions() - evictionsBefore
	r.stats.MousePicks = len(r.picker.Entries())
}

// buildModelPolygons runs the 3D visibility cull and polygon build for
// every face of m (§4.1 step 3).
func (r *SceneRenderer) buildModelPolygons(m *Model) {
	for face := range m.FaceVertices {
		verts := m.FaceVertices[face]
		if !r.faceInZBand(m, verts) {
			continue
		}
		if !r.faceInHalfPlanes(m, verts) {
			continue
		}

		poly := r.pool.Acquire()
		if poly == nil {
			return
		}
		depth := r.averageDepth(m, verts) + m.DepthBias
		r.projector.initialisePolygon3d(poly, m, face, 0, depth)

		var fill int
		if poly.visibility < 0 {
			fill = m.FaceFillFront[face]
		} else {
			fill = m.FaceFillBack[face]
		}
		if fill == ColourTransparent {
			r.pool.visible = r.pool.visible[:len(r.pool.visible)-1]
			continue
		}
		poly.faceFill = fill
	}
}

func (r *SceneRenderer) faceInZBand(m *Model, verts []int) bool {
	for _, vi := range verts {
		z := m.ProjectVertexZ[vi]
		if z > ClipNear && z < ClipFar3d {
			return true
		}
	}
	return false
}

func (r *SceneRenderer) faceInHalfPlanes(m *Model, verts []int) bool {
	maskX, maskY := 0, 0
	for _, vi := range verts {
		x, y := m.VertexViewX[vi], m.VertexViewY[vi]
		if x > -r.clipX {
			maskX |= 1
		}
		if x < r.clipX {
			maskX |= 2
		}
		if y > -r.clipY {
			maskY |= 1
		}
		if y < r.clipY {
			maskY |= 2
		}
	}
	return maskX == 3 && maskY == 3
}

func (r *SceneRenderer) averageDepth(m *Model, verts []int) int {
	sum := 0
	for _, vi := range verts {
		sum += m.ProjectVertexZ[vi]
	}
	return sum / len(verts)
}

// buildSpriteFacePolygons runs the 2D billboard visibility cull and
// polygon build for the scene's sprite-faces pseudo-model (§4.1 step 4).
func (r *SceneRenderer) buildSpriteFacePolygons() {
	sf := r.scene.SpriteFaces
	if sf == nil {
		return
	}
	for face := range sf.FaceVertices {
		if face >= len(r.scene.SpriteEntities) {
			continue
		}
		ent := r.scene.SpriteEntities[face]
		verts := sf.FaceVertices[face]
		v0, v1 := verts[0], verts[1]
		z0 := sf.ProjectVertexZ[v0]
		if z0 <= ClipNear || z0 >= ClipFar2d {
			continue
		}

		w := (ent.Width << uint(r.viewDistance)) / z0
		h := (ent.Height << uint(r.viewDistance)) / z0
		vx, vy := sf.VertexViewX[v0], sf.VertexViewY[v0]
		anchorX := vx - w/2
		minX, maxX := anchorX, anchorX+w
		minY, maxY := vy-h, vy
		if maxX < -r.clipX || minX > r.clipX || maxY < -r.clipY || minY > r.clipY {
			continue
		}

		poly := r.pool.Acquire()
		if poly == nil {
			return
		}
		depth := (z0+sf.ProjectVertexZ[v1])/2 + sf.DepthBias
		r.projector.initialisePolygon2d(poly, sf, face, ent.SpriteID, depth)
		poly.spriteAnchorX, poly.spriteAnchorY = anchorX, vy
		poly.spriteDrawW, poly.spriteDrawH = w, h
	}
}
