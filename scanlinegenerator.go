package render

import "math"

// ScanlineGenerator builds, for one 3D polygon, the per-row spans the
// rasterizer later fills, after synthesizing any vertices cut by the
// near plane and computing per-vertex lighting (§4.4). Sprite-face
// polygons never reach this type: SceneRenderer.Render dispatches those
// straight to PixelSurface.spriteClip (§4.5).
type ScanlineGenerator struct{}

// clipVertex is a post-near-clip polygon vertex in screen space.
type clipVertex struct {
	x, y, shade int
}

// Build populates buf's rows for poly's face and returns the row range
// [minY, maxY) written. When pickActive, it also feeds picker if the
// configured pointer falls inside the generated span for a pickable
// model: pickRow is a screen row (a buffer row index) and pickX a
// view-space column, already translated by baseX by the caller (§4.4
// step 5, §4.7).
func (ScanlineGenerator) Build(
	poly *Polygon,
	scene *Scene,
	surface *PixelSurface,
	buf *ScanlineBuffer,
	baseY int,
	pickRow, pickX int,
	pickActive bool,
	picker *MousePicker,
) (minY, maxY int) {
	m := poly.model
	verts := m.FaceVertices[poly.face]

	clipped := clipNearPlane(m, verts, poly, scene, surface)
	if len(clipped) < 3 {
		return 0, 0
	}

	// The source hand-unrolls plane==3 and plane==4 into dedicated edge
	// walkers for speed; the row-span result is identical to the general
	// walk below for any vertex count, so one implementation covers all
	// three cases (see DESIGN.md).
	minY, maxY = scanEdgesGeneral(buf, clipped, baseY)

	if pickActive && picker != nil {
		emitMousePick(poly, buf, minY, maxY, pickRow, pickX, picker)
	}
	return minY, maxY
}

// clipNearPlane walks poly's face vertices in order, passing through
// any vertex at or beyond clipNear and synthesizing up to two
// interpolated vertices for any vertex behind it, against whichever
// neighbor(s) are themselves at or beyond clipNear (§4.4 step 1).
func clipNearPlane(m *Model, verts []int, poly *Polygon, scene *Scene, surface *PixelSurface) []clipVertex {
	n := len(verts)
	out := make([]clipVertex, 0, n+2)
	for i, vi := range verts {
		if m.ProjectVertexZ[vi] >= ClipNear {
			out = append(out, clipVertex{
				x:     m.VertexViewX[vi],
				y:     m.VertexViewY[vi],
				shade: vertexShade(poly, m, vi, scene, surface),
			})
			continue
		}
		prev := verts[(i-1+n)%n]
		next := verts[(i+1)%n]
		if m.ProjectVertexZ[prev] >= ClipNear {
			out = append(out, interpNear(m, poly, scene, surface, prev, vi))
		}
		if m.ProjectVertexZ[next] >= ClipNear {
			out = append(out, interpNear(m, poly, scene, surface, vi, next))
		}
	}
	return out
}

// interpNear linearly interpolates the camera-space position and shade
// of an edge (aVert, bVert) at the near clip plane and projects the
// result the same way Model.Project does (§4.4 step 1).
func interpNear(m *Model, poly *Polygon, scene *Scene, surface *PixelSurface, aVert, bVert int) clipVertex {
	za, zb := m.ProjectVertexZ[aVert], m.ProjectVertexZ[bVert]
	var t float64
	if den := zb - za; den != 0 {
		t = float64(ClipNear-za) / float64(den)
	}

	px := float64(m.ProjectVertexX[aVert]) + t*float64(m.ProjectVertexX[bVert]-m.ProjectVertexX[aVert])
	py := float64(m.ProjectVertexY[aVert]) + t*float64(m.ProjectVertexY[bVert]-m.ProjectVertexY[aVert])

	x := int(math.Round(px)*float64(int(1)<<uint(ViewDistance))) / ClipNear
	y := int(math.Round(py)*float64(int(1)<<uint(ViewDistance))) / ClipNear

	shadeA := vertexShade(poly, m, aVert, scene, surface)
	shadeB := vertexShade(poly, m, bVert, scene, surface)
	shade := shadeA + int(t*float64(shadeB-shadeA))

	return clipVertex{x: x, y: y, shade: shade}
}

// vertexShade computes one vertex's light contribution for poly's face:
// flat face intensity, or per-vertex ambience/intensity when the face
// marks itself ColourTransparent; fog is then added, the result clamped
// to [0,255], and finally shifted to make headroom for the rasterizer's
// per-pixel shade accumulator — 9 bits for a large (>=128 wide) texture,
// 6 for anything else, only when the face actually resolves to a
// texture fill (§4.4 step 2).
func vertexShade(poly *Polygon, m *Model, vi int, scene *Scene, surface *PixelSurface) int {
	var shade int
	if m.FaceIntensity[poly.face] == ColourTransparent {
		if poly.visibility < 0 {
			shade = m.LightAmbience + m.VertexIntensity[vi] + m.VertexAmbience[vi]
		} else {
			shade = m.LightAmbience - m.VertexIntensity[vi] - m.VertexAmbience[vi]
		}
	} else {
		shade = m.FaceIntensity[poly.face]
	}

	if scene != nil && scene.FogZFalloff != 0 {
		if z := m.ProjectVertexZ[vi]; z > scene.FogZDistance {
			shade += (z - scene.FogZDistance) / scene.FogZFalloff
		}
	}

	shade = clampInt(shade, 0, 255)

	if poly.faceFill >= 0 && surface != nil {
		if tex := surface.TextureAt(poly.faceFill); tex != nil && tex.large() {
			shade <<= 9
		} else {
			shade <<= 6
		}
	}
	return shade
}

// scanEdgesGeneral walks every edge of a (already near-clipped) convex
// polygon, updating each row's [StartX,EndX] extent and matching shade
// (§4.4 step 4).
func scanEdgesGeneral(buf *ScanlineBuffer, verts []clipVertex, baseY int) (minY, maxY int) {
	n := len(verts)
	ys := make([]int, n)
	minRow, maxRow := 1<<30, -(1 << 30)
	for i, v := range verts {
		y := v.y + baseY
		ys[i] = y
		if y < minRow {
			minRow = y
		}
		if y > maxRow {
			maxRow = y
		}
	}

	lo, hi := 0, buf.Len()-1
	if minRow < lo {
		minRow = lo
	}
	if maxRow > hi {
		maxRow = hi
	}
	if minRow > maxRow {
		return 0, 0
	}
	for y := minRow; y <= maxRow; y++ {
		buf.InitRow(y)
	}

	for i := 0; i < n; i++ {
		walkEdge(buf, verts[i], ys[i], verts[(i+1)%n], ys[(i+1)%n], lo, hi)
	}

	return minRow, maxRow + 1
}

// walkEdge rasterizes one polygon edge into buf's row spans in 24.8
// fixed point.
func walkEdge(buf *ScanlineBuffer, a clipVertex, ya int, b clipVertex, yb int, lo, hi int) {
	if ya == yb {
		return
	}
	if ya > yb {
		a, b = b, a
		ya, yb = yb, ya
	}
	dy := yb - ya

	x0, x1 := toFixed(a.x), toFixed(b.x)
	s0, s1 := toFixed(a.shade), toFixed(b.shade)
	dx := divRound(x1-x0, dy)
	dShade := divRound(s1-s0, dy)

	x, shade := x0, s0
	for y := ya; y < yb; y++ {
		if y >= lo && y <= hi {
			row := buf.Row(y)
			if x < row.StartX {
				row.StartX = x
				row.StartShade = shade
			}
			if x > row.EndX {
				row.EndX = x
				row.EndShade = shade
			}
		}
		x += dx
		shade += dShade
	}
}

// emitMousePick records a pick hit if the view-space column pickX falls
// inside the span generated for screen row pickRow (§4.4 step 5).
func emitMousePick(poly *Polygon, buf *ScanlineBuffer, minY, maxY, pickRow, pickX int, picker *MousePicker) {
	if pickRow < minY || pickRow >= maxY {
		return
	}
	row := buf.Row(pickRow)
	x := toFixed(pickX)
	if x < row.StartX || x > row.EndX {
		return
	}
	picker.add(poly.model, poly.face)
}
