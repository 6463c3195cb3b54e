package render

// uvScale sets the precision of the reciprocal-depth values the plane
// equations below are built from; it cancels out of the final U/Z and
// V/Z ratio and only affects rounding (§4.5).
const uvScale = 1 << 16

// Rasterizer dispatches each sorted polygon's scanline spans to a
// PixelSurface kernel, deriving the three perspective plane equations
// from the face's first, second, and last vertex (§4.5).
type Rasterizer struct {
	Gradients *GradientCache
}

// NewRasterizer builds a rasterizer bound to a gradient cache.
func NewRasterizer(gradients *GradientCache) *Rasterizer {
	return &Rasterizer{Gradients: gradients}
}

// Render fills poly's already-generated scanline rows [minY, maxY) into
// surface. Sprite-face polygons are not handled here: the conductor
// dispatches those straight to PixelSurface.spriteClip (§4.5).
func (r *Rasterizer) Render(poly *Polygon, surface *PixelSurface, buf *ScanlineBuffer, minY, maxY, baseX, baseY, clipX int) {
	if poly.isSprite {
		return
	}
	fill := poly.faceFill
	if fill == ColourTransparent || fill == -2 {
		return
	}
	if fill < 0 {
		r.renderGradient(poly, surface, buf, minY, maxY, baseX, clipX, fill)
		return
	}
	r.renderTexture(poly, surface, buf, minY, maxY, baseX, baseY, clipX, fill)
}

// span is one row's clipped, destination-relative scanline.
type span struct {
	viewX, length, dstOffset, shade, dShade int
}

// clipSpan derives a row's horizontal extent in integer screen columns,
// its shade ramp, and clips it to [-clipX, clipX-1] so that baseX+right
// never reaches the next row's first column (§4.5, §7 "no panics on
// valid input").
func clipSpan(row *Scanline, y, baseX, clipX, width int) (span, bool) {
	startX, endX := row.StartX>>8, row.EndX>>8
	if startX > endX {
		return span{}, false
	}
	spanLen := endX - startX + 1
	dShade := divRound(row.EndShade-row.StartShade, spanLen)
	shade := row.StartShade

	left, right := startX, endX
	if left < -clipX {
		shade += dShade * (-clipX - left)
		left = -clipX
	}
	if right > clipX-1 {
		right = clipX - 1
	}
	if left > right {
		return span{}, false
	}
	return span{
		viewX:     left,
		length:    right - left + 1,
		dstOffset: y*width + baseX + left,
		shade:     shade,
		dShade:    dShade,
	}, true
}

func (r *Rasterizer) renderGradient(poly *Polygon, surface *PixelSurface, buf *ScanlineBuffer, minY, maxY, baseX, clipX, fill int) {
	ramp := r.Gradients.Resolve(fill)
	translucent := poly.model.Transparent
	for y := minY; y < maxY; y++ {
		sp, ok := clipSpan(buf.Row(y), y, baseX, clipX, surface.Width)
		if !ok {
			continue
		}
		if translucent {
			surface.renderScanlineTranslucentGradient(ramp, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
		} else {
			surface.renderScanlineGradient(ramp, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
		}
	}
}

// reciprocalScaled returns a fixed-precision 1/z used as the common
// scale factor for all three plane equations; it cancels in the final
// A/C, B/C ratio.
func reciprocalScaled(z int) int {
	if z < 1 {
		z = 1
	}
	return uvScale / z
}

// planeGradient returns the screen-space gradient (dz/dx, dz/dy) of a
// value known at three reference screen points, via the cross product
// of the two edge vectors from point0 (§4.5 "cross-product pair
// (d1,d2)").
func planeGradient(x0, y0, v0, x1, y1, v1, x2, y2, v2 int) (dzdx, dzdy int, ok bool) {
	d1x, d1y, d1z := x1-x0, y1-y0, v1-v0
	d2x, d2y, d2z := x2-x0, y2-y0, v2-v0

	nx := d1y*d2z - d1z*d2y
	ny := d1z*d2x - d1x*d2z
	nz := d1x*d2y - d1y*d2x
	if nz == 0 {
		return 0, 0, false
	}
	return -nx / nz, -ny / nz, true
}

func (r *Rasterizer) renderTexture(poly *Polygon, surface *PixelSurface, buf *ScanlineBuffer, minY, maxY, baseX, baseY, clipX, fill int) {
	tex := surface.TextureAt(fill)
	if tex == nil {
		return
	}
	m := poly.model
	verts := m.FaceVertices[poly.face]
	n := len(verts)
	v0, v1, v2 := verts[0], verts[1], verts[n-1]

	x0, y0 := m.VertexViewX[v0], m.VertexViewY[v0]
	x1, y1 := m.VertexViewX[v1], m.VertexViewY[v1]
	x2, y2 := m.VertexViewX[v2], m.VertexViewY[v2]

	invZ0 := reciprocalScaled(m.ProjectVertexZ[v0])
	invZ1 := reciprocalScaled(m.ProjectVertexZ[v1])
	invZ2 := reciprocalScaled(m.ProjectVertexZ[v2])

	// Texture-space basis: vertex0 -> (0,0), vertex1 -> (size,0),
	// vertex[last] -> (0,size), affine across the whole face (§4.2,
	// §4.5 "vertexX/Y/Z[0],[1],[n-1]").
	uMax := tex.Width << texUVFixedBits
	vMax := tex.Width << texUVFixedBits

	a1, a2 := uMax*invZ1, 0
	b1, b2 := 0, vMax*invZ2
	c0, c1, c2 := invZ0, invZ1, invZ2

	dAdx, dAdy, okA := planeGradient(x0, y0, 0, x1, y1, a1, x2, y2, a2)
	dBdx, dBdy, okB := planeGradient(x0, y0, 0, x1, y1, b1, x2, y2, b2)
	dCdx, dCdy, okC := planeGradient(x0, y0, c0, x1, y1, c1, x2, y2, c2)
	if !okA || !okB || !okC {
		return
	}

	large := tex.large()
	for y := minY; y < maxY; y++ {
		sp, ok := clipSpan(buf.Row(y), y, baseX, clipX, surface.Width)
		if !ok {
			continue
		}
		dx := sp.viewX - x0
		dy := y - baseY - y0
		A := dAdx*dx + dAdy*dy
		B := dBdx*dx + dBdy*dy
		C := c0 + dCdx*dx + dCdy*dy

		// Every opaque/translucent kernel, large or small, advances shade
		// once per 4-pixel texSpan group rather than every pixel, so all
		// four get the same dShade<<2 scaling here; only the *WithTransparency
		// kernels advance every pixel and take dShade unscaled (Glossary
		// "24.8 shade step scaling x4", DESIGN.md).
		switch {
		case poly.model.Transparent:
			if large {
				surface.renderScanlineLargeTextureWithTransparency(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade)
			} else {
				surface.renderScanlineSmallTextureWithTransparency(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade)
			}
		case poly.model.TextureTranslucent:
			if large {
				surface.renderScanlineLargeTranslucentTexture(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
			} else {
				surface.renderScanlineSmallTranslucentTexture(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
			}
		default:
			if large {
				surface.renderScanlineLargeTexture(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
			} else {
				surface.renderScanlineSmallTexture(tex.Pixels, A, B, C, dAdx, dBdx, dCdx, sp.length, sp.dstOffset, sp.shade, sp.dShade<<2)
			}
		}
	}
}

// texUVFixedBits is the fractional-bit width largeTexIndex/smallTexIndex
// expect from the perspective-divided U/V (§6).
const texUVFixedBits = 14
