package render

// point3 is a minimal projected-space point used only by the separation
// tests below.
type point3 struct{ X, Y, Z int }

type point2 struct{ X, Y int }

// DepthSorter orders a frame's visible polygons back-to-front: a
// descending quicksort by average depth, followed by a bounded-window
// intersection resolve that swaps provably-misordered pairs into a
// consistent draw order (§4.3).
type DepthSorter struct{}

// Sort runs both phases over polys in place, returning the number of
// reorderings the intersection-resolve phase performed (§6 SUPPLEMENTED
// FEATURES "IntersectionSwaps").
func (DepthSorter) Sort(polys []*Polygon) int {
	quicksortDepthDesc(polys, 0, len(polys)-1)
	return intersectionResolve(polys, intersectionStep)
}

// quicksortDepthDesc sorts [lo,hi] by depth descending (farther first),
// using a middle-element pivot and a Hoare partition (§4.3 Phase A).
func quicksortDepthDesc(polys []*Polygon, lo, hi int) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	polys[mid], polys[lo] = polys[lo], polys[mid]
	pivot := polys[lo].depth

	i, j := lo, hi+1
	for {
		for {
			i++
			if i > hi || polys[i].depth <= pivot {
				break
			}
		}
		for {
			j--
			if j < lo || polys[j].depth >= pivot {
				break
			}
		}
		if i >= j {
			break
		}
		polys[i], polys[j] = polys[j], polys[i]
	}
	polys[lo], polys[j] = polys[j], polys[lo]

	quicksortDepthDesc(polys, lo, j-1)
	quicksortDepthDesc(polys, j+1, hi)
}

// intersectionResolve is the sliding-window pass described in §4.3 Phase
// B. Recursion in the original algorithm is replaced by an explicit
// in-place shift (see polygonsOrder below and DESIGN.md for the exact
// open-question resolution); the bound on work done is still O(n*step).
func intersectionResolve(polys []*Polygon, step int) int {
	swaps := 0
	n := len(polys)
	for l := 0; l < n; l++ {
		pl := polys[l]
		pl.skipSomething = true

		limit := l + step
		if limit > n-1 {
			limit = n - 1
		}

		for k := limit; k > l; k-- {
			other := polys[k]

			if !aabbOverlap2D(pl, other) {
				continue
			}
			if other.index2 == pl.index {
				continue
			}

			if !arePolygonsSeparate(pl, other) && heuristicPolygon(other, pl) {
				polygonsOrder(polys, l, k)
				other.index2 = pl.index
				swaps++
				Logger().Debug("intersection resolve reordered polygon", "l", l, "k", k)
				// The polygon now at k is not `other` (it moved to l);
				// re-examine the same slot next iteration (§4.3 "if
				// polygon[k] != other, increment k to compensate").
				k++
			}
		}
	}
	return swaps
}

// polygonsOrder moves polys[k] to position l, shifting the intervening
// elements down by one. This is the bounded tail of the
// topological-sort-by-adjacent-swap described in §4.3: each call
// operates on a strictly smaller remaining window than the frame size,
// so it always terminates.
func polygonsOrder(polys []*Polygon, l, k int) {
	if k <= l {
		return
	}
	moved := polys[k]
	copy(polys[l+1:k+1], polys[l:k])
	polys[l] = moved
}

// aabbOverlap2D is the quick-reject test guarding the expensive
// separation tests (§4.3 Phase B).
func aabbOverlap2D(a, b *Polygon) bool {
	return a.minPlaneX < b.maxPlaneX && b.minPlaneX < a.maxPlaneX &&
		a.minPlaneY < b.maxPlaneY && b.minPlaneY < a.maxPlaneY
}

// arePolygonsSeparate returns true if a and b provably do not overlap in
// the draw order (§4.3.1).
func arePolygonsSeparate(a, b *Polygon) bool {
	// 1. 3D AABB non-overlap, preserving the asymmetric Z operators.
	if a.minZ >= b.maxZ || b.minZ > a.maxZ {
		return true
	}
	if a.maxPlaneX <= b.minPlaneX || b.maxPlaneX <= a.minPlaneX {
		return true
	}
	if a.maxPlaneY <= b.minPlaneY || b.maxPlaneY <= a.minPlaneY {
		return true
	}

	// 2. Separating-plane test using b's plane on a's vertices.
	if separatingPlaneWitness(a, b) {
		return true
	}
	// 3. Symmetric test with a's plane on b's vertices.
	if separatingPlaneWitness(b, a) {
		return true
	}

	// 4. 2D screen-space overlap test (rectangle for sprite "polygons").
	return !intersect2D(facePoints2D(a), facePoints2D(b))
}

// separatingPlaneWitness tests plane's vertices... no: it tests every
// vertex of subject against owner's plane (owner's normal, owner's
// vertex0), per the Glossary's plane-test tolerance definition. It
// returns true iff every subject vertex lies strictly on owner's back
// side beyond the normal-magnitude tolerance band, i.e. owner's plane
// provably separates subject from the camera side of owner.
func separatingPlaneWitness(subject, owner *Polygon) bool {
	verts := faceVertexPositions(owner)
	if len(verts) == 0 {
		return false
	}
	p0 := verts[0]
	mag := normalMagnitudeOf(owner)
	subjectVerts := faceVertexPositions(subject)
	if len(subjectVerts) == 0 {
		return false
	}
	for _, pv := range subjectVerts {
		d := (p0.X-pv.X)*owner.normalX + (p0.Y-pv.Y)*owner.normalY + (p0.Z-pv.Z)*owner.normalZ
		if owner.visibility > 0 {
			if d <= mag {
				return false
			}
		} else {
			if d >= -mag {
				return false
			}
		}
	}
	return true
}

// heuristicPolygon is a one-sided separating-plane test: it returns true
// iff a can plausibly lie in front of b, checked only via a's plane
// against b's vertices (§4.3.1).
func heuristicPolygon(a, b *Polygon) bool {
	verts := faceVertexPositions(a)
	if len(verts) == 0 {
		return false
	}
	p0 := verts[0]
	mag := normalMagnitudeOf(a)
	for _, pv := range faceVertexPositions(b) {
		d := (p0.X-pv.X)*a.normalX + (p0.Y-pv.Y)*a.normalY + (p0.Z-pv.Z)*a.normalZ
		if a.visibility > 0 {
			if d < -mag {
				return true
			}
		} else {
			if d > mag {
				return true
			}
		}
	}
	return false
}

// faceVertexPositions returns the camera-projected positions of a
// polygon's face vertices (all of them for a 3D face, the two billboard
// anchors for a sprite).
func faceVertexPositions(p *Polygon) []point3 {
	if p.model == nil {
		return nil
	}
	verts := p.model.FaceVertices[p.face]
	out := make([]point3, len(verts))
	for i, vi := range verts {
		out[i] = point3{
			X: p.model.ProjectVertexX[vi],
			Y: p.model.ProjectVertexY[vi],
			Z: p.model.ProjectVertexZ[vi],
		}
	}
	return out
}

// normalMagnitudeOf returns the memoized plane-test tolerance for p's
// face (§4.2, Glossary "Plane-test tolerance").
func normalMagnitudeOf(p *Polygon) int {
	if p.model == nil || p.face >= len(p.model.FaceNormalMagnitude) {
		return 0
	}
	return p.model.FaceNormalMagnitude[p.face]
}

// facePoints2D returns the screen-space hull used by the 2D overlap
// test: the face's projected vertices for a 3D polygon, or a ±20
// inflated rectangle for a degree-2 sprite polygon (§4.3.1).
func facePoints2D(p *Polygon) []point2 {
	if p.isSprite {
		return []point2{
			{p.minPlaneX, p.minPlaneY},
			{p.maxPlaneX, p.minPlaneY},
			{p.maxPlaneX, p.maxPlaneY},
			{p.minPlaneX, p.maxPlaneY},
		}
	}
	if p.model == nil {
		return nil
	}
	verts := p.model.FaceVertices[p.face]
	out := make([]point2, len(verts))
	for i, vi := range verts {
		out[i] = point2{X: p.model.VertexViewX[vi], Y: p.model.VertexViewY[vi]}
	}
	return out
}

// intersect2D reports whether two convex 2D polygons overlap, using the
// separating axis theorem. This replaces the original decompiled
// rotating-calipers chord walk (method307/method308, byte0 states)
// described in §4.3.1: without the original source text (filtered out
// of original_source/, see DESIGN.md) the exact state machine can't be
// recovered bit-for-bit, but SAT decides the same predicate — do these
// convex hulls overlap — for the same convex inputs.
func intersect2D(a, b []point2) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return !separatingAxisExists(a, b) && !separatingAxisExists(b, a)
}

func separatingAxisExists(a, b []point2) bool {
	n := len(a)
	for i := 0; i < n; i++ {
		p1 := a[i]
		p2 := a[(i+1)%n]
		// Edge normal (axis to test).
		ax := -(p2.Y - p1.Y)
		ay := p2.X - p1.X
		if ax == 0 && ay == 0 {
			continue
		}

		aMin, aMax := projectOntoAxis(a, ax, ay)
		bMin, bMax := projectOntoAxis(b, ax, ay)
		if aMax < bMin || bMax < aMin {
			return true
		}
	}
	return false
}

func projectOntoAxis(pts []point2, ax, ay int) (min, max int) {
	min = pts[0].X*ax + pts[0].Y*ay
	max = min
	for _, p := range pts[1:] {
		v := p.X*ax + p.Y*ay
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}
