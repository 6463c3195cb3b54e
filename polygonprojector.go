package render

import "math"

// PolygonProjector builds per-face Polygon records from projected Model
// data (§4.2).
type PolygonProjector struct{}

// initialisePolygon3d fills poly from a 3D model face. It computes the
// un-normalized face normal in camera-projected space, memoizes a
// per-face normal scale/magnitude on first sight, and derives the
// visibility scalar and screen-space AABB.
func (PolygonProjector) initialisePolygon3d(poly *Polygon, m *Model, face int, fill int, depth int) {
	verts := m.FaceVertices[face]
	v0, v1, v2 := verts[0], verts[1], verts[2]

	ax := m.ProjectVertexX[v1] - m.ProjectVertexX[v0]
	ay := m.ProjectVertexY[v1] - m.ProjectVertexY[v0]
	az := m.ProjectVertexZ[v1] - m.ProjectVertexZ[v0]
	bx := m.ProjectVertexX[v2] - m.ProjectVertexX[v0]
	by := m.ProjectVertexY[v2] - m.ProjectVertexY[v0]
	bz := m.ProjectVertexZ[v2] - m.ProjectVertexZ[v0]

	// N = (v1-v0) x (v2-v0). Products legitimately overflow a signed
	// 32-bit int on pathological input; that's fine, only the magnitude
	// comparisons below care about the wrapped value (§9).
	nx := ay*bz - az*by
	ny := az*bx - ax*bz
	nz := ax*by - ay*bx

	scale := m.FaceNormalScale[face]
	if scale == -1 {
		scale = 0
		for abs(nx>>uint(scale)) > normalClampBound ||
			abs(ny>>uint(scale)) > normalClampBound ||
			abs(nz>>uint(scale)) > normalClampBound {
			scale++
		}
		nx >>= uint(scale)
		ny >>= uint(scale)
		nz >>= uint(scale)

		mag := math.Sqrt(float64(nx)*float64(nx) + float64(ny)*float64(ny) + float64(nz)*float64(nz))
		m.FaceNormalMagnitude[face] = int(math.Round(NormalMagnitudeBase * mag))
		m.FaceNormalScale[face] = scale
	} else {
		nx >>= uint(scale)
		ny >>= uint(scale)
		nz >>= uint(scale)
	}

	poly.model = m
	poly.face = face
	poly.faceFill = fill
	poly.depth = depth
	poly.normalX, poly.normalY, poly.normalZ = nx, ny, nz
	poly.isSprite = false

	poly.visibility = m.ProjectVertexX[v0]*nx + m.ProjectVertexY[v0]*ny + m.ProjectVertexZ[v0]*nz

	minZ, maxZ := m.ProjectVertexZ[v0], m.ProjectVertexZ[v0]
	minX, maxX := m.VertexViewX[v0], m.VertexViewX[v0]
	minY, maxY := m.VertexViewY[v0], m.VertexViewY[v0]
	for _, vi := range verts[1:] {
		if z := m.ProjectVertexZ[vi]; z < minZ {
			minZ = z
		} else if z > maxZ {
			maxZ = z
		}
		if x := m.VertexViewX[vi]; x < minX {
			minX = x
		} else if x > maxX {
			maxX = x
		}
		if y := m.VertexViewY[vi]; y < minY {
			minY = y
		} else if y > maxY {
			maxY = y
		}
	}
	poly.minZ, poly.maxZ = minZ, maxZ
	poly.minPlaneX, poly.maxPlaneX = minX, maxX
	poly.minPlaneY, poly.maxPlaneY = minY, maxY
}

// initialisePolygon2d fills poly from a sprite billboard face: a
// degree-2 "polygon" using vertices 0 and 1 of the face, with a fixed
// normal of (0,0,1) and the sort-bias inflation on its X extent (§4.2).
func (PolygonProjector) initialisePolygon2d(poly *Polygon, m *Model, face int, spriteID int, depth int) {
	verts := m.FaceVertices[face]
	v0, v1 := verts[0], verts[1]

	poly.model = m
	poly.face = face
	poly.faceFill = spriteID
	poly.depth = depth
	poly.normalX, poly.normalY, poly.normalZ = 0, 0, 1
	poly.isSprite = true
	poly.spriteID = spriteID

	minZ, maxZ := m.ProjectVertexZ[v0], m.ProjectVertexZ[v0]
	if z := m.ProjectVertexZ[v1]; z < minZ {
		minZ = z
	} else if z > maxZ {
		maxZ = z
	}
	poly.minZ, poly.maxZ = minZ, maxZ

	minX, maxX := m.VertexViewX[v0], m.VertexViewX[v0]
	if x := m.VertexViewX[v1]; x < minX {
		minX = x
	} else if x > maxX {
		maxX = x
	}
	minY, maxY := m.VertexViewY[v0], m.VertexViewY[v0]
	if y := m.VertexViewY[v1]; y < minY {
		minY = y
	} else if y > maxY {
		maxY = y
	}

	poly.minPlaneX = minX - spriteAABBInflate
	poly.maxPlaneX = maxX + spriteAABBInflate
	poly.minPlaneY = minY
	poly.maxPlaneY = maxY

	m.FaceNormalMagnitude[face] = 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
