package render

import "math"

// Camera is the external collaborator that owns the viewer's pose. Pose
// update (translation/rotation) is entirely out of this package's scope
// (§1); the renderer only calls PrepareForRendering and reads the fields
// Model.Project needs. The concrete projection math below is a minimal
// reference implementation good enough to drive this package's own tests
// and the demo binary — a production client supplies its own Camera and
// Model.Project pair built around its animation/physics subsystem.
type Camera struct {
	X, Y, Z          int
	PitchSin, PitchCos int // fixed-point 16.16, 0/65536 if unused
	YawSin, YawCos     int

	clipX, clipY                   int
	clipFar3d                      int
	clipXModified, clipYModified   int
}

// NewCamera creates a camera positioned at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{YawCos: 65536, PitchCos: 65536}
}

// SinCos16 converts an angle in degrees to the 16.16 fixed-point
// (sin, cos) pair Camera.YawSin/YawCos and PitchSin/PitchCos expect.
func SinCos16(degrees float64) (sin, cos int) {
	rad := degrees * math.Pi / 180
	return int(math.Round(math.Sin(rad) * 65536)), int(math.Round(math.Cos(rad) * 65536))
}

// PrepareForRendering stores the clipped frustum edges computed by the
// conductor (§4.1 step 1). A full client additionally refreshes its view
// matrix here; that part is out of scope.
func (c *Camera) PrepareForRendering(clipX, clipY, clipFar3d, clipXModified, clipYModified int) {
	c.clipX, c.clipY = clipX, clipY
	c.clipFar3d = clipFar3d
	c.clipXModified, c.clipYModified = clipXModified, clipYModified
}

// Model is the per-object data the renderer consumes and writes projected
// coordinates back into, per §3.
type Model struct {
	// Object-space vertex positions.
	VertexX, VertexY, VertexZ []int

	// Camera-space projected coordinates, populated by Project.
	ProjectVertexX, ProjectVertexY, ProjectVertexZ []int
	// Screen-space view coordinates, populated by Project.
	VertexViewX, VertexViewY []int

	// Per-face vertex index lists.
	FaceVertices [][]int

	// Per-face fill identifiers for front/back orientation (§3, Glossary).
	FaceFillFront []int
	FaceFillBack  []int

	// Per-face intensity; ColourTransparent means "use per-vertex
	// lighting instead" (§4.4 step 2).
	FaceIntensity []int

	// Per-face cached normal scale/magnitude, memoized on first sight by
	// PolygonProjector (§4.2, §9 "per-model mutation").
	FaceNormalScale     []int
	FaceNormalMagnitude []int

	// Per-vertex lighting contributions, used when a face's intensity is
	// ColourTransparent.
	VertexIntensity []int
	VertexAmbience  []int

	LightAmbience int

	Visible            bool
	Unpickable         bool
	TextureTranslucent bool
	Transparent        bool

	// DepthBias is added to a face's average projected Z to produce its
	// sort depth (model.anInt245 in the Java source).
	DepthBias int

	// IsSpriteSet marks the sprite-faces pseudo-model (Scene.SpriteFaces);
	// the conductor sets it before projecting that model alongside
	// Scene.Models (§4.1 step 2, §9). Per-face sprite
	// id/width/height live on the parallel Scene.SpriteEntities slice,
	// not on Model, since each sprite face's draw data is entity-owned.
	IsSpriteSet bool
}

// NewModel3D creates an empty model ready to have vertices/faces appended.
func NewModel3D() *Model {
	return &Model{Visible: true, LightAmbience: 0}
}

// AddVertex appends an object-space vertex and returns its index.
func (m *Model) AddVertex(x, y, z int) int {
	m.VertexX = append(m.VertexX, x)
	m.VertexY = append(m.VertexY, y)
	m.VertexZ = append(m.VertexZ, z)
	return len(m.VertexX) - 1
}

// AddFace appends a face given its vertex indices and fill/intensity data.
func (m *Model) AddFace(vertices []int, fillFront, fillBack, intensity int) int {
	m.FaceVertices = append(m.FaceVertices, vertices)
	m.FaceFillFront = append(m.FaceFillFront, fillFront)
	m.FaceFillBack = append(m.FaceFillBack, fillBack)
	m.FaceIntensity = append(m.FaceIntensity, intensity)
	m.FaceNormalScale = append(m.FaceNormalScale, -1)
	m.FaceNormalMagnitude = append(m.FaceNormalMagnitude, 0)
	return len(m.FaceVertices) - 1
}

// NumVertices returns the vertex count.
func (m *Model) NumVertices() int { return len(m.VertexX) }

// NumFaces returns the face count.
func (m *Model) NumFaces() int { return len(m.FaceVertices) }

// Project populates ProjectVertex*/VertexView* from object-space
// coordinates using a simple pinhole camera. See the Camera doc comment:
// this is a minimal stand-in for an out-of-scope subsystem.
func (m *Model) Project(camera *Camera, viewDistance, clipNear int) {
	n := m.NumVertices()
	if cap(m.ProjectVertexX) < n {
		m.ProjectVertexX = make([]int, n)
		m.ProjectVertexY = make([]int, n)
		m.ProjectVertexZ = make([]int, n)
		m.VertexViewX = make([]int, n)
		m.VertexViewY = make([]int, n)
	} else {
		m.ProjectVertexX = m.ProjectVertexX[:n]
		m.ProjectVertexY = m.ProjectVertexY[:n]
		m.ProjectVertexZ = m.ProjectVertexZ[:n]
		m.VertexViewX = m.VertexViewX[:n]
		m.VertexViewY = m.VertexViewY[:n]
	}

	yawSin, yawCos := float64(camera.YawSin)/65536, float64(camera.YawCos)/65536
	pitchSin, pitchCos := float64(camera.PitchSin)/65536, float64(camera.PitchCos)/65536

	for i := 0; i < n; i++ {
		dx := float64(m.VertexX[i] - camera.X)
		dy := float64(m.VertexY[i] - camera.Y)
		dz := float64(m.VertexZ[i] - camera.Z)

		// Yaw (around Y) then pitch (around X).
		rx := dx*yawCos + dz*yawSin
		rz := dz*yawCos - dx*yawSin
		ry := dy*pitchCos - rz*pitchSin
		rzPitched := rz*pitchCos + dy*pitchSin

		px := int(math.Round(rx))
		py := int(math.Round(ry))
		pz := int(math.Round(rzPitched))

		m.ProjectVertexX[i] = px
		m.ProjectVertexY[i] = py
		m.ProjectVertexZ[i] = pz

		if pz >= clipNear {
			m.VertexViewX[i] = (px << viewDistance) / pz
			m.VertexViewY[i] = (py << viewDistance) / pz
		} else {
			m.VertexViewX[i] = 0
			m.VertexViewY[i] = 0
		}
	}
}

// SpriteEntity describes one 2D billboard instance referenced by a sprite
// face of the sprite-faces pseudo-model (§4.1 step 4).
type SpriteEntity struct {
	Width, Height int
	SpriteID      int
	Pickable      bool
}

// Scene is the external collaborator the conductor reads once per frame
// (§6 "Model/Scene (consumed)").
type Scene struct {
	Camera         *Camera
	Models         []*Model
	SpriteFaces    *Model
	SpriteEntities []*SpriteEntity

	FogZDistance int
	FogZFalloff  int
}

// NumModels returns the count of 3D models, excluding the sprite-faces
// pseudo-model.
func (s *Scene) NumModels() int { return len(s.Models) }
