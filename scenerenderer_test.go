package render

import "testing"

func quadModel(z int, half int, fill, intensity int) *Model {
	m := NewModel3D()
	v0 := m.AddVertex(-half, -half, z)
	v1 := m.AddVertex(half, -half, z)
	v2 := m.AddVertex(half, half, z)
	v3 := m.AddVertex(-half, half, z)
	m.AddFace([]int{v0, v1, v2, v3}, fill, fill, intensity)
	return m
}

// TestSceneRendererScenarioABlank covers spec Scenario A: a scene with
// zero models must not write any pixel and must report zero visible
// polygons.
func TestSceneRendererScenarioABlank(t *testing.T) {
	scene := &Scene{Camera: NewCamera()}
	surface := NewPixelSurface(64, 48)
	renderer := NewSceneRenderer(scene, 64, 48)

	renderer.Render(surface)

	if got := renderer.Stats().VisiblePolygons; got != 0 {
		t.Fatalf("VisiblePolygons = %d, want 0", got)
	}
	for i, px := range surface.Pixels {
		if px != 0 {
			t.Fatalf("pixel %d = %#x, want untouched 0 on a blank scene", i, px)
		}
	}
}

// TestSceneRendererScenarioBGradientQuad covers spec Scenario B adapted
// to a gradient-filled face (an opaque quad centered on the optical
// axis): the center pixel must equal the exact ramp entry GradientCache
// would build for this fill id and shade.
func TestSceneRendererScenarioBGradientQuad(t *testing.T) {
	const fillID = -993 // EncodeGradientFill(0, 255, 0)
	const intensity = 180

	scene := &Scene{
		Camera: NewCamera(),
		Models: []*Model{quadModel(1000, 500, fillID, intensity)},
	}
	surface := NewPixelSurface(320, 240)
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	if got := renderer.Stats().VisiblePolygons; got != 1 {
		t.Fatalf("VisiblePolygons = %d, want 1", got)
	}

	var wantRamp [256]int
	buildRamp(&wantRamp, fillID)
	want := wantRamp[intensity]

	centerIdx := 120*320 + 160
	if got := surface.Pixels[centerIdx]; got != want {
		t.Errorf("center pixel = %#x, want %#x", got, want)
	}
}

// TestSceneRendererScenarioDOverlapCycle covers spec Scenario D: three
// quads whose AABBs all pairwise overlap and with no pair strictly
// depth-separated must still render without the intersection-resolve
// pass looping unboundedly, and every visible polygon must be drawn.
func TestSceneRendererScenarioDOverlapCycle(t *testing.T) {
	scene := &Scene{
		Camera: NewCamera(),
		Models: []*Model{
			quadModel(1000, 300, -993, 150),
			quadModel(1000, 300, -513, 160),
			quadModel(1000, 300, -273, 170),
		},
	}
	surface := NewPixelSurface(320, 240)
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	stats := renderer.Stats()
	if stats.VisiblePolygons != 3 {
		t.Fatalf("VisiblePolygons = %d, want 3", stats.VisiblePolygons)
	}
	if stats.IntersectionSwaps < 0 {
		t.Errorf("IntersectionSwaps = %d, want >= 0", stats.IntersectionSwaps)
	}

	centerIdx := 120*320 + 160
	if surface.Pixels[centerIdx] == 0 {
		t.Error("center pixel should have been painted by the frontmost of the three coincident quads")
	}
}

// TestSceneRendererScenarioFMousePick covers spec Scenario F: a pointer
// over a pickable face records a hit, and an unpickable face behind it
// does not.
func TestSceneRendererScenarioFMousePick(t *testing.T) {
	front := quadModel(1000, 300, -993, 150)
	back := quadModel(2000, 300, -513, 150)
	back.Unpickable = true

	scene := &Scene{
		Camera: NewCamera(),
		Models: []*Model{front, back},
	}
	surface := NewPixelSurface(320, 240)
	renderer := NewSceneRenderer(scene, 320, 240)
	renderer.GetMousePicker().SetPosition(160, 120)

	renderer.Render(surface)

	entries := renderer.GetMousePicker().Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() = %d, want 1 (only the pickable front face)", len(entries))
	}
	if entries[0].Model != front {
		t.Errorf("picked model = %v, want the pickable front quad", entries[0].Model)
	}
}

// TestSceneRendererOpaqueSmallTexture covers the opaque perspective-correct
// texture path end-to-end (§1 item 3): a fill id >= 0 dispatches through
// PixelSurface.TextureAt/renderScanlineSmallTexture rather than the
// gradient cache. The bound texture is uniform so the exact
// perspective-divided (u,v) the rasterizer derives doesn't need to be
// hand-traced — every texel is the same color regardless of index.
func TestSceneRendererOpaqueSmallTexture(t *testing.T) {
	const texColor = 0x335577
	const intensity = 180

	scene := &Scene{
		Camera: NewCamera(),
		Models: []*Model{quadModel(1000, 500, 0, intensity)},
	}
	surface := NewPixelSurface(320, 240)
	surface.Textures = []*Texture{{
		Width: 64, Height: 64,
		Pixels: func() []int {
			px := make([]int, 64*64)
			for i := range px {
				px[i] = texColor
			}
			return px
		}(),
	}}
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	if got := renderer.Stats().VisiblePolygons; got != 1 {
		t.Fatalf("VisiblePolygons = %d, want 1", got)
	}

	// vertexShade shifts a texture face's flat intensity left by 6 bits
	// (small family) then walkEdge's toFixed shifts it left another 8;
	// shadeColour reads the top (shade>>23) bits of that as its shift.
	want := shadeColour(texColor, intensity<<14)
	centerIdx := 120*320 + 160
	if got := surface.Pixels[centerIdx]; got != want {
		t.Errorf("center pixel = %#x, want %#x", got, want)
	}
}

// TestSceneRendererOpaqueLargeTexture covers the >=128-wide texture kernel
// family, whose shade shift (9 bits instead of 6) actually produces a
// visible brightness step for intensities in range.
func TestSceneRendererOpaqueLargeTexture(t *testing.T) {
	const texColor = 0x224488
	const intensity = 192 // intensity<<17>>23 == intensity>>6 == 3, a non-trivial shift

	scene := &Scene{
		Camera: NewCamera(),
		Models: []*Model{quadModel(1000, 500, 0, intensity)},
	}
	surface := NewPixelSurface(320, 240)
	surface.Textures = []*Texture{{
		Width: 128, Height: 128,
		Pixels: func() []int {
			px := make([]int, 128*128)
			for i := range px {
				px[i] = texColor
			}
			return px
		}(),
	}}
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	want := shadeColour(texColor, intensity<<17)
	centerIdx := 120*320 + 160
	if got := surface.Pixels[centerIdx]; got != want {
		t.Errorf("center pixel = %#x, want %#x", got, want)
	}
}

// TestSceneRendererTranslucentTextureBlendsOverGradientBackground covers
// the translucent texture kernel end-to-end: a translucent textured quad
// painted in front of an opaque gradient-filled quad must blend with
// whatever the background quad already painted, not simply overwrite it.
func TestSceneRendererTranslucentTextureBlendsOverGradientBackground(t *testing.T) {
	const backFillID = -993
	const backIntensity = 180
	const texColor = 0x00FF00
	const frontIntensity = 150

	back := quadModel(2000, 500, backFillID, backIntensity)
	front := quadModel(500, 500, 0, frontIntensity)
	front.TextureTranslucent = true

	scene := &Scene{Camera: NewCamera(), Models: []*Model{back, front}}
	surface := NewPixelSurface(320, 240)
	surface.Textures = []*Texture{{
		Width: 64, Height: 64,
		Pixels: func() []int {
			px := make([]int, 64*64)
			for i := range px {
				px[i] = texColor
			}
			return px
		}(),
	}}
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	if got := renderer.Stats().VisiblePolygons; got != 2 {
		t.Fatalf("VisiblePolygons = %d, want 2", got)
	}

	var backRamp [256]int
	buildRamp(&backRamp, backFillID)
	backWant := backRamp[backIntensity]

	frontTexel := shadeColour(texColor, frontIntensity<<14)
	want := frontTexel + (backWant>>1)&0x7F7F7F

	centerIdx := 120*320 + 160
	if got := surface.Pixels[centerIdx]; got != want {
		t.Errorf("center pixel = %#x, want %#x (translucent texel blended over gradient background %#x)", got, want, backWant)
	}
}

// TestSceneRendererScenarioEGradientEviction covers spec Scenario E at
// the SceneRenderer level: 60 faces each referencing a distinct
// negative fill id must still render, and the renderer's gradient
// cache must report at least one eviction.
func TestSceneRendererScenarioEGradientEviction(t *testing.T) {
	m := NewModel3D()
	const n = 60
	for i := 0; i < n; i++ {
		z := 1000 + i // stagger depth so faces don't all coincide exactly
		half := 20
		cx := (i%10)*40 - 180
		cy := (i/10)*40 - 100
		v0 := m.AddVertex(cx-half, cy-half, z)
		v1 := m.AddVertex(cx+half, cy-half, z)
		v2 := m.AddVertex(cx+half, cy+half, z)
		v3 := m.AddVertex(cx-half, cy+half, z)
		fill := EncodeGradientFill((i*7)%256, (i*13)%256, (i*29)%256)
		m.AddFace([]int{v0, v1, v2, v3}, fill, fill, 150)
	}

	scene := &Scene{Camera: NewCamera(), Models: []*Model{m}}
	surface := NewPixelSurface(320, 240)
	renderer := NewSceneRenderer(scene, 320, 240)

	renderer.Render(surface)

	if got := renderer.Stats().GradientEvictions; got == 0 {
		t.Error("expected at least one gradient cache eviction across 60 distinct fill ids")
	}
}
