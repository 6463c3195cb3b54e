// Package render is a CPU-only software rasterizer for 3D scenes and 2D
// billboard sprites, in the style of a mid-90s isometric/3D game client.
//
// # Overview
//
// The package takes a Scene whose camera pose has already been updated by
// the caller, projects every visible Model face and sprite billboard into
// screen space, resolves front-to-back draw order with a bounded
// intersection-resolve pass, and rasterizes each polygon into a
// PixelSurface using fixed-point scanline math. There is no GPU path, no
// Z-buffer, and no floating-point color pipeline: depth is resolved purely
// by polygon ordering before a single pixel is written.
//
// # Quick Start
//
//	surface := render.NewPixelSurface(800, 600)
//	renderer := render.NewSceneRenderer(scene, 800, 600)
//	renderer.SetBounds(400, 300, 400, 300, 800, render.ViewDistance)
//	renderer.Render(surface)
//
// # Architecture
//
//   - PixelSurface: destination pixel buffer and scanline fill primitives.
//   - Polygon / PolygonProjector: per-face screen-space records, pooled.
//   - DepthSorter: painter's-algorithm ordering with cycle-safe intersection
//     resolve.
//   - ScanlineGenerator: per-polygon span generation, near-plane clipping,
//     and mouse-pick collection.
//   - Rasterizer: perspective-correct texture/gradient scanline dispatch.
//   - GradientCache: small ring of flat-color shade ramps.
//   - SceneRenderer: orchestrates one frame end to end.
//
// # Coordinate System
//
// Screen space has its origin at the projection center (baseX, baseY)
// configured via SetBounds; camera space is right-handed with Z increasing
// into the screen. Scanline math is carried in 24.8 fixed point unless
// otherwise noted.
package render
