package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"os"

	"github.com/j-law/open-rsc"
)

func main() {
	var (
		sceneFile = flag.String("scene", "scene.toml", "scene fixture to load")
		output    = flag.String("output", "rscdemo.png", "output PNG path")
		pickX     = flag.Int("pick-x", -1, "mouse pick X in pixels, -1 disables picking")
		pickY     = flag.Int("pick-y", -1, "mouse pick Y in pixels, -1 disables picking")
	)
	flag.Parse()

	scene, cfg, err := loadScene(*sceneFile)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}

	surface := render.NewPixelSurface(cfg.Width, cfg.Height)

	viewDistance := cfg.ViewDistance
	if viewDistance == 0 {
		viewDistance = render.ViewDistance
	}
	renderer := render.NewSceneRenderer(scene, cfg.Width, cfg.Height,
		render.WithViewDistance(viewDistance),
		render.WithGradientRand(rand.New(rand.NewSource(1))),
	)
	renderer.GetMousePicker().SetPosition(*pickX, *pickY)

	renderer.Render(surface)

	stats := renderer.Stats()
	log.Printf("rendered %q: %d visible polygons, %d intersection swaps, %d gradient evictions, %d mouse picks",
		*sceneFile, stats.VisiblePolygons, stats.IntersectionSwaps, stats.GradientEvictions, stats.MousePicks)

	if pick, ok := renderer.GetMousePicker().Topmost(); ok {
		log.Printf("topmost pick: face %d", pick.Face)
	}

	if err := writePNG(*output, surface); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
}

// writePNG converts the surface's packed 0xRRGGBB pixel buffer to a PNG,
// the one place this demo reaches outside the render package itself.
func writePNG(path string, surface *render.PixelSurface) error {
	img := image.NewRGBA(image.Rect(0, 0, surface.Width, surface.Height))
	for y := 0; y < surface.Height; y++ {
		for x := 0; x < surface.Width; x++ {
			px := surface.Pixels[y*surface.Width+x]
			img.Set(x, y, color.RGBA{
				R: uint8(px >> 16),
				G: uint8(px >> 8),
				B: uint8(px),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
