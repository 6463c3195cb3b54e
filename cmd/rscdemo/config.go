// Command rscdemo loads a scene fixture and renders one frame with the
// render package, giving the renderer's tunable constants a real
// configuration surface to be loaded from.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/j-law/open-rsc"
)

// sceneConfig is the top-level scene.toml fixture: camera start pose,
// fog parameters, and the list of model files to load.
type sceneConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	ViewDistance int `toml:"view_distance"`

	Camera struct {
		X, Y, Z    int
		YawDegrees float64 `toml:"yaw_degrees"`
	} `toml:"camera"`

	Fog struct {
		Distance int `toml:"distance"`
		Falloff  int `toml:"falloff"`
	} `toml:"fog"`

	ModelFiles []string `toml:"models"`

	Sprites []spriteConfig `toml:"sprites"`
}

type spriteConfig struct {
	X, Y, Z       int
	Width, Height int
	SpriteID      int  `toml:"sprite_id"`
	Pickable      bool `toml:"pickable"`
}

// modelConfig is one model file's fixture format: a flat vertex list and
// a face list referencing vertices by index.
type modelConfig struct {
	Unpickable bool `toml:"unpickable"`
	DepthBias  int  `toml:"depth_bias"`

	Vertices [][3]int `toml:"vertices"`
	Faces    []struct {
		Vertices  []int `toml:"vertices"`
		FillFront int   `toml:"fill_front"`
		FillBack  int   `toml:"fill_back"`
		Intensity int   `toml:"intensity"`
	} `toml:"faces"`
}

func loadScene(sceneFile string) (*render.Scene, *sceneConfig, error) {
	var cfg sceneConfig
	if _, err := toml.DecodeFile(sceneFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", sceneFile, err)
	}

	dir := filepath.Dir(sceneFile)

	camera := render.NewCamera()
	camera.X, camera.Y, camera.Z = cfg.Camera.X, cfg.Camera.Y, cfg.Camera.Z
	sin, cos := render.SinCos16(cfg.Camera.YawDegrees)
	camera.YawSin, camera.YawCos = sin, cos

	scene := &render.Scene{
		Camera:       camera,
		FogZDistance: cfg.Fog.Distance,
		FogZFalloff:  cfg.Fog.Falloff,
	}

	for _, mf := range cfg.ModelFiles {
		m, err := loadModel(filepath.Join(dir, mf))
		if err != nil {
			return nil, nil, err
		}
		scene.Models = append(scene.Models, m)
	}

	if len(cfg.Sprites) > 0 {
		spriteFaces := render.NewModel3D()
		for _, sp := range cfg.Sprites {
			v0 := spriteFaces.AddVertex(sp.X, sp.Y, sp.Z)
			v1 := spriteFaces.AddVertex(sp.X, sp.Y, sp.Z+1)
			spriteFaces.AddFace([]int{v0, v1}, 0, 0, 0)
			scene.SpriteEntities = append(scene.SpriteEntities, &render.SpriteEntity{
				Width:    sp.Width,
				Height:   sp.Height,
				SpriteID: sp.SpriteID,
				Pickable: sp.Pickable,
			})
		}
		scene.SpriteFaces = spriteFaces
	}

	return scene, &cfg, nil
}

func loadModel(modelFile string) (*render.Model, error) {
	var cfg modelConfig
	if _, err := toml.DecodeFile(modelFile, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", modelFile, err)
	}

	m := render.NewModel3D()
	m.Unpickable = cfg.Unpickable
	m.DepthBias = cfg.DepthBias

	for _, v := range cfg.Vertices {
		m.AddVertex(v[0], v[1], v[2])
	}
	for _, f := range cfg.Faces {
		m.AddFace(f.Vertices, f.FillFront, f.FillBack, f.Intensity)
	}
	return m, nil
}
