// Package config loads the window, asset and scene settings of the demo.
// Every field has a default, so the YAML file only needs the overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"GLScene/internal/input"
	"GLScene/internal/logger"
	"GLScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read from the working directory when present.
const DefaultPath = "glscene.yaml"

type Config struct {
	Window WindowConfig `yaml:"window"`
	Assets AssetsConfig `yaml:"assets"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	Samples int    `yaml:"samples"`
	VSync   bool   `yaml:"vsync"`
}

type AssetsConfig struct {
	ShaderDir      string   `yaml:"shader_dir"`
	GeometryShader string   `yaml:"geometry_shader"`
	Model          string   `yaml:"model"`
	PlaneTexture   string   `yaml:"plane_texture"`
	GrassTexture   string   `yaml:"grass_texture"`
	Skybox         []string `yaml:"skybox"` // +X, -X, +Y, -Y, +Z, -Z; empty for a solid sky
}

type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	BoostFactor float32    `yaml:"boost_factor"`
	Sensitivity float32    `yaml:"sensitivity"`
	Fov         float32    `yaml:"fov"`
	MinFov      float32    `yaml:"min_fov"`
	MaxFov      float32    `yaml:"max_fov"`
	InvertMouse bool       `yaml:"invert_mouse"`
}

type SceneConfig struct {
	ModelPosition  mgl32.Vec3   `yaml:"model_position"`
	ModelScale     float32      `yaml:"model_scale"`
	LightPositions []mgl32.Vec3 `yaml:"light_positions"`
	LightCubeScale float32      `yaml:"light_cube_scale"`
	GrassPositions []mgl32.Vec3 `yaml:"grass_positions"`
	Grass          GrassConfig  `yaml:"procedural_grass"`
	ClearColor     mgl32.Vec4   `yaml:"clear_color"`
	Shininess      float32      `yaml:"shininess"`
	Gamma          bool         `yaml:"gamma"`
}

// GrassConfig scatters Count extra billboards over [-Extent, Extent].
type GrassConfig struct {
	Count  int     `yaml:"count"`
	Seed   int64   `yaml:"seed"`
	Extent float32 `yaml:"extent"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default reproduces the stock demo scene.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:   800,
			Height:  600,
			Title:   "GLScene",
			Samples: 4,
			VSync:   true,
		},
		Assets: AssetsConfig{
			ShaderDir:    "assets/shaders",
			Model:        "assets/models/backpack/backpack.obj",
			PlaneTexture: "assets/textures/metal.png",
			GrassTexture: "assets/textures/grass.png",
			Skybox: []string{
				"assets/textures/skybox/right.jpg",
				"assets/textures/skybox/left.jpg",
				"assets/textures/skybox/top.jpg",
				"assets/textures/skybox/bottom.jpg",
				"assets/textures/skybox/front.jpg",
				"assets/textures/skybox/back.jpg",
			},
		},
		Camera: CameraConfig{
			Position:    mgl32.Vec3{0, 0, 3},
			Speed:       renderer.DefaultSpeed,
			BoostFactor: renderer.DefaultBoostFactor,
			Sensitivity: renderer.DefaultSensitivity,
			Fov:         input.DefaultFov,
			MinFov:      input.MinFov,
			MaxFov:      input.MaxFov,
		},
		Scene: SceneConfig{
			ModelPosition: mgl32.Vec3{0, 0, 0},
			ModelScale:    1,
			LightPositions: []mgl32.Vec3{
				{0.7, 0.2, 2.0},
				{2.3, -3.3, -4.0},
				{-4.0, 2.0, -12.0},
				{0.0, 0.0, -3.0},
			},
			LightCubeScale: 0.2,
			GrassPositions: []mgl32.Vec3{
				{-1.5, 0, -0.48},
				{1.5, 0, 0.51},
				{0.0, 0, 0.7},
				{-0.3, 0, -2.3},
				{0.5, 0, -0.6},
			},
			Grass:      GrassConfig{Count: 0, Seed: 1, Extent: 4},
			ClearColor: mgl32.Vec4{0.1, 0.1, 0.1, 1},
			Shininess:  32,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load overlays the YAML file at path on Default. A missing file is not an
// error. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Log.Debug("No config file, using defaults", zap.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 1 {
		err = multierr.Append(err, fmt.Errorf("samples %d must be at least 1", c.Window.Samples))
	}
	if c.Camera.MinFov <= 0 || c.Camera.MinFov > c.Camera.MaxFov {
		err = multierr.Append(err, fmt.Errorf("fov bounds [%g, %g] are invalid", c.Camera.MinFov, c.Camera.MaxFov))
	}
	if n := len(c.Assets.Skybox); n != 0 && n != len(renderer.CubemapFaces{}) {
		err = multierr.Append(err, fmt.Errorf("skybox needs 6 faces, got %d", n))
	}
	if len(c.Scene.LightPositions) > renderer.MaxPointLights {
		err = multierr.Append(err, fmt.Errorf("at most %d lights, got %d", renderer.MaxPointLights, len(c.Scene.LightPositions)))
	}
	if c.Scene.Grass.Count < 0 {
		err = multierr.Append(err, fmt.Errorf("procedural grass count %d is negative", c.Scene.Grass.Count))
	}
	return err
}

// SceneConfig converts the settings into what the composer acquires. Shader
// and asset paths are used as given.
func (c Config) SceneConfig() renderer.SceneConfig {
	var faces renderer.CubemapFaces
	copy(faces[:], c.Assets.Skybox)

	grass := append([]mgl32.Vec3(nil), c.Scene.GrassPositions...)
	grass = append(grass, renderer.ScatterGrass(c.Scene.Grass.Count, c.Scene.Grass.Seed, c.Scene.Grass.Extent, 0)...)

	return renderer.SceneConfig{
		ShaderDir:      c.Assets.ShaderDir,
		GeometryShader: c.Assets.GeometryShader,
		PlaneTexture:   c.Assets.PlaneTexture,
		GrassTexture:   c.Assets.GrassTexture,
		Skybox:         faces,
		Width:          int32(c.Window.Width),
		Height:         int32(c.Window.Height),
		Samples:        int32(c.Window.Samples),
		ModelPosition:  c.Scene.ModelPosition,
		ModelScale:     c.Scene.ModelScale,
		LightPositions: append([]mgl32.Vec3(nil), c.Scene.LightPositions...),
		LightCubeScale: c.Scene.LightCubeScale,
		GrassPositions: grass,
		ClearColor:     c.Scene.ClearColor,
		Shininess:      c.Scene.Shininess,
	}
}

// NewCamera builds the camera described by the camera section.
func (c Config) NewCamera() *renderer.Camera {
	cam := renderer.NewCamera(c.Camera.Position)
	cam.Speed = c.Camera.Speed
	cam.BoostFactor = c.Camera.BoostFactor
	cam.Sensitivity = c.Camera.Sensitivity
	cam.InvertMouse = c.Camera.InvertMouse
	cam.SetFov(c.Camera.Fov)
	return cam
}

// InputState is the initial input state for the configured window.
func (c Config) InputState() *input.State {
	s := input.NewState(c.Window.Width, c.Window.Height)
	s.MinFov, s.MaxFov = c.Camera.MinFov, c.Camera.MaxFov
	s.Fov = c.Camera.Fov
	s.Zoom(0)
	return s
}
