// Package config handles showroom configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a loaded configuration cannot drive the renderer.
var ErrInvalid = errors.New("invalid config")

// Config holds all showroom settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig holds the camera pose, lights and content rotation settings.
type SceneConfig struct {
	Camera           CameraConfig  `yaml:"camera"`
	Lights           []LightConfig `yaml:"lights"`
	RotationInterval time.Duration `yaml:"rotation_interval"`
	VehicleCount     int           `yaml:"vehicle_count"`
	SkyboxScale      float32       `yaml:"skybox_scale"`
	SkyboxDrop       float32       `yaml:"skybox_drop"` // skybox center sits this far below the eye
	GroundHalfExtent float32       `yaml:"ground_half_extent"`
}

// CameraConfig holds the fixed camera pose.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up"`
	FOV    float32    `yaml:"fov"` // vertical, degrees
}

// LightConfig describes one point light.
type LightConfig struct {
	Position   [3]float32 `yaml:"position"`
	Color      [3]float32 `yaml:"color"`
	Radius     float32    `yaml:"radius"`
	Brightness float32    `yaml:"brightness"`
}

// AssetsConfig holds asset file locations, relative to Dir.
type AssetsConfig struct {
	Dir            string         `yaml:"dir"`
	Skybox         string         `yaml:"skybox"`
	Wheel          string         `yaml:"wheel"`
	VehiclePattern string         `yaml:"vehicle_pattern"` // fmt pattern, numbered from 1
	Textures       TexturesConfig `yaml:"textures"`
}

// TexturesConfig holds the texture file for each material group.
type TexturesConfig struct {
	Ground  string `yaml:"ground"`
	Vehicle string `yaml:"vehicle"`
	Sky     string `yaml:"sky"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     360,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Camera: CameraConfig{
				Eye:    [3]float32{0, 5, 10},
				Target: [3]float32{0, 0.5, 0},
				Up:     [3]float32{0, 1, 0},
				FOV:    45,
			},
			Lights: []LightConfig{
				{
					Position:   [3]float32{0, 3, 3},
					Color:      [3]float32{1, 1, 1},
					Radius:     10,
					Brightness: 1,
				},
			},
			RotationInterval: time.Second,
			VehicleCount:     16,
			SkyboxScale:      100,
			SkyboxDrop:       4,
			GroundHalfExtent: 5,
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Skybox:         "Skybox.3Dobj",
			Wheel:          "wheel.3Dobj",
			VehiclePattern: "carsHigh/%d.3Dobj",
			Textures: TexturesConfig{
				Ground:  "road.png",
				Vehicle: "CarColor.png",
				Sky:     "night1.png",
			},
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "showroom",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the values the frame loop depends on.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Scene.Camera.FOV <= 0 || c.Scene.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov %.1f out of (0, 180)", ErrInvalid, c.Scene.Camera.FOV)
	}
	if c.Scene.VehicleCount <= 0 {
		return fmt.Errorf("%w: vehicle_count must be positive", ErrInvalid)
	}
	if c.Scene.RotationInterval < time.Second {
		return fmt.Errorf("%w: rotation_interval %v is below 1s", ErrInvalid, c.Scene.RotationInterval)
	}
	if c.Scene.Camera.Eye == c.Scene.Camera.Target {
		return fmt.Errorf("%w: camera eye and target coincide", ErrInvalid)
	}
	if !c.Scene.Camera.hasBasis() {
		return fmt.Errorf("%w: camera up %v is parallel to the view direction", ErrInvalid, c.Scene.Camera.Up)
	}
	return nil
}

// hasBasis reports whether up and the view direction span a plane, so the
// camera's right axis is defined.
func (c CameraConfig) hasBasis() bool {
	var f [3]float32
	for i := range f {
		f[i] = c.Target[i] - c.Eye[i]
	}
	u := c.Up
	x := u[1]*f[2] - u[2]*f[1]
	y := u[2]*f[0] - u[0]*f[2]
	z := u[0]*f[1] - u[1]*f[0]
	cross := float64(x*x + y*y + z*z)
	scale := float64(u[0]*u[0]+u[1]*u[1]+u[2]*u[2]) * float64(f[0]*f[0]+f[1]*f[1]+f[2]*f[2])
	return cross > 1e-12*scale && scale > 0
}
