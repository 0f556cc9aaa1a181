// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Model      ModelConfig      `yaml:"model"`
	Gizmos     GizmoConfig      `yaml:"gizmos"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SimulationConfig holds spring-bone settings.
type SimulationConfig struct {
	Sequential bool    `yaml:"sequential"` // Update chains on one goroutine
	Paused     bool    `yaml:"paused"`     // Start with the simulation stopped
	TimeScale  float32 `yaml:"time_scale"` // Multiplier applied to frame time
}

// ModelConfig holds the avatar to open.
type ModelConfig struct {
	Path string `yaml:"path"` // .vrm / .vci / .glb file
}

// GizmoConfig selects which debug overlays are drawn.
type GizmoConfig struct {
	Skeleton  bool `yaml:"skeleton"`
	Colliders bool `yaml:"colliders"`
	Tails     bool `yaml:"tails"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Simulation: SimulationConfig{
			Sequential: false,
			Paused:     false,
			TimeScale:  1,
		},
		Gizmos: GizmoConfig{
			Skeleton:  true,
			Colliders: true,
			Tails:     true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
