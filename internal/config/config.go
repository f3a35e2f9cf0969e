package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type PreviewCfg struct {
	Scale      int `yaml:"scale"`       // frame downscale divisor for the ws stream
	ThrottleMs int `yaml:"throttle_ms"` // min interval between broadcast frames
}

type CaptureCfg struct {
	Encoder  string `yaml:"encoder"` // libx264 | h264_nvenc | h264_videotoolbox
	Quality  int    `yaml:"quality"`
	SettleMs int    `yaml:"settle_ms"` // margin past one loop before finalize
	Output   string `yaml:"output"`
}

type Config struct {
	FPS  int    `yaml:"fps"`
	Addr string `yaml:"addr"`

	Preview PreviewCfg `yaml:"preview"`
	Capture CaptureCfg `yaml:"capture"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
