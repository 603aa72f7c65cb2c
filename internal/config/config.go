package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames   = 60
	DefaultBox      = 10.0
	DefaultDim      = 2
	DefaultDuration = 3.0
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultOutput   = "movie.gif"
	DefaultWorkDir  = "tmp-plot"
)

// Config is the file-backed run configuration. CLI flags override it.
type Config struct {
	Dataset  string  `yaml:"dataset"`
	Output   string  `yaml:"output"`
	Format   string  `yaml:"format"`
	Frames   int     `yaml:"frames"`
	Box      float64 `yaml:"box"`
	Dim      int     `yaml:"dim"`
	Duration float64 `yaml:"duration"`
	WorkDir  string  `yaml:"workdir"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`

	CentralBoxOnly bool `yaml:"central_box_only"`
	PairLines      bool `yaml:"pair_lines"`
	NeighborBoxes  bool `yaml:"neighbor_boxes"`
}

func DefaultConfig() *Config {
	return &Config{
		Output:   DefaultOutput,
		Format:   "gif",
		Frames:   DefaultFrames,
		Box:      DefaultBox,
		Dim:      DefaultDim,
		Duration: DefaultDuration,
		WorkDir:  DefaultWorkDir,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
