package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/steinlab/internal/stein"
)

const (
	DefaultParticles   = 100
	DefaultDim         = 2
	DefaultStepSize    = 0.1
	DefaultIterations  = 500
	DefaultLengthscale = 1.0
	DefaultSeed        = 42
)

type Config struct {
	Target      string     `yaml:"target"`
	Kernel      string     `yaml:"kernel"`
	Schedule    string     `yaml:"schedule"`
	Particles   int        `yaml:"particles"`
	Dim         int        `yaml:"dim"`
	StepSize    float64    `yaml:"step_size"`
	DecayRate   float64    `yaml:"decay_rate"`
	Iterations  int        `yaml:"iterations"`
	Seed        uint64     `yaml:"seed"`
	Attraction  bool       `yaml:"attraction"`
	Repulsion   bool       `yaml:"repulsion"`
	FieldScale  string     `yaml:"field_scale"`
	Lengthscale float64    `yaml:"lengthscale"` // 0 selects the median heuristic
	Init        InitConfig `yaml:"init"`
}

type InitConfig struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
}

func DefaultConfig() *Config {
	return &Config{
		Target:      "gaussian",
		Kernel:      "rbf",
		Schedule:    "constant",
		Particles:   DefaultParticles,
		Dim:         DefaultDim,
		StepSize:    DefaultStepSize,
		Iterations:  DefaultIterations,
		Seed:        DefaultSeed,
		Attraction:  true,
		Repulsion:   true,
		FieldScale:  "velocity",
		Lengthscale: DefaultLengthscale,
		Init:        InitConfig{Mean: 0, Std: 2},
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

// EngineConfig translates the file-level settings into the engine's
// update policy.
func (c *Config) EngineConfig() stein.Config {
	scale := stein.FieldVelocity
	if c.FieldScale == "displacement" {
		scale = stein.FieldDisplacement
	}
	return stein.Config{
		Attraction: c.Attraction,
		Repulsion:  c.Repulsion,
		StepSize:   c.StepSize,
		FieldScale: scale,
	}
}

// EngineInit translates the initial-distribution settings.
func (c *Config) EngineInit() stein.Init {
	return stein.Init{
		Mean: c.Init.Mean,
		Std:  c.Init.Std,
		Seed: c.Seed,
	}
}
