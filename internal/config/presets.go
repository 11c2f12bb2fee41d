package config

var Presets = map[string]map[string]*Config{
	"gaussian": {
		"quick": {
			Target: "gaussian", Kernel: "rbf", Schedule: "constant",
			Particles: 50, Dim: 2, StepSize: 0.1, Iterations: 200,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 1.0, Init: InitConfig{Mean: 3, Std: 1},
		},
		"dense": {
			Target: "gaussian", Kernel: "rbf", Schedule: "constant",
			Particles: 300, Dim: 2, StepSize: 0.05, Iterations: 1000,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 0, Init: InitConfig{Mean: 3, Std: 1},
		},
	},
	"bimodal": {
		"split": {
			Target: "bimodal", Kernel: "rbf", Schedule: "constant",
			Particles: 200, Dim: 2, StepSize: 0.05, Iterations: 1500,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 0, Init: InitConfig{Mean: 0, Std: 0.5},
		},
		"heavytail": {
			Target: "bimodal", Kernel: "imq", Schedule: "inverse",
			Particles: 200, Dim: 2, StepSize: 0.1, DecayRate: 0.001, Iterations: 2000,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 1.0, Init: InitConfig{Mean: 0, Std: 0.5},
		},
	},
	"doublewell": {
		"settle": {
			Target: "doublewell", Kernel: "rbf", Schedule: "exponential",
			Particles: 150, Dim: 1, StepSize: 0.1, DecayRate: 0.998, Iterations: 1000,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 0.5, Init: InitConfig{Mean: 0, Std: 2},
		},
	},
	"banana": {
		"ridge": {
			Target: "banana", Kernel: "rbf", Schedule: "constant",
			Particles: 200, Dim: 2, StepSize: 0.02, Iterations: 2000,
			Seed: DefaultSeed, Attraction: true, Repulsion: true,
			Lengthscale: 0, Init: InitConfig{Mean: 0, Std: 2},
		},
	},
}

func GetPreset(target, name string) *Config {
	group, ok := Presets[target]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(target string) []string {
	group, ok := Presets[target]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
