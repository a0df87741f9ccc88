package config

var Presets = map[string]map[string]*Config{
	"logreg": {
		"quick": {
			Arch: "logreg", Dataset: "blobs", Loss: "cross_entropy",
			Optimizer: "sgd", Schedule: "constant",
			Epochs: 15, BatchSize: 32, LR: 0.5, ValSplit: 0.2,
		},
		"mnist": {
			Arch: "logreg", Dataset: "mnist", Loss: "cross_entropy",
			Optimizer: "sgd", Schedule: "constant",
			Epochs: 5, BatchSize: 64, LR: 0.1, ValSplit: 0.1,
		},
	},
	"mlp": {
		"quick": {
			Arch: "mlp", Dataset: "blobs", Loss: "cross_entropy",
			Optimizer: "sgd", Schedule: "constant",
			Epochs: 20, BatchSize: 32, LR: 0.1, ValSplit: 0.2,
		},
		"adam": {
			Arch: "mlp", Dataset: "blobs", Loss: "cross_entropy",
			Optimizer: "adam", Schedule: "constant",
			Epochs: 20, BatchSize: 32, LR: 0.001, ValSplit: 0.2,
		},
		"mnist": {
			Arch: "mlp", Dataset: "mnist", Loss: "cross_entropy",
			Optimizer: "adam", Schedule: "cosine",
			Epochs: 10, BatchSize: 64, LR: 0.001, ValSplit: 0.1,
		},
	},
	"mlp-dropout": {
		"mnist": {
			Arch: "mlp-dropout", Dataset: "mnist", Loss: "cross_entropy",
			Optimizer: "adam", Schedule: "step",
			Epochs: 15, BatchSize: 64, LR: 0.001, ValSplit: 0.1,
		},
	},
	"mlp-tanh": {
		"quick": {
			Arch: "mlp-tanh", Dataset: "blobs", Loss: "mse",
			Optimizer: "momentum", Schedule: "exp",
			Epochs: 25, BatchSize: 32, LR: 0.05, ValSplit: 0.2,
		},
	},
}

func GetPreset(arch, preset string) *Config {
	archPresets, ok := Presets[arch]
	if !ok {
		return nil
	}
	cfg, ok := archPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(arch string) []string {
	archPresets, ok := Presets[arch]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(archPresets))
	for name := range archPresets {
		names = append(names, name)
	}
	return names
}
