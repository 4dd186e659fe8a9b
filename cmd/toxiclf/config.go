package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/toxiclf/pkg/dataset"
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/toxicity"
)

// appConfig is the YAML layout read by -config. The model hyperparameters
// sit at the top level next to the run settings.
type appConfig struct {
	Model       toxicity.Config `yaml:",inline"`
	Data        string          `yaml:"data"`
	LabelColumn string          `yaml:"label_column"`
	Folds       int             `yaml:"folds"`
	NJobs       int             `yaml:"n_jobs"`
	Seed        uint64          `yaml:"seed"`
	Plot        string          `yaml:"plot"`
	Log         logConfig       `yaml:"log"`
}

type logConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Model:       toxicity.DefaultConfig(),
		LabelColumn: dataset.DefaultLabelColumn,
		Folds:       5,
		Log: logConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// loadAppConfig reads path strictly; an empty path yields the defaults.
func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return appConfig{}, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return appConfig{}, errors.Wrap(errors.NewValidationError("config", err.Error(), path), "parse config")
	}
	return cfg, nil
}

func (c appConfig) validate() error {
	if c.Data == "" {
		return errors.NewValidationError("data", "a CSV path is required", c.Data)
	}
	if c.Folds == 1 || c.Folds < 0 {
		return errors.NewValidationError("folds", "must be 0 (skip cross-validation) or at least 2", c.Folds)
	}
	return c.Model.Validate()
}
