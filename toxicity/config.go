package toxicity

import (
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/sklearn/linear_model"
)

// Config holds the hyperparameters forwarded to the estimator.
type Config struct {
	LearningRate float64 `yaml:"learning_rate"`
	MaxIter      int     `yaml:"max_iter"`
}

// DefaultConfig returns the estimator defaults.
func DefaultConfig() Config {
	return Config{
		LearningRate: linear_model.DefaultLearningRate,
		MaxIter:      linear_model.DefaultMaxIter,
	}
}

// Validate reports whether the estimator would accept the configuration.
func (c Config) Validate() error {
	return linear_model.ValidateParams(c.LearningRate, c.MaxIter)
}

// ConfigFromParams builds a Config from a parameter map keyed like the
// YAML form. Keys that are absent keep their defaults. Unknown keys and
// values of the wrong type fail with *errors.ValidationError.
func ConfigFromParams(params map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		switch key {
		case "learning_rate":
			f, ok := toFloat(value)
			if !ok {
				return Config{}, errors.NewValidationError(key, "must be a number", value)
			}
			cfg.LearningRate = f
		case "max_iter":
			n, ok := toInt(value)
			if !ok {
				return Config{}, errors.NewValidationError(key, "must be an integer", value)
			}
			cfg.MaxIter = n
		default:
			return Config{}, errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return cfg, nil
}

// ParseConfig decodes a YAML document into a Config. Unknown keys are
// rejected and missing keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.NewValidationError("config", err.Error(), nil), "parse config")
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return ParseConfig(data)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		// Decoders such as encoding/json produce float64 for every number.
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
