package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the shape of an optional .vcore.yaml profile: which fixture
// directories bounds-check scans by default when no paths are given on
// the command line, and whether fold-trace recording should be
// force-enabled for every command that folds, regardless of whether
// "trace" was the subcommand invoked.
type Config struct {
	FixtureDirs []string `yaml:"fixtureDirs"`
	Trace       bool     `yaml:"trace"`
}

// LoadConfig reads path (or ./.vcore.yaml if path is empty). A missing
// file is not an error: it yields a zero-value Config, since the config
// file is optional tooling, not a requirement of any subcommand.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ".vcore.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
