// Package config loads the search service's tunable parameters from
// a YAML file, following the same load-into-struct pattern the rest
// of the codebase's ambient configuration uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"weatherseed/internal/search"
)

// Search holds the tunables for the search driver and its transports.
// Policy is the same type search.Run reads its worker-count and
// progress-interval thresholds from, so overriding this file actually
// changes search behavior rather than only documenting it.
type Search struct {
	search.Policy `yaml:",inline"`

	// DataDir is where checkpoints and export logs are written.
	DataDir string `yaml:"data_dir"`
}

// Defaults returns the policy stated in spec.md section 4.F.
func Defaults() Search {
	return Search{
		Policy:  search.DefaultPolicy(),
		DataDir: "./data",
	}
}

// Load reads a YAML file and overlays it onto Defaults(); missing
// fields keep their default value since Search's zero value for an
// unset field is never meaningful (no policy threshold is legitimately
// zero), so we unmarshal into a defaulted struct rather than a bare one.
func Load(path string) (Search, error) {
	cfg := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
