// Package pass loads and stores the pass records consumed by the analysis
// and synthesis pipelines.
package pass

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads a pass record from a YAML file.
func Load(path string) (*Pass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pass file: %w", err)
	}

	var p Pass
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing pass YAML %s: %w", filepath.Base(path), err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("pass file %s: missing id", filepath.Base(path))
	}

	return &p, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
// Two files declaring the same id is an error.
func LoadDir(dir string) ([]*Pass, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, m...)
	}
	if len(paths) == 0 {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("reading pass directory: %w", err)
		}
	}
	sort.Strings(paths)

	seen := make(map[string]string, len(paths))
	passes := make([]*Pass, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate pass id %q in %s and %s", p.ID, filepath.Base(prev), filepath.Base(path))
		}
		seen[p.ID] = path
		passes = append(passes, p)
	}
	return passes, nil
}
