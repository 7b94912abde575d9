// Package dataset loads the house profiles the tour is built around.
// The dataset is read once at startup and treated as immutable afterwards.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"wutonggo/pkg/model"
)

// manifest pins the presentation order of the houses. The first entry is
// the primary house, whose home-context script plays on the overview.
type manifest struct {
	Houses []string `yaml:"houses"`
}

// Load reads every house profile under dir. When a manifest.yaml is
// present its order wins; otherwise profiles load in file name order.
func Load(dir string) ([]model.HouseProfile, error) {
	ids, err := loadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	if ids == nil {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			ids = append(ids, entry.Name()[:len(entry.Name())-len(".json")])
		}
		sort.Strings(ids)
	}

	houses := make([]model.HouseProfile, 0, len(ids))
	for _, id := range ids {
		house, err := loadHouse(filepath.Join(dir, id+".json"))
		if err != nil {
			return nil, err
		}
		if house.ID != id {
			return nil, fmt.Errorf("house file %s.json declares id %q", id, house.ID)
		}
		houses = append(houses, house)
	}
	return houses, nil
}

func loadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Houses) == 0 {
		return nil, fmt.Errorf("manifest lists no houses")
	}
	return m.Houses, nil
}

func loadHouse(path string) (model.HouseProfile, error) {
	var house model.HouseProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return house, fmt.Errorf("failed to read house file: %w", err)
	}
	if err := json.Unmarshal(data, &house); err != nil {
		return house, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if err := validate(house); err != nil {
		return house, fmt.Errorf("invalid house %s: %w", filepath.Base(path), err)
	}
	return house, nil
}

func validate(h model.HouseProfile) error {
	if h.ID == "" {
		return fmt.Errorf("missing id")
	}
	if h.Name == "" {
		return fmt.Errorf("missing name")
	}
	if h.YearBuilt <= 0 {
		return fmt.Errorf("missing year_built")
	}
	return nil
}
