package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/staffhold/hr-backoffice-go/internal/domain/device"
	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
)

// deviceMapFile mirrors the on-disk YAML shape:
//
//	devices:
//	  - ip: 10.0.0.11
//	    office: HQ
//	    direction: IN
type deviceMapFile struct {
	Devices []deviceMapEntry `yaml:"devices"`
}

type deviceMapEntry struct {
	IP        string `yaml:"ip"`
	Office    string `yaml:"office"`
	Direction string `yaml:"direction"`
}

// LoadDeviceMap reads the static device mapping list. A missing path returns
// an empty list and no error; the caller decides whether to warn.
func LoadDeviceMap(path string) ([]device.Mapping, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read device map %s: %w", path, err)
	}

	var file deviceMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse device map %s: %w", path, err)
	}

	mappings := make([]device.Mapping, 0, len(file.Devices))
	for i, entry := range file.Devices {
		if entry.IP == "" {
			return nil, fmt.Errorf("device map %s: entry %d has no ip", path, i)
		}
		dir := event.Direction(entry.Direction)
		if dir != event.DirectionIn && dir != event.DirectionOut {
			return nil, fmt.Errorf("device map %s: entry %d has invalid direction %q", path, i, entry.Direction)
		}
		mappings = append(mappings, device.Mapping{
			IP:          entry.IP,
			OfficeLabel: entry.Office,
			Direction:   dir,
		})
	}

	return mappings, nil
}
