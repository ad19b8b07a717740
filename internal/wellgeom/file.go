package wellgeom

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// LoadFile reads well data from a TOML file.
func LoadFile(path string) (WellData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WellData{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var d WellData
	if err := toml.Unmarshal(data, &d); err != nil {
		return WellData{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes well data as TOML.
func WriteFile(path string, d WellData) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding well data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
