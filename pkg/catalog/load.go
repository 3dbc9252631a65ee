package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// catalogFile is the on-disk YAML shape
type catalogFile struct {
	Games []entities.GameConfig `yaml:"games"`
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entities.WrapError(entities.ErrInvalidCatalog, "error reading catalog file", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, entities.WrapError(entities.ErrInvalidCatalog, "error parsing catalog file", err)
	}

	return New(file.Games)
}
