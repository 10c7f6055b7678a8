package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/hmans/bookshelf/internal/model"
)

// LoadDataset reads a seed document from path. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadDataset(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds, err := ParseDataset(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

// ParseDataset decodes a seed document. ext selects the format the same way
// LoadDataset does.
func ParseDataset(data []byte, ext string) (*model.Dataset, error) {
	var ds model.Dataset

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	default:
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	}

	return &ds, nil
}

// SaveDataset writes ds to path, choosing the format from the extension the
// same way LoadDataset does.
func SaveDataset(path string, ds *model.Dataset) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(ds)
	default:
		data, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(ds, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0644)
}

// Open loads the seed document at path into a new Store.
func Open(path string) (*Store, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return NewStore(ds), nil
}
