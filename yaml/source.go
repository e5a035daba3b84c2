// Package yaml loads the server's seed dictionary from a YAML file.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shigekazukoya/abbr"
)

// seedFile is the on-disk layout:
//
//	version: 3
//	abbreviations:
//	  AI: Artificial Intelligence
//	  AWS: Amazon Web Services
type seedFile struct {
	Version       int64             `yaml:"version"`
	Abbreviations map[string]string `yaml:"abbreviations"`
}

// LoadSource reads a seed file into a cache record with normalized keys.
func LoadSource(path string) (*abbr.CacheRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, abbr.Errorf(abbr.EINVALID, "seed file %q is not valid YAML", path)
	}

	record := &abbr.CacheRecord{
		Version:       seed.Version,
		Abbreviations: abbr.Dictionary(seed.Abbreviations).Normalized(),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
