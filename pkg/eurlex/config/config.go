// Package config loads the optional extractor configuration files and
// constructs the components that consume them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return &sl, nil
}
