package config

import (
	"fmt"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/geo"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/tokenize"
)

// Loader loads the configuration files and constructs the optional
// extractors used during corpus assembly.
type Loader struct {
	StoplistPath string // YAML stopword list; empty means no stopwords
	GeoTablePath string // gazetteer table; empty disables the matcher
}

// Components holds the constructed extractors.
type Components struct {
	Tokenizer *tokenize.Tokenizer
	Locations *geo.Matcher // nil when no gazetteer table was given
}

// Load reads the configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	var stopwords []string
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stopwords = stoplist.Terms
	}
	comp.Tokenizer = tokenize.New(tokenize.Options{
		Stopwords: stopwords,
		AlphaOnly: true,
		Lowercase: true,
	})

	if l.GeoTablePath != "" {
		table, err := geo.LoadTable(l.GeoTablePath)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		comp.Locations = geo.NewMatcher(table)
	}

	return comp, nil
}
