// Package geo matches mentions of geographic entities in free text against
// a curated gazetteer table.
package geo

import (
	"fmt"
	"os"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// Table maps an aggregation key to the alternative names grouped under it
// (country, capital, nationality, additional cities or regions).
type Table map[string][]string

// LoadTable reads a gazetteer table file.
// Format: key,name_0,name_1,...,name_n — one row per aggregation key,
// lines starting with # are comments, blank lines and empty fields are
// skipped.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	return parseTable(string(data)), nil
}

func parseTable(data string) Table {
	table := make(Table)

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var fields []string
		for _, f := range strings.Split(line, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}

		table[fields[0]] = fields[1:]
	}

	return table
}
