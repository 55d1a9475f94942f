package chilexpress

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"praktico/internal/commons"

	"go.yaml.in/yaml/v3"
)

//go:embed coverage.yaml
var coverageYAML []byte

type coverageEntry struct {
	Comuna string `yaml:"comuna"`
	Code   string `yaml:"code"`
}

// CoverageTable resolves comuna names to Chilexpress county codes.
type CoverageTable struct {
	entries []coverageEntry
	exact   map[string]string
}

func LoadCoverage() (*CoverageTable, error) {
	return parseCoverage(coverageYAML)
}

func parseCoverage(data []byte) (*CoverageTable, error) {
	var entries []coverageEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing coverage table: %w", err)
	}

	table := &CoverageTable{exact: make(map[string]string, len(entries))}
	for i, e := range entries {
		key := commons.NormalizeComuna(e.Comuna)
		if key == "" || e.Code == "" {
			return nil, fmt.Errorf("coverage entry %d: comuna and code are required", i)
		}
		e.Comuna = key
		table.entries = append(table.entries, e)
		if _, seen := table.exact[key]; !seen {
			table.exact[key] = e.Code
		}
	}

	return table, nil
}

// Lookup tries an exact match, then a partial match in table order, and
// finally derives a code from the first four letters of the name.
func (t *CoverageTable) Lookup(comuna string) (string, bool) {
	key := commons.NormalizeComuna(comuna)
	if key == "" {
		return "", false
	}

	if code, ok := t.exact[key]; ok {
		return code, true
	}

	for _, e := range t.entries {
		if strings.Contains(key, e.Comuna) || strings.Contains(e.Comuna, key) {
			return e.Code, true
		}
	}

	letters := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return unicode.ToUpper(r)
		}
		return -1
	}, key)
	if len(letters) < 2 {
		return "", false
	}
	if len(letters) > 4 {
		letters = letters[:4]
	}

	return letters, true
}
