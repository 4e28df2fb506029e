// Package timezones is a drop-in timezone picker: a select field backed by a
// curated IANA zone list, plus a JSON search endpoint for typeahead widgets.
package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns the embedded zone list, sorted. The result is a copy.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultZones, defaultErr = LoadZones(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultZones...), nil
}

// LoadZones reads one zone name per line, skipping blanks and # comments,
// dropping duplicates, and sorting the result.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 128)
	seen := map[string]struct{}{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return zones, nil
}

// Search returns up to limit zones matching the query, case-insensitively.
// Prefix matches rank before substring matches. An empty query returns the
// head of the list so pickers have something to show before the user types.
func Search(zones []string, query string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if len(zones) <= limit {
			return append([]string{}, zones...)
		}
		return append([]string{}, zones[:limit]...)
	}

	type match struct {
		name   string
		prefix bool
	}
	matches := make([]match, 0, 32)
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, query) {
			continue
		}
		matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, query)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}
