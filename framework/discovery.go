package framework

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultFixtureSuffix is the file name suffix that marks a fixture file.
const DefaultFixtureSuffix = "_fixture.go"

// DiscoverFixtures lists the files directly inside dir whose names end with suffix, in
// name order. Subdirectories are not searched.
func DiscoverFixtures(dir, suffix string) ([]string, error) {
	if suffix == "" {
		suffix = DefaultFixtureSuffix
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
