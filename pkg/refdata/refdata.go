// Package refdata ships the static reference lists served by the meta endpoints.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

// Entry is one code/name pair in a reference list.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var (
	loadOnce     sync.Once
	loadErr      error
	regions      []Entry
	serviceTypes []Entry
)

func load() {
	regions, loadErr = readList("data/regions.json")
	if loadErr != nil {
		return
	}
	serviceTypes, loadErr = readList("data/service_types.json")
}

func readList(path string) ([]Entry, error) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

// Regions returns the supported service regions.
func Regions() ([]Entry, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	return regions, nil
}

// ServiceTypes returns the supported venue service types.
func ServiceTypes() ([]Entry, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	return serviceTypes, nil
}

// IsServiceType reports whether the code is a known service type.
func IsServiceType(code string) bool {
	entries, err := ServiceTypes()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Code == code {
			return true
		}
	}
	return false
}
