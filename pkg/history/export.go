// ABOUTME: History export serialization
// ABOUTME: JSON and YAML renderings of the full version history

package history

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// MigrationRecord is the metadata-only view of a registered migration
// included in exports. The migration transforms themselves are code and are
// never serialized.
type MigrationRecord struct {
	FromVersion string `json:"fromVersion" yaml:"fromVersion"`
	ToVersion   string `json:"toVersion" yaml:"toVersion"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Breaking    bool   `json:"breaking,omitempty" yaml:"breaking,omitempty"`
}

// Export is the serialized form of a store's history.
type Export struct {
	CurrentVersion string            `json:"currentVersion" yaml:"currentVersion"`
	Versions       []*Version        `json:"versions" yaml:"versions"`
	Migrations     []MigrationRecord `json:"migrations" yaml:"migrations"`
}

// ExportHistory serializes the current version pointer, all retained version
// records (newest first) and the supplied migration metadata.
func (s *Store) ExportHistory(migrations []MigrationRecord, format Format) ([]byte, error) {
	if format == "" {
		format = FormatJSON
	}

	s.mu.RLock()
	export := Export{
		CurrentVersion: s.current,
		Versions:       s.listLocked(),
		Migrations:     migrations,
	}
	s.mu.RUnlock()

	if export.Migrations == nil {
		export.Migrations = []MigrationRecord{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(export)
	case FormatJSON:
		data, err = json.MarshalIndent(export, "", "  ")
	default:
		return nil, fmt.Errorf("history: unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RecordExport(string(format))
	return data, nil
}
