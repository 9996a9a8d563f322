package profile

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/bulk-renamer/go/internal/types"
)

// Metadata is the versioning block written into every profile file.
type Metadata struct {
	Created time.Time `json:"created"`
	Version string    `json:"version"`
}

// Profile is a saved naming configuration plus the preview filter/sort state
// the user had when saving it.
type Profile struct {
	Naming        types.NamingConfig `json:"naming"`
	FilterText    string             `json:"filter_text"`
	SortColumn    string             `json:"sort_column"`
	SortAscending bool               `json:"sort_ascending"`
	Metadata      Metadata           `json:"_metadata"`
}

// Manager stores one JSON file per named profile under a user-data
// directory.
type Manager struct {
	fsys afero.Fs
	dir  string
}

// NewManager creates a profile manager rooted at dir.
func NewManager(fsys afero.Fs, dir string) *Manager {
	return &Manager{fsys: fsys, dir: dir}
}

func (m *Manager) profilePath(name string) string {
	return filepath.Join(m.dir, name+".json")
}

// Save writes the profile, stamping its metadata block.
func (m *Manager) Save(name string, p Profile) error {
	if err := m.fsys.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	p.Metadata = Metadata{Created: time.Now(), Version: "1.0"}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", name, err)
	}
	if err := afero.WriteFile(m.fsys, m.profilePath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", name, err)
	}
	log.Info().Str("profile", name).Msg("Saved profile")
	return nil
}

// Load reads a profile by name.
func (m *Manager) Load(name string) (*Profile, error) {
	data, err := afero.ReadFile(m.fsys, m.profilePath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", name, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	return &p, nil
}

// List returns all available profile names, sorted.
func (m *Manager) List() []string {
	entries, err := afero.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Delete removes a profile. Deleting a missing profile is not an error.
func (m *Manager) Delete(name string) error {
	path := m.profilePath(name)
	if exists, _ := afero.Exists(m.fsys, path); !exists {
		return nil
	}
	return m.fsys.Remove(path)
}

// Exists reports whether a profile is stored under the given name.
func (m *Manager) Exists(name string) bool {
	exists, _ := afero.Exists(m.fsys, m.profilePath(name))
	return exists
}
