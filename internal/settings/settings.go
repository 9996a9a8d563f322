package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Store holds flat key/value application settings, persisted as one JSON
// file and merged over built-in defaults on load. Read or write failures are
// non-fatal: the in-memory state keeps working with defaults.
type Store struct {
	v    *viper.Viper
	fsys afero.Fs
	path string
}

// DefaultDir returns the per-user data directory for settings, profiles and
// history.
func DefaultDir() string {
	if runtime.GOOS == "windows" {
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			appdata, _ = os.UserHomeDir()
		}
		return filepath.Join(appdata, "BulkFileRenamer")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".bulk_file_renamer")
}

// NewStore creates a settings store rooted at dir.
func NewStore(fsys afero.Fs, dir string) *Store {
	v := viper.New()
	v.SetFs(fsys)
	path := filepath.Join(dir, "settings.json")
	v.SetConfigFile(path)
	v.SetConfigType("json")

	// Preview
	v.SetDefault("preview_auto_refresh", true)
	v.SetDefault("auto_resolve_conflicts", false)

	// Default naming
	v.SetDefault("default_prefix", "")
	v.SetDefault("default_suffix", "")
	v.SetDefault("default_base_name", "")
	v.SetDefault("default_start_number", 1)

	// UI
	v.SetDefault("theme", "Dark")
	v.SetDefault("language", "en")
	v.SetDefault("show_tooltips", true)
	v.SetDefault("confirm_before_rename", true)
	v.SetDefault("show_file_count", true)

	// File operations
	v.SetDefault("backup_before_rename", false)
	v.SetDefault("backup_location", "backups/")
	v.SetDefault("overwrite_existing", false)

	// Advanced
	v.SetDefault("case_sensitive_sorting", true)
	v.SetDefault("log_operations", false)
	v.SetDefault("log_file", "bulk_renamer.log")

	// Recent items
	v.SetDefault("recent_folders", []string{})
	v.SetDefault("recent_profiles", []string{})
	v.SetDefault("max_recent_items", 10)

	v.SetDefault("history_file", filepath.Join(dir, "history.json"))

	return &Store{v: v, fsys: fsys, path: path}
}

// Load merges the settings file over the defaults. A missing file is fine.
func (s *Store) Load() {
	if err := s.v.ReadInConfig(); err != nil {
		if exists, _ := afero.Exists(s.fsys, s.path); exists {
			log.Warn().Err(err).Str("path", s.path).Msg("Error loading settings, using defaults")
		}
	}
}

// Save writes all current settings, including a refreshed metadata block.
func (s *Store) Save() error {
	s.v.Set("_metadata", map[string]string{
		"version":      "1.0",
		"last_updated": time.Now().Format(time.RFC3339),
	})
	if err := s.fsys.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *Store) GetString(key string) string { return s.v.GetString(key) }
func (s *Store) GetBool(key string) bool     { return s.v.GetBool(key) }
func (s *Store) GetInt(key string) int       { return s.v.GetInt(key) }

func (s *Store) Set(key string, value any) {
	s.v.Set(key, value)
}

// HistoryFile returns the configured history ledger location.
func (s *Store) HistoryFile() string {
	return s.v.GetString("history_file")
}

// AddRecentFolder moves or inserts the folder at the front of the
// recent-folders list, trimmed to max_recent_items.
func (s *Store) AddRecentFolder(folder string) {
	s.v.Set("recent_folders", pushRecent(s.v.GetStringSlice("recent_folders"), folder, s.v.GetInt("max_recent_items")))
}

// AddRecentProfile does the same for profile names.
func (s *Store) AddRecentProfile(name string) {
	s.v.Set("recent_profiles", pushRecent(s.v.GetStringSlice("recent_profiles"), name, s.v.GetInt("max_recent_items")))
}

// RecentFolders returns the recent-folders list, most recent first.
func (s *Store) RecentFolders() []string {
	return s.v.GetStringSlice("recent_folders")
}

func pushRecent(items []string, item string, max int) []string {
	out := make([]string, 0, len(items)+1)
	out = append(out, item)
	for _, existing := range items {
		if existing != item {
			out = append(out, existing)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
