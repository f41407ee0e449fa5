package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// Library setting keys.
const (
	SettingRestoreExtraBackup = "restoreExtraBackup"
	SettingUseRelativeTime    = "useRelativeTime"
)

//go:embed default-library.json
var defaultLibrary []byte

// settingDefaults are filled into the settings object on every read.
var settingDefaults = map[string]any{
	SettingRestoreExtraBackup: true,
	SettingUseRelativeTime:    true,
}

// Sentinel errors for the library store.
var (
	// ErrGameNotFound indicates no game entry has the requested name.
	ErrGameNotFound = errors.NewSentinel(errors.KindNotFound, "game not found")

	// ErrGameExists indicates a game entry with the same name already exists.
	ErrGameExists = errors.NewSentinel(errors.KindInvalidInput, "game already exists")
)

// Library is the persisted game library document.
type Library struct {
	Settings map[string]any `json:"settings"`
	Games    []Game         `json:"games"`
	Version  int            `json:"version"`
}

// Game is a single entry of the library.
type Game struct {
	Name string `json:"name"`
	// Path is a save-path template, see package paths.
	Path     string `json:"path"`
	Icon     string `json:"icon"`
	LastSave *int64 `json:"lastSave,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Setting returns the raw value of a setting and whether it is present.
func (l *Library) Setting(key string) (any, bool) {
	if l == nil || l.Settings == nil {
		return nil, false
	}
	v, ok := l.Settings[key]
	return v, ok
}

// BoolSetting returns the boolean value of key, or def when it is missing or not a bool.
func (l *Library) BoolSetting(key string, def bool) bool {
	v, ok := l.Setting(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Game returns the entry named name.
func (l *Library) Game(name string) (*Game, bool) {
	for i := range l.Games {
		if l.Games[i].Name == name {
			return &l.Games[i], true
		}
	}
	return nil, false
}

// fillDefaults adds missing settings and reports whether anything changed.
func (l *Library) fillDefaults() bool {
	changed := false
	if l.Settings == nil {
		l.Settings = map[string]any{}
		changed = true
	}
	for key, value := range settingDefaults {
		if _, ok := l.Settings[key]; !ok {
			l.Settings[key] = value
			changed = true
		}
	}
	if l.Games == nil {
		l.Games = []Game{}
	}
	if l.Version == 0 {
		l.Version = 1
		changed = true
	}
	return changed
}

// LibraryStore reads and writes the game library document.
// Every mutating method reads the current document, applies the change,
// writes it back atomically and returns the updated snapshot.
type LibraryStore struct {
	path string
}

// NewLibraryStore creates a store backed by the JSON file at path.
// An empty path selects the default location in the work directory.
func NewLibraryStore(path string) *LibraryStore {
	if path == "" {
		path = paths.LibraryFile()
	}
	return &LibraryStore{path: path}
}

// Path returns the location of the library file.
func (s *LibraryStore) Path() string {
	return s.path
}

// Read loads the library, creating it from the embedded default when missing.
// Missing settings are filled with defaults and written back.
func (s *LibraryStore) Read() (*Library, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileLimit(s.path, fileutil.MaxDocumentSize)
	if err != nil {
		return nil, errors.Wrapf(err, "reading library %s", s.path)
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, errors.WithKind(errors.Wrapf(err, "parsing library %s", s.path), errors.KindInvalidInput)
	}

	if lib.fillDefaults() {
		if err := s.Write(&lib); err != nil {
			return nil, err
		}
	}
	return &lib, nil
}

// Write persists lib atomically.
func (s *LibraryStore) Write(lib *Library) error {
	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteJSON(s.path, lib); err != nil {
		return errors.Wrapf(err, "writing library %s", s.path)
	}
	return nil
}

// UpdateSetting sets a single settings key.
func (s *LibraryStore) UpdateSetting(key string, value any) (*Library, error) {
	if key == "" {
		return nil, errors.InvalidInputf("setting key is required")
	}
	return s.update(func(lib *Library) error {
		lib.Settings[key] = value
		return nil
	})
}

// RecordTimestamp sets the last-save time of the named game, in epoch milliseconds.
// It fails with ErrGameNotFound when the game is not in the library.
func (s *LibraryStore) RecordTimestamp(name string, millis int64) (*Library, error) {
	return s.update(func(lib *Library) error {
		g, ok := lib.Game(name)
		if !ok {
			return errors.Wrapf(ErrGameNotFound, "recording last save for %q", name)
		}
		g.LastSave = &millis
		return nil
	})
}

// ReadPolicyFlag returns the boolean setting key, or def when the library
// cannot be read or the value is not a boolean.
func (s *LibraryStore) ReadPolicyFlag(key string, def bool) bool {
	lib, err := s.Read()
	if err != nil {
		return def
	}
	return lib.BoolSetting(key, def)
}

// Game returns a copy of the entry named name.
func (s *LibraryStore) Game(name string) (*Game, error) {
	lib, err := s.Read()
	if err != nil {
		return nil, err
	}
	g, ok := lib.Game(name)
	if !ok {
		return nil, errors.Wrapf(ErrGameNotFound, "looking up %q", name)
	}
	cp := *g
	return &cp, nil
}

// AddGame appends a new entry. Names must be unique.
func (s *LibraryStore) AddGame(g Game) (*Library, error) {
	if g.Name == "" {
		return nil, errors.ErrMissingName
	}
	if g.Path == "" {
		return nil, errors.InvalidInputf("save path is required for %q", g.Name)
	}
	return s.update(func(lib *Library) error {
		if _, ok := lib.Game(g.Name); ok {
			return errors.Wrapf(ErrGameExists, "adding %q", g.Name)
		}
		lib.Games = append(lib.Games, g)
		return nil
	})
}

// RemoveGame deletes the entry named name. Backups on disk are left alone.
func (s *LibraryStore) RemoveGame(name string) (*Library, error) {
	return s.update(func(lib *Library) error {
		for i := range lib.Games {
			if lib.Games[i].Name == name {
				lib.Games = append(lib.Games[:i], lib.Games[i+1:]...)
				return nil
			}
		}
		return errors.Wrapf(ErrGameNotFound, "removing %q", name)
	})
}

// Reorder moves the named games to the front in the given order; the
// remaining games follow in their previous order. Unknown names are ignored.
func (s *LibraryStore) Reorder(order []string) (*Library, error) {
	return s.update(func(lib *Library) error {
		byName := make(map[string]Game, len(lib.Games))
		for _, g := range lib.Games {
			byName[g.Name] = g
		}

		reordered := make([]Game, 0, len(lib.Games))
		for _, name := range order {
			if g, ok := byName[name]; ok {
				reordered = append(reordered, g)
				delete(byName, name)
			}
		}
		for _, g := range lib.Games {
			if _, ok := byName[g.Name]; ok {
				reordered = append(reordered, g)
				delete(byName, g.Name)
			}
		}

		lib.Games = reordered
		return nil
	})
}

func (s *LibraryStore) update(fn func(lib *Library) error) (*Library, error) {
	lib, err := s.Read()
	if err != nil {
		return nil, err
	}
	if err := fn(lib); err != nil {
		return nil, err
	}
	if err := s.Write(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

func (s *LibraryStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.IOf(err, "checking library %s", s.path)
	}

	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(s.path, defaultLibrary, 0644); err != nil {
		return errors.Wrapf(err, "creating library %s", s.path)
	}
	return nil
}
