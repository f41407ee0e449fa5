package doctor

import (
	"fmt"
	"os"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
)

// ConfigCheck reports whether the settings file loaded.
type ConfigCheck struct {
	// Path is the file that was loaded, empty when defaults were used.
	Path string
	// Err is the load error, if any.
	Err error
}

func (c *ConfigCheck) Name() string     { return "settings-file" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	if c.Err != nil {
		r := result(c, SeverityError, c.Err.Error())
		r.FixHint = "Fix the file or run: gamesl config init --force"
		return r
	}
	if c.Path == "" {
		return result(c, SeverityInfo, "no settings file, using defaults")
	}
	r := pass(c, "loaded")
	r.Details = map[string]any{"path": c.Path}
	return r
}

// DirCheck verifies a storage directory can be created and written to.
type DirCheck struct {
	Label string
	Path  string
}

func (c *DirCheck) Name() string     { return c.Label }
func (c *DirCheck) Category() string { return "storage" }

func (c *DirCheck) Run() *CheckResult {
	if err := checkWritable(c.Path); err != nil {
		r := result(c, SeverityError, err.Error())
		r.Details = map[string]any{"path": c.Path}
		r.FixHint = "Check the permissions of " + c.Path + " or point the setting elsewhere"
		return r
	}
	r := pass(c, "writable")
	r.Details = map[string]any{"path": c.Path}
	return r
}

// checkWritable creates dir if needed and writes a throwaway file in it.
func checkWritable(dir string) error {
	if err := paths.EnsureDir(dir, 0); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".gamesl-write-test-*")
	if err != nil {
		return errors.IOf(err, "writing to %s", dir)
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return errors.IOf(err, "removing write test file %s", name)
	}
	return nil
}

// TrashCheck reports where restores move replaced save directories.
type TrashCheck struct {
	// Dir is the private trash directory, empty for the system recycle bin.
	Dir string
}

func (c *TrashCheck) Name() string     { return "trash" }
func (c *TrashCheck) Category() string { return "storage" }

func (c *TrashCheck) Run() *CheckResult {
	if c.Dir == "" {
		return result(c, SeverityInfo, "replaced saves go to the system recycle bin")
	}
	inner := &DirCheck{Label: c.Name(), Path: c.Dir}
	r := inner.Run()
	r.Category = c.Category()
	return r
}

// LibraryReader is the part of the library store the checks use.
type LibraryReader interface {
	Read() (*config.Library, error)
	Path() string
}

// LibraryCheck verifies the game library parses.
type LibraryCheck struct {
	Store LibraryReader
}

func (c *LibraryCheck) Name() string     { return "library" }
func (c *LibraryCheck) Category() string { return "library" }

func (c *LibraryCheck) Run() *CheckResult {
	lib, err := c.Store.Read()
	if err != nil {
		r := result(c, SeverityError, err.Error())
		r.Details = map[string]any{"path": c.Store.Path()}
		r.FixHint = "Repair or move aside " + c.Store.Path() + "; a fresh library is created on next use"
		return r
	}
	if len(lib.Games) == 0 {
		r := result(c, SeverityInfo, "no games registered")
		r.FixHint = "Run: gamesl game add <name> <path-template>"
		return r
	}
	r := pass(c, fmt.Sprintf("%d games registered", len(lib.Games)))
	r.Details = map[string]any{"path": c.Store.Path(), "games": len(lib.Games)}
	return r
}

// Resolver expands save-path templates.
type Resolver interface {
	Resolve(template, userContext string) (string, error)
}

// SaveDirCheck verifies a game's save path resolves to an existing directory.
type SaveDirCheck struct {
	Game     config.Game
	Resolver Resolver
	// UserContext fills {SteamUID}; games using it are only warned about
	// when it is empty.
	UserContext string
}

func (c *SaveDirCheck) Name() string     { return c.Game.Name }
func (c *SaveDirCheck) Category() string { return "game" }

func (c *SaveDirCheck) Run() *CheckResult {
	dir, err := c.Resolver.Resolve(c.Game.Path, c.UserContext)
	switch {
	case errors.Is(err, paths.ErrMissingSteamUID):
		r := result(c, SeverityWarning, "save path needs a Steam user ID")
		r.FixHint = "Pass --uid, see: gamesl steam uids"
		return r
	case errors.Is(err, paths.ErrSteamNotFound):
		r := result(c, SeverityWarning, "save path uses {Steam} but no Steam installation was found")
		return r
	case err != nil:
		r := result(c, SeverityError, err.Error())
		r.FixHint = "Fix the template with: gamesl game remove, then gamesl game add"
		return r
	}

	details := map[string]any{"template": c.Game.Path, "path": dir}
	info, err := os.Stat(dir)
	if err != nil {
		r := result(c, SeverityWarning, "save directory does not exist yet")
		r.Details = details
		return r
	}
	if !info.IsDir() {
		r := result(c, SeverityError, "save path is not a directory")
		r.Details = details
		return r
	}
	r := pass(c, "save directory exists")
	r.Details = details
	return r
}

// SteamLocator finds the Steam installation and its users.
type SteamLocator interface {
	SteamDir() (string, error)
	ListSteamUIDs() []string
}

// SteamCheck reports the Steam installation, informational only.
type SteamCheck struct {
	Locator SteamLocator
}

func (c *SteamCheck) Name() string     { return "steam" }
func (c *SteamCheck) Category() string { return "steam" }

func (c *SteamCheck) Run() *CheckResult {
	dir, err := c.Locator.SteamDir()
	if err != nil {
		return result(c, SeverityInfo, "Steam not found")
	}
	uids := c.Locator.ListSteamUIDs()
	r := result(c, SeverityInfo, fmt.Sprintf("found at %s with %d users", dir, len(uids)))
	r.Details = map[string]any{"path": dir, "users": len(uids)}
	return r
}
