package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// Placeholders recognised in save-path templates.
const (
	PlaceholderSteam    = "{Steam}"
	PlaceholderSteamUID = "{SteamUID}"
	PlaceholderAppData  = "{AppData}"
	PlaceholderUser     = "{User}"
	PlaceholderHome     = "{Home}"
)

// Sentinel errors for template resolution.
var (
	// ErrMissingSteamUID indicates a template needs {SteamUID} but none was supplied.
	ErrMissingSteamUID = errors.NewSentinel(errors.KindInvalidInput, "missing SteamUID")

	// ErrSteamNotFound indicates the Steam install directory could not be located.
	ErrSteamNotFound = errors.NewSentinel(errors.KindNotFound, "steam install directory not found")

	// ErrRelativePath indicates a template expanded to a relative path.
	ErrRelativePath = errors.NewSentinel(errors.KindInvalidInput, "resolved path is not absolute")
)

// Resolver expands save-path templates into concrete directories.
// The zero value is not usable; create one with [NewResolver].
type Resolver struct {
	home        string
	appData     string
	steamLookup func() (string, error)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHome overrides the home directory used for {User} and {Home}.
func WithHome(dir string) ResolverOption {
	return func(r *Resolver) {
		r.home = dir
	}
}

// WithAppData overrides the roaming application-data directory. {AppData}
// expands to its parent.
func WithAppData(dir string) ResolverOption {
	return func(r *Resolver) {
		r.appData = dir
	}
}

// WithSteamDir pins the Steam install directory instead of probing the system.
func WithSteamDir(dir string) ResolverOption {
	return func(r *Resolver) {
		r.steamLookup = func() (string, error) {
			if dir == "" {
				return "", ErrSteamNotFound
			}
			return dir, nil
		}
	}
}

// NewResolver creates a Resolver reading the environment of the current user.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		appData:     os.Getenv("APPDATA"),
		steamLookup: lookupSteamDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands every placeholder in template and returns a cleaned absolute path.
// userContext supplies the {SteamUID} value and may be empty when the template
// does not reference it.
func (r *Resolver) Resolve(template, userContext string) (string, error) {
	path := template

	if strings.Contains(path, PlaceholderSteam) {
		steam, err := r.SteamDir()
		if err != nil {
			return "", err
		}
		path = strings.ReplaceAll(path, PlaceholderSteam, steam)
	}

	if strings.Contains(path, PlaceholderSteamUID) {
		uid := strings.TrimSpace(userContext)
		if uid == "" {
			return "", errors.Wrapf(ErrMissingSteamUID, "resolving %q", template)
		}
		path = strings.ReplaceAll(path, PlaceholderSteamUID, uid)
	}

	if strings.Contains(path, PlaceholderAppData) {
		root, err := r.appDataRoot()
		if err != nil {
			return "", err
		}
		path = strings.ReplaceAll(path, PlaceholderAppData, root)
	}

	if strings.Contains(path, PlaceholderUser) || strings.Contains(path, PlaceholderHome) {
		home, err := r.homeDir()
		if err != nil {
			return "", err
		}
		path = strings.ReplaceAll(path, PlaceholderUser, home)
		path = strings.ReplaceAll(path, PlaceholderHome, home)
	}

	path = filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsAbs(path) {
		return "", errors.Wrapf(ErrRelativePath, "template %q resolved to %q", template, path)
	}
	return path, nil
}

// SteamDir returns the Steam install directory.
func (r *Resolver) SteamDir() (string, error) {
	dir, err := r.steamLookup()
	if err != nil {
		return "", err
	}
	return filepath.Clean(filepath.FromSlash(dir)), nil
}

// ListSteamUIDs returns the numeric user directories under <Steam>/userdata,
// sorted. Any failure yields an empty slice.
func (r *Resolver) ListSteamUIDs() []string {
	steam, err := r.SteamDir()
	if err != nil {
		return []string{}
	}
	entries, err := os.ReadDir(filepath.Join(steam, "userdata"))
	if err != nil {
		return []string{}
	}

	uids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !isNumeric(entry.Name()) {
			continue
		}
		uids = append(uids, entry.Name())
	}
	sort.Strings(uids)
	return uids
}

func (r *Resolver) homeDir() (string, error) {
	if r.home != "" {
		return r.home, nil
	}
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		return profile, nil
	}
	return ResolveHome()
}

func (r *Resolver) appDataRoot() (string, error) {
	if r.appData != "" {
		return filepath.Dir(filepath.Clean(r.appData)), nil
	}
	home, err := r.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "AppData"), nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
