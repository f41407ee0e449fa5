//go:build !windows

package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// steamCandidates lists the usual Steam roots relative to the home directory.
func steamCandidates() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			filepath.Join("Library", "Application Support", "Steam"),
		}
	}
	return []string{
		filepath.Join(".steam", "steam"),
		filepath.Join(".local", "share", "Steam"),
		filepath.Join(".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
	}
}

// lookupSteamDir returns the first existing Steam root under the home directory.
func lookupSteamDir() (string, error) {
	home, err := ResolveHome()
	if err != nil {
		return "", ErrSteamNotFound
	}
	for _, rel := range steamCandidates() {
		dir := filepath.Join(home, rel)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", ErrSteamNotFound
}
