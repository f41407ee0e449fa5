//go:build windows

package paths

import (
	"golang.org/x/sys/windows/registry"

	"github.com/Moushudyx/game-sl/internal/errors"
)

const steamRegistryKey = `Software\Valve\Steam`

// lookupSteamDir reads SteamPath from HKCU\Software\Valve\Steam.
func lookupSteamDir() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, steamRegistryKey, registry.QUERY_VALUE)
	if err != nil {
		return "", errors.Wrapf(ErrSteamNotFound, "opening registry key %s: %v", steamRegistryKey, err)
	}
	defer key.Close()

	dir, _, err := key.GetStringValue("SteamPath")
	if err != nil {
		return "", errors.Wrapf(ErrSteamNotFound, "reading SteamPath: %v", err)
	}
	if dir == "" {
		return "", ErrSteamNotFound
	}
	return dir, nil
}
