package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys are attribute-key substrings whose values are masked.
// Matching is case-insensitive.
var sensitiveKeys = []string{
	"steam_uid",
	"user_context",
	"token",
	"secret",
	"password",
}

// steamUserDir matches the numeric user directory under Steam's userdata.
var steamUserDir = regexp.MustCompile(`(userdata[/\\])(\d+)`)

// ShouldMask reports whether values logged under key should be masked.
func ShouldMask(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskSteamPath masks the Steam user ID in paths such as
// ".../Steam/userdata/12345678/504230/remote".
func MaskSteamPath(path string) string {
	return steamUserDir.ReplaceAllStringFunc(path, func(m string) string {
		parts := steamUserDir.FindStringSubmatch(m)
		return parts[1] + MaskValue(parts[2])
	})
}

// RedactAttr is a [slog.HandlerOptions] ReplaceAttr function. It masks
// values under sensitive keys and Steam user IDs embedded in path values.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if ShouldMask(a.Key) {
		return slog.String(a.Key, MaskValue(a.Value.String()))
	}
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); steamUserDir.MatchString(s) {
			return slog.String(a.Key, MaskSteamPath(s))
		}
	}
	return a
}

// chainReplace runs first and then RedactAttr, so a caller's ReplaceAttr
// cannot leak unmasked values.
func chainReplace(first func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	if first == nil {
		return RedactAttr
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		return RedactAttr(groups, first(groups, a))
	}
}
