// Package logging configures gamesl's log/slog output.
//
// Log records go to stderr and never mix with command output on stdout.
// The level follows the -v flags (see [LevelFromVerbosity]):
//
//	gamesl restore Celeste        warnings and errors
//	gamesl -v restore Celeste     + stage progress (protective backup, trash, extract)
//	gamesl -vv restore Celeste    + debug detail (skipped entries, resolved paths)
//	gamesl -vvv backup Celeste    + one trace line per archive entry
//
// GAMESL_DEBUG=1 behaves like -vv and GAMESL_DEBUG=2 like -vvv when no -v is
// given. --log-format json switches stderr to JSON, and --log-file appends
// the same records as JSON to a file, see [Config.File] and [Tee].
//
// Values logged under keys like "steam_uid", and Steam user IDs inside
// ".../userdata/<id>/..." paths, are masked in every format ([RedactAttr]).
//
// Packages take a *slog.Logger rather than using the global one; commands
// get theirs with [FromContext]. Tests use [ForTest].
package logging
