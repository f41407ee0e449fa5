// Package paths provides cross-platform path resolution for gamesl.
//
// It covers two concerns:
//
//   - Where gamesl keeps its own files. These follow the XDG Base Directory
//     Specification through github.com/adrg/xdg: settings live under
//     <ConfigHome>/game-sl, backups and the game library under
//     <DataHome>/game-sl.
//   - Where a game keeps its save data. Save locations are stored as
//     templates with placeholders that [Resolver] expands to a concrete,
//     absolute directory.
//
// # Work Directory Layout
//
//	<DataHome>/game-sl/
//	├── library.json
//	├── backup/         user backups ({Game}-Backup-YYYYMMDD-HHMMSS.zip + .txt)
//	└── extra-backup/   protective snapshots taken before a restore
//
// # Template Placeholders
//
//	| Placeholder | Expands to                                             |
//	|-------------|--------------------------------------------------------|
//	| {Steam}     | Steam install directory (registry on Windows)          |
//	| {SteamUID}  | numeric Steam user id supplied by the caller           |
//	| {AppData}   | parent of %APPDATA%, else <home>/AppData               |
//	| {User}      | the user's home directory                              |
//	| {Home}      | the user's home directory                              |
//
// A template that needs {SteamUID} fails with [ErrMissingSteamUID] when no
// user id is supplied.
package paths
