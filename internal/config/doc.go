// Package config manages the two documents gamesl persists.
//
// # Tool Settings
//
// The tool settings file lives at <ConfigHome>/game-sl/config.yaml and is
// read through Viper. Every key can be overridden with a GAMESL_ prefixed
// environment variable (GAMESL_BACKUP_DIR, GAMESL_TRASH_DIR, ...):
//
//	version: 1
//	backup_dir: /home/me/.local/share/game-sl/backup
//	extra_backup_dir: /home/me/.local/share/game-sl/extra-backup
//	library_path: /home/me/.local/share/game-sl/library.json
//	trash_dir: ""        # empty uses the system recycle bin
//	log_format: text
//
// Call [Init] once at startup, then [Load]. Loaded settings are validated
// with [Validate]; path problems are reported as [*PathError].
//
// # Game Library
//
// The game library is a JSON document managed by [LibraryStore]:
//
//	{
//	  "settings": {"restoreExtraBackup": true, "useRelativeTime": true},
//	  "games": [{"name": "Celeste", "path": "{AppData}/Local/Celeste", "icon": "", "lastSave": 1704164645000}],
//	  "version": 1
//	}
//
// The file is created from an embedded default on first read. Missing
// settings are filled in and written back. All writes are atomic.
package config
