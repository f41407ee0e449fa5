// Package backup archives game save directories and restores them.
//
// Each backup is a single zip file in the backup directory, named after the
// game and the local time it was taken:
//
//	<backup dir>/
//	├── Celeste-Backup-20240102-030405.zip
//	├── Celeste-Backup-20240102-030405.txt   optional remark
//	└── Hollow Knight-Backup-20231224-201500.zip
//
// Game names are passed through [Sanitize] before they become file names.
// [DecodeTimestamp] recovers the time from a name; listing falls back to the
// file's modification time when the name carries no usable stamp.
//
// # Creating Backups
//
//	mgr := backup.NewManager(
//	    backup.WithResolver(paths.NewResolver()),
//	    backup.WithStore(config.NewLibraryStore("")),
//	)
//	res, err := mgr.Backup(backup.BackupRequest{
//	    Name:         "Celeste",
//	    PathTemplate: "{AppData}/Local/Celeste/Saves",
//	    Remark:       "before chapter 9",
//	})
//
// Archives are written to a hidden partial file and renamed when complete.
// An existing archive is never overwritten.
//
// # Restoring
//
// [Manager.Restore] runs a fixed sequence of stages:
//
//	CHECK          validate the archive and resolve the save directory
//	EXTRA_BACKUP   snapshot the current saves into the extra-backup directory
//	DELETE         move the current save directory to the trash
//	EXTRACT        unpack the archive; on failure roll back to the snapshot
//	UPDATE_CONFIG  record the restored save time in the library
//
// A failure at any stage is returned as a [*RestoreError] whose message is
// prefixed with the stage code, e.g. "[EXTRACT] extracting ...: ...".
// The source archive is never modified.
package backup
