package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/backup"
	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/logging"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/internal/trash"
)

// Output styles. fatih/color disables them when stdout is not a terminal.
var (
	styleHeader  = color.New(color.FgCyan, color.Bold).SprintFunc()
	styleSuccess = color.New(color.FgGreen).SprintFunc()
	styleName    = color.New(color.FgGreen).SprintFunc()
	styleWarn    = color.New(color.FgYellow).SprintFunc()
	styleError   = color.New(color.FgRed).SprintFunc()
	styleMuted   = color.New(color.FgHiBlack).SprintFunc()
)

// timeLayout is how absolute archive times are printed.
const timeLayout = "2006-01-02 15:04:05"

// newResolver builds the path resolver. Tests replace it to pin {Home}.
var newResolver = func() *paths.Resolver {
	return paths.NewResolver()
}

// app bundles the collaborators a command needs.
type app struct {
	cfg      *config.Config
	store    *config.LibraryStore
	resolver *paths.Resolver
	manager  *backup.Manager
}

// currentConfig returns the loaded settings, or defaults when loading was
// skipped.
func currentConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return config.Default()
}

// newApp wires the backup manager from the current settings.
func newApp(ctx context.Context) *app {
	cfg := currentConfig()
	store := config.NewLibraryStore(cfg.LibraryPath)
	resolver := newResolver()

	var trasher backup.Trasher = trash.System{}
	if cfg.TrashDir != "" {
		trasher = trash.NewDir(cfg.TrashDir)
	}

	mgr := backup.NewManager(
		backup.WithBackupDir(cfg.BackupDir),
		backup.WithExtraBackupDir(cfg.ExtraBackupDir),
		backup.WithResolver(resolver),
		backup.WithStore(store),
		backup.WithTrash(trasher),
		backup.WithLogger(logging.FromContext(ctx)),
	)

	return &app{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		manager:  mgr,
	}
}

// archivePath maps a restore argument to a path: bare file names live in
// the backup directory, anything else is taken as given.
func (a *app) archivePath(arg string) string {
	if filepath.Base(arg) == arg {
		return a.manager.ArchivePath(arg)
	}
	return arg
}

// formatMillis renders an epoch-millisecond time, "-" when absent.
func formatMillis(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return time.UnixMilli(*ms).Local().Format(timeLayout)
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	return logging.IsTTY(os.Stdin)
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// statusWriter returns where confirmations go: stdout, or nowhere with --quiet.
func statusWriter(cmd *cobra.Command) io.Writer {
	if quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for line := range strings.Lines(s) {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
