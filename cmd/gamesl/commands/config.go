package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/editor"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
)

var (
	configInitForce  bool
	configShowFormat string
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite existing configuration")
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml", "output format: yaml, json, toml")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gamesl configuration",
	Long: `Manage the gamesl settings file, ~/.config/game-sl/config.yaml.

The file chooses where backups, protective extra backups and the game
library live, and whether restores trash into a private directory instead
of the system recycle bin. Every key can be overridden with a GAMESL_
environment variable, e.g. GAMESL_BACKUP_DIR.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Write the default configuration
  gamesl config init

  # Show the effective configuration
  gamesl config show

See Also: gamesl settings`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInit(settingsPath(), cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), settingsPath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		path := settingsPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.NewConfigError(errors.NotFoundf("config file not found at %s", path))
		}
		return editor.Open(path)
	},
}

// settingsPath is the file the configuration commands operate on.
func settingsPath() string {
	if configFile != "" {
		return configFile
	}
	if used := config.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

func runConfigInit(path string, w io.Writer) error {
	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Fprintf(w, "Configuration already exists at %s\n", path)
		fmt.Fprintln(w, "Use --force to overwrite")
		return nil
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Wrote %s\n", styleSuccess("✓"), path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	return writeFormatted(cmd.OutOrStdout(), configShowFormat, currentConfig())
}
