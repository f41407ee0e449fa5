// Package commands implements the CLI commands for gamesl.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/cmd"
	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// loadedConfig is the configuration read during initialization.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config, else text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to the settings file (default: ~/.config/game-sl/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("gamesl version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "gamesl",
	Short: "Back up and restore game save data",
	Long: `gamesl backs up game save directories into timestamped zip archives
and restores them on demand.

Games are registered in a library with a save-path template such as
"{Home}/saves/Celeste" or "{Steam}/userdata/{SteamUID}/12345". Every
backup is a single archive named after the game and the moment it was
taken. Before a restore replaces a save directory, gamesl snapshots the
current contents into a protective "extra backup" (configurable) and
moves the directory to the trash.`,
	Example: `  # Register a game
  gamesl game add Celeste "{Home}/.local/share/Celeste/Saves"

  # Back it up with a note
  gamesl backup Celeste --remark "before chapter 9"

  # List and restore
  gamesl list Celeste
  gamesl restore Celeste

  See Also: gamesl config init, gamesl settings show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	level := slog.LevelError
	if !quiet {
		v := verbosity
		if v == 0 {
			v = logging.VerbosityFromEnv(os.LookupEnv)
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{
		Level:  level,
		Format: effectiveLogFormat(),
		Output: cmd.ErrOrStderr(),
	}

	closeLogFile()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.IOf(err, "opening log file %s", logFile), "Check the --log-file path")
		}
		logFileHandle = f
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// logFileHandle is the open --log-file, if any.
var logFileHandle *os.File

func closeLogFile() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
}

// effectiveLogFormat returns the --log-format flag, falling back to the
// settings file.
func effectiveLogFormat() logging.Format {
	if logFormat != "" {
		return logging.Format(logFormat)
	}
	if loadedConfig != nil && loadedConfig.LogFormat != "" {
		return logging.Format(loadedConfig.LogFormat)
	}
	return logging.FormatText
}

// checkConfig reports a settings file that failed to load. Commands that
// repair or locate the file are exempt.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "init", "path":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer closeLogFile()
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
