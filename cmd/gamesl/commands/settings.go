package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Moushudyx/game-sl/internal/errors"
)

var settingsFormat string

func init() {
	settingsShowCmd.Flags().StringVarP(&settingsFormat, "format", "f", "yaml", "output format: yaml, json, toml")

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage library settings",
	Long: `Manage the settings stored in the game library.

Known settings:
  restoreExtraBackup  archive the save directory before a restore (default true)
  useRelativeTime     show backup times relative to now (default true)`,
	Example: `  # Skip protective backups
  gamesl settings set restoreExtraBackup false

  # Show everything as TOML
  gamesl settings show --format toml

  See Also: gamesl config show`,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a library setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsGet(cmd.Context(), args[0], cmd.OutOrStdout())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a library setting",
	Long: `Set a library setting. "true" and "false" are stored as booleans and
numbers as numbers; anything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsSet(cmd.Context(), args[0], args[1], statusWriter(cmd))
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all library settings",
	RunE:  runSettingsShow,
}

func runSettingsGet(ctx context.Context, key string, w io.Writer) error {
	a := newApp(ctx)
	lib, err := a.store.Read()
	if err != nil {
		return err
	}

	v, ok := lib.Setting(key)
	if !ok {
		fmt.Fprintln(w, "not set")
		return nil
	}
	fmt.Fprintln(w, v)
	return nil
}

func runSettingsSet(ctx context.Context, key, raw string, w io.Writer) error {
	a := newApp(ctx)
	value := parseSettingValue(raw)
	if _, err := a.store.UpdateSetting(key, value); err != nil {
		return err
	}
	fmt.Fprintf(w, "Set %s = %v\n", key, value)
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	return runSettingsShowWithWriter(cmd.Context(), settingsFormat, cmd.OutOrStdout())
}

func runSettingsShowWithWriter(ctx context.Context, format string, w io.Writer) error {
	a := newApp(ctx)
	lib, err := a.store.Read()
	if err != nil {
		return err
	}
	return writeFormatted(w, format, lib.Settings)
}

// parseSettingValue turns command-line text into a typed setting value.
func parseSettingValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// writeFormatted encodes v as yaml, json or toml.
func writeFormatted(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "":
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = toml.Marshal(v)
	default:
		return errors.InvalidInputf("unknown format %q (valid: yaml, json, toml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", format)
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}
