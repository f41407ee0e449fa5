package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/Moushudyx/game-sl/cmd"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
)

var (
	genDocDir string
	genDocMan bool
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page documentation for the CLI",
	Hidden: true,
	RunE: func(c *cobra.Command, _ []string) error {
		return runGenDoc(genDocDir, genDocMan, c.OutOrStdout())
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().BoolVar(&genDocMan, "man", false, "Generate man pages instead of Markdown")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(dir string, man bool, w io.Writer) error {
	if dir == "" {
		return errors.InvalidInputf("output directory is required")
	}
	if err := paths.EnsureDir(dir, 0); err != nil {
		return err
	}

	if man {
		header := &doc.GenManHeader{
			Title:   "GAMESL",
			Section: "1",
			Source:  "gamesl " + cmd.Version,
		}
		if err := doc.GenManTree(rootCmd, header, dir); err != nil {
			return errors.Wrap(err, "generating man pages")
		}
	} else {
		if err := doc.GenMarkdownTreeCustom(rootCmd, dir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	}

	fmt.Fprintf(w, "Documentation generated in %s\n", dir)
	return nil
}

// filePrepender adds front matter naming the command, e.g.
// gamesl_remark_set.md gets the title "gamesl remark set".
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/cli/" + strings.ToLower(base) + "/"
}
