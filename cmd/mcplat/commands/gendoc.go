package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/paths"
)

// docBaseURL prefixes cross-links between generated pages.
var docBaseURL string

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.New("output directory is required")
		}

		if err := paths.EnsureDir(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler(docBaseURL))
		if err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().StringVar(&docBaseURL, "base-url", "/docs/reference/",
		"URL prefix for links between pages")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender adds Hugo front matter to each page.
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// mcplat_host_show.md -> mcplat host show
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for the %s command"
draft: false
toc: true
---
`, title, title)
}

// linkHandler rewrites mcplat_detect.md to <base>mcplat_detect/.
func linkHandler(base string) func(string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return func(name string) string {
		page := strings.TrimSuffix(name, filepath.Ext(name))
		return base + strings.ToLower(page) + "/"
	}
}
