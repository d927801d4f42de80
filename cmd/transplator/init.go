package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"transplator/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new transplator project",
	Long: `Initialize a project by creating a manifest (transplator.toml) and an
example template (templates/Hello.tpl). If [path] is omitted, initializes the
current directory; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing manifest and example template")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	res, err := project.Init(target, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized transplator project in %s\n", relToWD(filepath.Dir(res.Manifest)))
	fmt.Fprintf(out, "  - %s\n", project.ManifestTOML)
	if res.Template != "" {
		fmt.Fprintf(out, "  - %s\n", relTo(filepath.Dir(res.Manifest), res.Template))
	}
	return nil
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
