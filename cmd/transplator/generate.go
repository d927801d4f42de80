package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"transplator/internal/driver"
	"transplator/internal/project"
	"transplator/internal/source"
)

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate C# classes for every template of a project",
	Long: `Generate finds transplator.toml (or transplator.cue) starting at [dir] and
walking up, compiles every template it selects and writes one <name>.cs per
template into the output directory. Templates with errors are reported and
skipped; the rest are still generated. Without a manifest, [dir] itself is
scanned with default settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Compile every template without writing output",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, true)
	},
}

func init() {
	generateCmd.Flags().String("out", "", "output directory (overrides the manifest)")
	generateCmd.Flags().Bool("dry-run", false, "compile templates but do not write files")
	generateCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	for _, c := range []*cobra.Command{generateCmd, checkCmd} {
		c.Flags().Bool("no-cache", false, "disable the on-disk cache of generated units")
		c.Flags().Bool("clear-cache", false, "drop cached units before generating")
		c.Flags().Int("jobs", 0, "max parallel workers (0 = manifest value or GOMAXPROCS)")
		c.Flags().String("encoding", "", "output encoding (utf-8|utf-8-bom|utf-16le|utf-16be)")
		c.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	}
}

func runGenerate(cmd *cobra.Command, args []string, check bool) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := validateDiagFormat(format); err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", jobs)
	}
	encName, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return fmt.Errorf("failed to get encoding flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	dryRun, outDir, uiValue := check, "", "off"
	if !check {
		if dryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
			return fmt.Errorf("failed to get dry-run flag: %w", err)
		}
		if outDir, err = cmd.Flags().GetString("out"); err != nil {
			return fmt.Errorf("failed to get out flag: %w", err)
		}
		uiValue, _ = cmd.Flags().GetString("ui")
	}
	view, err := pickProgressView(uiValue, quiet, format, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	logger.Debug("progress view", "view", view.String())

	manifest, err := loadProject(dir)
	if err != nil {
		return err
	}

	req := driver.GenerateRequest{
		Manifest:       manifest,
		DryRun:         dryRun,
		NoCache:        noCache,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Logger:         logger,
	}
	if outDir != "" {
		if req.OutDir, err = filepath.Abs(outDir); err != nil {
			return err
		}
	}
	if encName != "" {
		enc, encErr := source.ParseEncoding(encName)
		if encErr != nil {
			return encErr
		}
		req.Encoding = &enc
	}
	if !noCache || clearCache {
		cache, cacheErr := driver.OpenDiskCache("transplator")
		if cacheErr != nil {
			logger.Warn("disk cache unavailable", "err", cacheErr)
		}
		if clearCache && cache != nil {
			if dropErr := cache.DropAll(); dropErr != nil {
				return fmt.Errorf("failed to clear cache %s: %w", cache.Dir(), dropErr)
			}
			logger.Info("cache cleared", "dir", cache.Dir())
		}
		if !noCache {
			req.Cache = cache
		}
	}
	if view == viewLog {
		req.Progress = logProgress(logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var res *driver.GenerateResult
	if view == viewTUI {
		res, err = runGenerateWithUI(ctx, "generating "+manifest.TemplateRoot(), req)
	} else {
		res, err = driver.Generate(ctx, req)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := printDiagnostics(cmd, res.Bag, res.FileSet, format, maxDiagnostics); err != nil {
		return err
	}
	if !quiet && format == "pretty" {
		printGenerateSummary(cmd.OutOrStdout(), res, check || dryRun)
	}
	if showTimings {
		printTimings(cmd.ErrOrStderr(), res.Timer)
	}

	if res.HasErrors() {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

// loadProject finds the manifest governing dir, falling back to an
// implicit project rooted at dir.
func loadProject(dir string) (*project.Manifest, error) {
	manifest, err := project.Discover(dir)
	if errors.Is(err, project.ErrNoManifest) {
		logger.Info("no manifest found, scanning directory", "dir", dir)
		return project.Implicit(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	logger.Debug("manifest loaded", "path", manifest.Path)
	return manifest, nil
}

func validateDiagFormat(format string) error {
	switch strings.ToLower(format) {
	case "pretty", "json", "short":
		return nil
	}
	return fmt.Errorf("unknown format %q (expected pretty|json|short)", format)
}
