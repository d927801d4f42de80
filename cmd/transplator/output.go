package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"transplator/internal/diag"
	"transplator/internal/diagfmt"
	"transplator/internal/driver"
	"transplator/internal/observ"
	"transplator/internal/source"
)

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string, maxDiagnostics int) error {
	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              maxDiagnostics,
			IncludeNotes:     true,
		})
	case "short":
		diagfmt.Short(os.Stderr, bag, fs)
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   1,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
			Max:       maxDiagnostics,
		})
	}
	return nil
}

func printGenerateSummary(out io.Writer, res *driver.GenerateResult, dryRun bool) {
	var written, unchanged, cached, failed int
	for _, it := range res.Items {
		switch {
		case it.Bag.HasErrors():
			failed++
		case it.Written:
			written++
		case it.Unit != nil && !it.Unit.Empty():
			unchanged++
		}
		if it.Cached {
			cached++
		}
	}
	verb := "written"
	if dryRun {
		verb = "checked"
		written, unchanged = unchanged, 0
	}
	fmt.Fprintf(out, "%d templates: %d %s, %d unchanged, %d cached, %d failed\n",
		len(res.Items), written, verb, unchanged, cached, failed)
	if dryRun {
		return
	}
	for _, it := range res.Items {
		if it.Written {
			fmt.Fprintf(out, "  %s -> %s\n", it.Template.Rel, relToWD(it.OutPath))
		}
	}
}

func printTimings(out io.Writer, timer *observ.Timer) {
	report := timer.Report()
	for _, phase := range report.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "%-10s %8.1f ms  (%s)\n", phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "%-10s %8.1f ms\n", phase.Name, phase.DurationMS)
	}
	fmt.Fprintf(out, "%-10s %8.1f ms\n", "total", report.TotalMS)
}

func relToWD(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}
