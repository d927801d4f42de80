package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"transplator/internal/logs"
	"transplator/internal/prof"
	"transplator/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "transplator",
	Short: "Template to C# source generator",
	Long: `transplator compiles text templates with {% ... %} tags into C# partial
classes that render them through WriteText/WriteValue.`,
	PersistentPreRunE: setupRoot,
}

// profiling is stopped by main even when the command fails.
var profiling *prof.Session

// logger is configured from the persistent flags before any command runs.
var logger = logs.Discard()

// errDiagnostics is returned after diagnostics were printed; main exits 1
// without printing it again.
var errDiagnostics = errors.New("diagnostics reported errors")

func init() {
	rootCmd.Version = version.Summary("transplator")
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Добавляем команды
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().Bool("log-journal", false, "also send logs to the systemd journal")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

// main executes the root command; any error exits with status code 1.
func main() {
	err := rootCmd.Execute()
	if stopErr := profiling.Stop(); stopErr != nil {
		logger.Warn("profiling stop failed", "err", stopErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	level, _ := flags.GetString("log-level")
	format, _ := flags.GetString("log-format")
	journal, _ := flags.GetBool("log-journal")
	l, _, err := logs.New(logs.Options{
		Writer:  os.Stderr,
		Level:   level,
		Format:  format,
		Journal: journal,
	})
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)

	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	if opts.Enabled() {
		if profiling, err = prof.Start(opts); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}
	return nil
}

// useColor resolves --color for the given output stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
