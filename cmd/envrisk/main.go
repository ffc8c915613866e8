package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mvetter/envrisk/internal/analyzer"
	"github.com/mvetter/envrisk/internal/archive"
	"github.com/mvetter/envrisk/internal/config"
	"github.com/mvetter/envrisk/internal/envfile"
	"github.com/mvetter/envrisk/internal/extractor"
	"github.com/mvetter/envrisk/internal/output"
	"github.com/mvetter/envrisk/internal/scanner"
	"github.com/mvetter/envrisk/internal/watcher"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "envrisk",
		Short: "Scan a source tree for environment variable usage and exposure risks",
		Long:  "A CLI tool that scans JavaScript/TypeScript codebases for environment variable references, reconciles them with declared variables, and flags secret-like names exposed to browser code.",
	}

	scanCmd = &cobra.Command{
		Use:   "scan <target> [env-file]",
		Short: "Scan a directory or zip archive",
		Long:  "Recursively scan a directory (or a .zip archive, extracted to a temporary location) for environment variable references. An optional declarations file enables missing/unused reconciliation.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runScan,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Create a .envrisk.config file in the current directory",
		Long:  "Creates a .envrisk.config file with default configuration in the current directory.",
		RunE:  runInitConfig,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Flags
	silent       bool
	skipUnused   bool
	noHeader     bool
	strict       bool
	watch        bool
	includeGlobs []string
	excludeGlobs []string

	// Exit status for the whole process; --strict raises it when findings exist
	exitCode int
)

func init() {
	scanCmd.Flags().BoolVar(&silent, "silent", false, "Suppress console output (artifacts are still written)")
	scanCmd.Flags().BoolVar(&skipUnused, "skip-unused", false, "Skip reporting unused variables")
	scanCmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip printing the header")
	scanCmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when any missing, risky or unused variable is found")
	scanCmd.Flags().BoolVar(&watch, "watch", false, "Re-run the scan when files change (directory targets only)")
	scanCmd.Flags().StringSliceVar(&includeGlobs, "include", []string{}, "Glob patterns to include")
	scanCmd.Flags().StringSliceVar(&excludeGlobs, "exclude", []string{}, "Glob patterns to exclude")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	absTarget, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Stat(absTarget); os.IsNotExist(err) {
		return fmt.Errorf("target does not exist: %s", absTarget)
	}

	if !noHeader && !silent {
		printHeader()
	}

	root := absTarget
	if archive.IsArchive(absTarget) {
		if watch {
			return fmt.Errorf("--watch is not supported for archive targets")
		}
		extracted, cleanup, err := archive.Extract(absTarget)
		if err != nil {
			return fmt.Errorf("failed to extract archive: %w", err)
		}
		// Removes the temp dir on every exit path out of this function
		defer cleanup()
		root = extracted
	}

	declared := map[string]string{}
	if len(args) > 1 {
		declared, err = envfile.Load(args[1])
		if err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		if !silent {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .envrisk.config: %v\n", err)
		}
		cfg = &config.Config{}
	}

	fileScanner := scanner.NewScanner()
	if len(includeGlobs) > 0 {
		if err := fileScanner.SetIncludeGlobs(includeGlobs); err != nil {
			return err
		}
	}
	if len(excludeGlobs) > 0 {
		if err := fileScanner.SetExcludeGlobs(excludeGlobs); err != nil {
			return err
		}
	}
	if len(cfg.Ignores.Folders) > 0 {
		fileScanner.AddExcludeDirs(cfg.Ignores.Folders)
	}

	runOnce := func() (analyzer.ScanResult, error) {
		if !silent {
			fmt.Fprintf(os.Stderr, "Scanning %s...\n", root)
		}
		files, err := fileScanner.Scan(root)
		if err != nil {
			return analyzer.ScanResult{}, fmt.Errorf("failed to scan directory: %w", err)
		}

		usages, scanned := extractor.Extract(files, silent)
		result := analyzer.Analyze(usages, declared, cfg)
		result.FilesScanned = scanned

		if err := writeArtifacts(result, args[0]); err != nil {
			return result, err
		}

		if !silent {
			fmt.Printf("Wrote %s, %s and %s\n\n", output.ReportJSONName, output.ReportHTMLName, output.EnvTemplateName)
			output.PrintSummary(result, skipUnused)
		}
		return result, nil
	}

	result, err := runOnce()
	if err != nil {
		return err
	}

	if watch {
		w, err := watcher.New(root, fileScanner.ExcludedDirs(), 500*time.Millisecond, func() {
			if _, err := runOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Close()

		if !silent {
			fmt.Fprintln(os.Stderr, "Watching for changes, press Ctrl-C to stop...")
		}
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	}

	if strict && analyzer.HasIssues(result, skipUnused) {
		exitCode = 1
	}
	return nil
}

// writeArtifacts writes the three report files to the current working
// directory, overwriting previous runs
func writeArtifacts(result analyzer.ScanResult, target string) error {
	report := output.BuildReport(result, target)
	if err := output.WriteJSON(report, output.ReportJSONName); err != nil {
		return err
	}
	if err := output.WriteHTML(result, target, output.ReportHTMLName); err != nil {
		return err
	}
	return output.WriteEnvTemplate(result.Usages, output.EnvTemplateName)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	configPath := ".envrisk.config"

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf(".envrisk.config already exists in the current directory")
	}

	configContent := `# .envrisk.config
# Configuration file for envrisk

ignores:
  # Variables provided in custom ways (secret managers, platform dashboards)
  # These will not be reported as missing
  missing:
    # - CUSTOM_API_KEY
    # - EXTERNAL_SERVICE_TOKEN

  # Additional folders to skip when scanning
  folders:
    # - storybook-static
    # - coverage
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to create .envrisk.config: %w", err)
	}

	fmt.Printf("Created .envrisk.config in the current directory\n")
	return nil
}

func printHeader() {
	header := `  ___ _ ____   ___ __ (_)___ | | __
 / _ \ '_ \ \ / / '__|| / __|| |/ /
|  __/ | | \ V /| |   | \__ \|   <
 \___|_| |_|\_/ |_|   |_|___/|_|\_\

`
	fmt.Print(header)
	fmt.Printf("Version: %s\n\n", Version)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
