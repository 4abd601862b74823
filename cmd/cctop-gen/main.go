package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"cctop-gen/internal/app"
	"cctop-gen/internal/config"
	"cctop-gen/internal/database"
	"cctop-gen/internal/export"
	"cctop-gen/internal/gen"
	"cctop-gen/internal/termio"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp builds a fully wired App honoring the global --db-path flag. The
// caller must defer a.Close().
func newApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, _ := cmd.Flags().GetString("db-path")

	a, err := app.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "cctop-gen",
	Short: "Generate synthetic file-activity data for cctop",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["workspace_root"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Workspace: %s\n", cfg.WorkspaceRoot)
		fmt.Printf("Database:  %s\n", cfg.Database.Path)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, found, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if !found {
			fmt.Printf("No config file at %s (using defaults)\n\n", defaults["config_path"])
			cfg = config.NewConfig(defaults["workspace_root"])
		} else {
			fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		}

		fmt.Printf("Workspace:       %s\n", cfg.WorkspaceRoot)
		fmt.Printf("Database:        %s (%s)\n", cfg.Database.Path, cfg.Database.Type)
		fmt.Printf("Files:           %d\n", cfg.Generator.Files)
		fmt.Printf("Days:            %d\n", cfg.Generator.Days)
		fmt.Printf("Events per file: %d\n", cfg.Generator.EventsPerFile)
		fmt.Printf("Live interval:   %.1fs\n", cfg.Live.Interval)
		fmt.Printf("Vault:           %s\n", cfg.Vault.Type)
		return nil
	},
}

// generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Bulk-generate historical activity data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p := gen.Params{
			Files:         a.Config().Generator.Files,
			Days:          a.Config().Generator.Days,
			EventsPerFile: a.Config().Generator.EventsPerFile,
		}
		if cmd.Flags().Changed("files") {
			p.Files, _ = cmd.Flags().GetInt("files")
		}
		if cmd.Flags().Changed("days") {
			p.Days, _ = cmd.Flags().GetInt("days")
		}
		if cmd.Flags().Changed("events-per-file") {
			p.EventsPerFile, _ = cmd.Flags().GetInt("events-per-file")
		}

		count, err := a.Generate(p)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		fmt.Printf("Generated %d events for %d files over %d days\n\n", count, p.Files, p.Days)

		s, err := a.Stats()
		if err != nil {
			return err
		}
		printStats(s)

		samplePath, _ := cmd.Flags().GetString("export-sample")
		if samplePath != "" {
			if err := a.ExportSample(samplePath, export.DefaultLimit); err != nil {
				return fmt.Errorf("exporting sample: %w", err)
			}
			fmt.Printf("Sample exported to %s\n", samplePath)
		}
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Stats()
		if err != nil {
			return err
		}

		printStats(s)
		return nil
	},
}

func printStats(s *database.Stats) {
	fmt.Printf("Events:       %d\n", s.EventsCount)
	fmt.Printf("Files:        %d\n", s.FilesCount)
	fmt.Printf("Measurements: %d\n", s.MeasurementsCount)
	fmt.Printf("Event types:  %d\n", s.EventTypesCount)
	fmt.Printf("Aggregates:   %d\n", s.AggregatesCount)

	if len(s.EventDistribution) > 0 {
		fmt.Println("\nEvent distribution:")
		for _, et := range []gen.EventType{gen.Find, gen.Create, gen.Modify, gen.Delete, gen.Move, gen.Restore} {
			if n, ok := s.EventDistribution[et.Code()]; ok {
				fmt.Printf("  %-8s %d\n", et.Code(), n)
			}
		}
	}
	if s.TimeRange != nil {
		fmt.Printf("\nTime range: %s .. %s\n", s.TimeRange.Start, s.TimeRange.End)
	}
	if s.FileMetrics != nil {
		fmt.Printf("\nFile metrics:\n")
		fmt.Printf("  Unique files: %d\n", s.FileMetrics.UniqueFiles)
		fmt.Printf("  Avg size:     %.2f\n", s.FileMetrics.AvgSize)
		fmt.Printf("  Max size:     %d\n", s.FileMetrics.MaxSize)
		fmt.Printf("  Avg lines:    %.2f\n", s.FileMetrics.AvgLines)
		fmt.Printf("  Max lines:    %d\n", s.FileMetrics.MaxLines)
	}
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON sample of recent events and statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		absOut, err := filepath.Abs(out)
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}

		if err := a.ExportSample(absOut, limit); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported to %s\n", absOut)
		return nil
	},
}

// live command
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Generate events continuously until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetFloat64("interval")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if termio.IsInteractive() {
			fmt.Println("Live mode. Press Ctrl-C or type q to stop.")
			go termio.ListenForQuit(os.Stdin, stop)
		} else {
			fmt.Println("Live mode. Press Ctrl-C to stop.")
		}

		if err := a.Live(ctx, interval); err != nil {
			return fmt.Errorf("live mode failed: %w", err)
		}

		fmt.Println("Stopped.")
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the database to the configured vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Snapshot(cmd.Context(), name); err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}

		fmt.Println("Snapshot complete.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db-path", "", "Database file path (overrides config)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	generateCmd.Flags().Int("files", 100, "Number of files to simulate")
	generateCmd.Flags().Int("days", 30, "Number of days of history")
	generateCmd.Flags().Int("events-per-file", 10, "Events per file")
	generateCmd.Flags().String("export-sample", "", "Also write a JSON sample to this path")
	rootCmd.AddCommand(generateCmd)

	rootCmd.AddCommand(statsCmd)

	exportCmd.Flags().String("out", "cctop-sample.json", "Output file path")
	exportCmd.Flags().IntP("limit", "n", export.DefaultLimit, "Maximum number of recent events")
	rootCmd.AddCommand(exportCmd)

	liveCmd.Flags().Float64("interval", 0, "Mean seconds between events (0 uses config)")
	rootCmd.AddCommand(liveCmd)

	snapshotCmd.Flags().String("name", "", "Snapshot object name (default: timestamped)")
	rootCmd.AddCommand(snapshotCmd)
}
