package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by the composition root.
var (
	reportService   driving.ReportService
	exportService   driving.ExportService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// Global flags.
var (
	verbose   bool
	dataDir   string
	configDir string
	ephemeral bool
)

// Options are the global flags the composition root needs to build services.
type Options struct {
	DataDir   string
	ConfigDir string
	Ephemeral bool
}

// Services holds the driving ports the commands call.
type Services struct {
	Report   driving.ReportService
	Export   driving.ExportService
	Settings driving.SettingsService
	Watch    driving.WatchService
}

// Bootstrap builds services from the parsed global flags. The returned
// cleanup function is called after the command finishes.
type Bootstrap func(opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "photoreport",
	Short: "Build paginated PDF photo reports",
	Long: `photoreport groups photos by filename prefix and lays them out as a
paginated PDF with a cover page and one header bar per group.

Photos named CR5681.jpg, cr5681-1.png and CR5681_02.jpeg all land in
group CR5681. Groups are ordered by the number in their key.

Use "photoreport export" for a one-off PDF from a folder, or the
"report" commands to keep reports in the local database.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "database directory (default ~/.photoreport/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.photoreport)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep reports in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	reportService = s.Report
	exportService = s.Export
	settingsService = s.Settings
	watchService = s.Watch
}

// Execute runs the root command and releases whatever the bootstrap opened.
// Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	services, done, err := bootstrap(Options{
		DataDir:   dataDir,
		ConfigDir: configDir,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func teardown() error {
	if cleanup == nil {
		return nil
	}
	done := cleanup
	cleanup = nil
	return done()
}
