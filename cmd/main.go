package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/netsimlab/routesim/internal/config"
	"github.com/netsimlab/routesim/internal/journal"
	"github.com/netsimlab/routesim/internal/logger"
	"github.com/netsimlab/routesim/internal/router"
	"github.com/netsimlab/routesim/internal/shell"
	"github.com/netsimlab/routesim/internal/trace"
)

var (
	version = "1.0.0"

	configFile  string
	activityLog string
	silentMode  bool
	verboseMode bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routesim",
		Short: "Interactive IP router simulator",
		Long:  `An interactive simulator of a single IP router: maintains a static routing table and resolves simulated packets with longest-prefix-match forwarding.`,
		Run:   runShell,
	}

	traceCmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Replay a packet trace file",
		Long:  `Replay a packet trace file (one "source destination protocol" per line) against the routing table and report forwarding totals.`,
		Args:  cobra.ExactArgs(1),
		Run:   runTrace,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version and runtime information.`,
		Run:   showVersion,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&activityLog, "log-file", "l", "", "Activity log path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&silentMode, "silent", "s", false, "Silent mode (no diagnostics)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Verbose mode (debug level logging)")

	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger, activity log and router
// core, preloading any configured static routes.
func setup() (*config.Config, *logger.Logger, *router.Router, func()) {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if verboseMode {
		cfg.LogLevel = "debug"
	}
	if activityLog != "" {
		cfg.ActivityLog = activityLog
	}

	log := logger.New(cfg.LogLevel, silentMode)
	log.ServiceStart(version, os.Getpid())
	log.ConfigLoaded(configFile, len(cfg.Routes))

	sink, err := journal.NewFileSink(cfg.ActivityLog)
	if err != nil {
		log.Error("Failed to open activity log", "error", err)
		os.Exit(1)
	}

	core := router.New(sink, log)
	for _, preload := range cfg.Routes {
		if _, err := core.AddRoute(preload.Network, preload.Gateway, preload.Metric); err != nil {
			log.Error("Failed to preload route", "network", preload.Network, "error", err)
			os.Exit(1)
		}
	}

	cleanup := func() {
		log.ServiceStop()
		if err := sink.Close(); err != nil {
			log.Error("Failed to close activity log", "error", err)
		}
	}
	return cfg, log, core, cleanup
}

func runShell(_ *cobra.Command, _ []string) {
	_, log, core, cleanup := setup()
	defer cleanup()

	if err := shell.New(core, os.Stdin, os.Stdout, log).Run(); err != nil {
		log.Error("Shell terminated with error", "error", err)
		os.Exit(1)
	}
}

func runTrace(_ *cobra.Command, args []string) {
	cfg, log, core, cleanup := setup()
	defer cleanup()

	start := time.Now()
	result, err := trace.Run(core, args[0], cfg.ConcurrencyLimit, log)
	if err != nil {
		log.Error("Trace replay failed", "error", err)
		os.Exit(1)
	}
	log.TraceCompleted(args[0], result.Packets, result.Forwarded, result.Dropped, result.Malformed,
		time.Since(start).Milliseconds())

	fmt.Printf("Packets:   %d\n", result.Packets)
	fmt.Printf("Forwarded: %d\n", result.Forwarded)
	fmt.Printf("Dropped:   %d\n", result.Dropped)
	fmt.Printf("Malformed: %d\n", result.Malformed)
}

func showVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Router Simulator v%s\n", version)
	fmt.Printf("Runtime: %s\n", runtime.Version())
	fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
