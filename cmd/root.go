// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"ouiplayer/internal/config"
	"ouiplayer/internal/player"
	"ouiplayer/internal/prefs"
	"ouiplayer/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagPrefsBackend string
	flagPrefsPath    string
	flagStrict       bool
	flagJSON         bool
	flagDebug        bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var logger hclog.Logger = hclog.NewNullLogger()

var rootCmd = &cobra.Command{
	Use:   "ouiplayer",
	Short: "Embed YouTube and Vimeo players from their URLs",
	Long: `ouiplayer recognises video URLs, works out the provider and item id,
and renders an iframe player with the configured parameters and size.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPrefsBackend, "prefs-backend", "", "Preference store: file | sqlite")
	rootCmd.PersistentFlags().StringVar(&flagPrefsPath, "prefs-path", "", "Preference store location")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Reject parameter values outside their valid set")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPrefsBackend != "" {
		cfg.PrefsBackend = flagPrefsBackend
	}
	if flagPrefsPath != "" {
		cfg.PrefsPath = flagPrefsPath
	}
	if flagStrict {
		cfg.Strict = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "ouiplayer",
		Level:  cfg.Level(),
		Output: os.Stderr,
	})

	return nil
}

// openStore opens the configured preference backend. Callers must Close it.
func openStore() (prefs.Backend, error) {
	path, err := cfg.ResolvePrefsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving prefs path: %w", err)
	}
	logger.Debug("opening preferences", "backend", cfg.PrefsBackend, "path", path)

	store, err := prefs.Open(strings.ToLower(cfg.PrefsBackend), path)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	return store, nil
}

func newPlayer(reg *provider.Registry, store prefs.Store) *player.Player {
	return player.New(reg, store,
		player.WithStrict(cfg.Strict),
		player.WithLogger(logger.Named("player")),
	)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}
