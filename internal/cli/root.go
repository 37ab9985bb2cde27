package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/viperproject/viper-ide-sub004/internal/config"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

var (
	rootDir      string
	verbose      bool
	outputFormat string
	maxWidth     int
	includeFlag  []string
	excludeFlag  []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "viperstate",
	Short: "Inspect Viper symbolic-execution messages",
	Long: `viperstate decodes the JSON messages a Viper symbolic-execution backend emits
(execution logs, states, heap chunks, terms and sorts) and renders them for people.

Configuration is read from .viperstate/config.yml under --dir, then from
VIPERSTATE_* environment variables; flags override both.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", ".", "project directory holding "+config.DirName+"/config.yml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: text, json or yaml")
	rootCmd.PersistentFlags().IntVar(&maxWidth, "width", 0, "truncate text lines to this many columns (0 = no limit)")
	rootCmd.PersistentFlags().StringSliceVar(&includeFlag, "include", nil, "only show heap chunks whose resource matches these globs")
	rootCmd.PersistentFlags().StringSliceVar(&excludeFlag, "exclude", nil, "hide heap chunks whose resource matches these globs")
}

func initLogging() {
	log.SetFlags(0)
	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}
}

// loadConfig loads the project configuration and applies the global flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("width") {
		cfg.Output.MaxWidth = maxWidth
	}
	if flags.Changed("include") {
		cfg.Filter.Include = includeFlag
	}
	if flags.Changed("exclude") {
		cfg.Filter.Exclude = excludeFlag
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	if verbose && cfg.Output.Format != config.FormatText {
		log.Printf("Output format: %s", cfg.Output.Format)
	}
	return cfg, nil
}

// viewOptions builds the render options for cfg.
func viewOptions(cfg *config.Config) (view.Options, error) {
	filter, err := symbex.NewChunkFilter(cfg.Filter.Include, cfg.Filter.Exclude)
	if err != nil {
		return view.Options{}, err
	}
	return view.Options{
		Format:   cfg.Output.Format,
		MaxWidth: cfg.Output.MaxWidth,
		Filter:   filter,
	}, nil
}
