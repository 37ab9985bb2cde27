package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/viperproject/viper-ide-sub004/internal/view"
)

var (
	parseKindFlag  string
	parseQuietFlag bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse verifier messages and print them",
	Long: `Parse one or more JSON messages of the kind given by --as and print them.
With no files, or with "-", the message is read from standard input.

Inputs that fail to parse are reported on stderr with the offending key;
the remaining inputs are still printed.

Examples:
  viperstate parse --as log symbex-log.json
  viperstate parse --as state --format yaml --exclude 'next' state.json
  cat term.json | viperstate parse --as term`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseKindFlag, "as", string(view.KindLog), "message kind: log, state, chunk, term or sort")
	parseCmd.Flags().BoolVarP(&parseQuietFlag, "quiet", "q", false, "Suppress the progress bar")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	kind, err := view.ParseKind(parseKindFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := viewOptions(cfg)
	if err != nil {
		return err
	}

	dec, err := newDecoder(kind, cfg.Cache.Capacity, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer dec.Close()

	if len(args) == 0 {
		args = []string{stdinName}
	}

	progress := newFileProgress(len(args), parseQuietFlag)
	err = parseInputs(cmd.OutOrStdout(), cmd.ErrOrStderr(), dec, args, opts, progress)
	if verbose {
		stats := dec.cache.Stats()
		log.Printf("Parse cache: %d hits, %d misses", stats.Hits, stats.Misses)
	}
	return err
}

// parseInputs decodes and renders every path in order. A path that fails
// to parse is reported on errOut and does not stop the others.
func parseInputs(out, errOut io.Writer, dec *decoder, paths []string, opts view.Options, progress *fileProgress) error {
	failed := 0
	for i, path := range paths {
		v, err := dec.decode(path)
		progress.Add()
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}

		if len(paths) > 1 {
			writeSeparator(out, opts.Format, displayName(path), i)
		}
		if err := view.Render(out, v, opts); err != nil {
			return fmt.Errorf("failed to render %s: %w", displayName(path), err)
		}
	}
	progress.Finish()

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(paths))
	}
	return nil
}

// writeSeparator marks the start of one input's output when several are printed.
func writeSeparator(w io.Writer, format, name string, index int) {
	switch format {
	case view.FormatJSON:
		// A stream of JSON documents needs no separator.
	case view.FormatYAML:
		fmt.Fprintf(w, "--- # %s\n", name)
	default:
		if index > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", name)
	}
}
