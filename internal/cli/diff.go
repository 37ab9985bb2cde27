package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

var diffFingerprintFlag bool

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Show what changed between two symbolic states",
	Long: `Parse two state messages and list the store variables, heap chunks and
path conditions that differ. Heaps and path conditions are compared as
multisets, so reordering alone is not a change.

Example:
  viperstate diff before.json after.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffFingerprintFlag, "fingerprint", false, "Print both state fingerprints before the diff")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := viewOptions(cfg)
	if err != nil {
		return err
	}

	dec, err := newDecoder(view.KindState, cfg.Cache.Capacity, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer dec.Close()

	before, err := dec.decodeState(args[0])
	if err != nil {
		return err
	}
	after, err := dec.decodeState(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diffFingerprintFlag {
		fmt.Fprintf(out, "before: %s\n", symbex.Fingerprint(before))
		fmt.Fprintf(out, "after:  %s\n", symbex.Fingerprint(after))
	}
	return view.Render(out, symbex.CompareStates(before, after), opts)
}
