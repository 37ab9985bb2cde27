package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
	"github.com/viperproject/viper-ide-sub004/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <state-file>",
	Short: "Reparse a state file whenever it changes and print the diff",
	Long: `Print a state, then watch the file and, after each change settles
(watch.debounce), reparse it and print what changed since the previous
version. A version that fails to parse is reported and skipped.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	reloader, err := newStateReloader(args[0], dec, opts, out)
	if err != nil {
		return err
	}
	if err := view.Render(out, reloader.Current(), opts); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher([]string{args[0]}, cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	defer fw.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fw.Start(ctx, watcher.ReloadOnChange(ctx, reloader)); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	log.Printf("Watching %s for changes (debounce %s)...", args[0], cfg.Watch.Debounce)

	<-ctx.Done()
	log.Printf("Stopping watcher...")
	return nil
}

// stateReloader keeps the last good version of a state file and prints the
// diff to each new version.
type stateReloader struct {
	path string
	dec  *decoder
	opts view.Options
	out  io.Writer

	mu      sync.Mutex
	current *symbex.State
}

func newStateReloader(path string, dec *decoder, opts view.Options, out io.Writer) (*stateReloader, error) {
	s, err := dec.decodeState(path)
	if err != nil {
		return nil, err
	}
	return &stateReloader{path: path, dec: dec, opts: opts, out: out, current: s}, nil
}

// Current returns the last state that parsed successfully.
func (r *stateReloader) Current() *symbex.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Reload reparses the file. On failure the previous state is kept.
func (r *stateReloader) Reload(ctx context.Context, files []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next, err := r.dec.decodeState(r.path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d := symbex.CompareStates(r.current, next)
	r.current = next

	fmt.Fprintf(r.out, "--- %s changed (fingerprint %s)\n", r.path, symbex.Fingerprint(next))
	return view.Render(r.out, d, r.opts)
}
