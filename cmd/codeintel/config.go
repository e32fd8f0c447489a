package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/codeintel/internal/config"
	"github.com/dshills/codeintel/internal/config/watcher"
	"github.com/dshills/codeintel/internal/intel"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging the defaults, the config file and
CODEINTEL_* environment variables. Text output is TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.cfg, func(w io.Writer) error {
				data, err := toml.Marshal(a.cfg)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolvedConfigPath()
			state := "missing"
			if fileExists(path) {
				state = "found"
			}
			_, err := fmt.Fprintf(a.out, "%s (%s)\n", path, state)
			return err
		},
	})
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the config file and report reloads",
		Long: `Watch the config file and rebuild the engine whenever it changes. Each
reload, or reload failure, is reported on standard output. Runs until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolvedConfigPath()
			if path == "" {
				return fmt.Errorf("watch: %w", errNoStdinPath)
			}

			w, err := watcher.New(path, func(cfg config.Config) {
				a.reload(cfg)
			},
				watcher.WithDebounce(debounce),
				watcher.WithLogger(a.logger),
				watcher.WithErrorHandler(func(err error) {
					a.report("reload failed: %v", err)
				}),
			)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Close()

			a.report("watching %s", w.Path())
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before reloading")
	return cmd
}

// reload swaps in an engine built from cfg.
func (a *app) reload(cfg config.Config) {
	eng, err := intel.NewFromConfig(cfg, intel.WithLogger(a.logger))
	if err != nil {
		a.report("reload failed: %v", err)
		return
	}

	a.mu.Lock()
	old := a.engine
	a.cfg, a.engine = cfg, eng
	a.mu.Unlock()
	if old != nil {
		old.Close()
	}
	a.report("reloaded: theme=%s languages=%d", eng.Theme().Name, len(eng.Registry().Languages()))
}

// report writes one status line.
func (a *app) report(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format+"\n", args...)
}
