package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/config"
	"github.com/symhook/symhook/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		debounce time.Duration
		initial  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the post-export hook whenever the options file changes",
		Long: `Watch symhook.yaml and re-run the post-export hook after every change, so
that toggling upload_symbols or editing the tool arguments is reflected in
build.gradle without another export. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			apply := func(ctx context.Context) error {
				if err := s.reload(cmd); err != nil {
					return err
				}
				if err := s.options.Validate(); err != nil {
					return err
				}
				u, err := s.uploader()
				if err != nil {
					return err
				}
				return u.OnPostExport(ctx, s.options.CLIPath)
			}

			if initial {
				if err := apply(ctx); err != nil {
					s.logger.Error().Err(err).Msg("Initial post-export run failed.")
				}
			}

			w, err := watch.New(s.optionsPath, apply, s.logger, watch.WithDebounce(debounce))
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Wait this long for further changes before re-running")
	cmd.Flags().BoolVar(&initial, "initial", true, "Run the hook once before waiting for changes")
	config.RegisterFlags(cmd.Flags())
	return cmd
}
