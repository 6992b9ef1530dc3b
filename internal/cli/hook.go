package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/config"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Add the symbol upload task to build.gradle",
		Long: `Add the symbol upload task to the generated build.gradle.

Any upload task from an earlier run is removed first, so a changed tool path
or argument list takes effect. Outside export mode the upload tool and every
symbol directory must exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.options.Validate(); err != nil {
				return err
			}

			u, err := s.uploader()
			if err != nil {
				return err
			}
			if err := u.InstallUploadHook(s.options.CLIPath); err != nil {
				return err
			}

			cmd.Printf("Upload task installed in %s\n", u.Context().BuildScript())
			return nil
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the symbol upload task from build.gradle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			u, err := s.uploader()
			if err != nil {
				return err
			}
			if err := u.UninstallUploadHook(); err != nil {
				return err
			}

			cmd.Printf("Upload task removed from %s\n", u.Context().BuildScript())
			return nil
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func newPostExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post-export",
		Short: "Run the full post-export hook",
		Long: `Run everything the build needs after Unity generated the Gradle project:

- write sentry.properties when upload tool settings are configured
- install the upload task in build.gradle
- copy native symbols into the project when it is exported

When upload_symbols is false the upload task is removed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.options.Validate(); err != nil {
				return err
			}

			u, err := s.uploader()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := u.OnPostExport(ctx, s.options.CLIPath); err != nil {
				return fmt.Errorf("post-export hook failed: %w", err)
			}
			return nil
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}
