package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/cli/helpers"
	"github.com/symhook/symhook/internal/config"
)

var copyFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatYAML,
}

func newCopyCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy native symbols into the exported Gradle project",
		Long: `Copy every native library found in the symbol directories into
<gradle-project>/symbols, keeping the directory structure.

Only exported projects are copied into; for in-place builds the upload task
reads the symbols where Unity wrote them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			u, err := s.uploader()
			if err != nil {
				return err
			}

			if !s.options.Exporting {
				cmd.Println("Project is not exported, nothing to copy.")
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := u.CopySymbols(ctx)
			if err != nil {
				return err
			}

			if format != string(helpers.FormatTable) {
				return helpers.Write(cmd, format, copyFormats, report)
			}
			if len(report.Files) == 0 {
				cmd.Println("No symbol files found.")
				return nil
			}
			return helpers.Write(cmd, format, copyFormats, report.Files)
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, copyFormats)
	config.RegisterFlags(cmd.Flags())
	return cmd
}
