package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/cli/helpers"
	"github.com/symhook/symhook/internal/config"
)

// symbolDir is one resolved symbol directory as printed by resolve.
type symbolDir struct {
	Path   string `json:"path" yaml:"path" header:"PATH"`
	Layout string `json:"layout" yaml:"layout" header:"LAYOUT"`
	Exists bool   `json:"exists" yaml:"exists" header:"EXISTS"`
}

var resolveFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatYAML,
	helpers.FormatCSV,
}

func newResolveCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the directories searched for debug symbols",
		Long: `Print the directories that hold native debug symbols for this project, in
the order they are passed to the upload tool.

Unity 2021.2 and newer build under Library/Bee, older versions under Temp.
The IL2CPP-only output directory is listed only for the il2cpp backend.`,
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

			layout := u.Layout().String()
			dirs := make([]symbolDir, 0, len(u.SymbolPaths()))
			for _, p := range u.SymbolPaths() {
				info, err := os.Stat(p)
				dirs = append(dirs, symbolDir{
					Path:   p,
					Layout: layout,
					Exists: err == nil && info.IsDir(),
				})
			}

			return helpers.Write(cmd, format, resolveFormats, dirs)
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, resolveFormats)
	config.RegisterFlags(cmd.Flags())
	return cmd
}
