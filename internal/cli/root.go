package cli

import (
	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/cli/helpers"
	initcmd "github.com/symhook/symhook/internal/cli/init"
	"github.com/symhook/symhook/internal/config"
	symerrors "github.com/symhook/symhook/internal/errors"
	"github.com/symhook/symhook/pkg/version"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	project    string
	configPath string
	logLevel   string
}

var global globalFlags

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symhook",
		Short: "Unity debug symbol upload hook",
		Long: `symhook wires native debug symbol upload into the Gradle build Unity
generates for Android.

It locates the directories holding IL2CPP and native symbols for the Unity
version in use, patches build.gradle with an upload task that runs after the
build, and copies symbols into exported Gradle projects.

Typical use from a post-export build step:
  symhook post-export --project /path/to/UnityProject`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&global.project, "project", "p", ".", "Unity project directory")
	cmd.PersistentFlags().StringVarP(&global.configPath, "config", "c", "", "Options file (default: <project>/symhook.yaml)")
	cmd.PersistentFlags().StringVar(&global.logLevel, config.FlagLogLevel, "info", "Log level (debug, info, warn, error)")
	symerrors.Must(cmd.MarkPersistentFlagDirname("project"), "failed to mark --project as a directory")
	symerrors.Must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"), "failed to mark --config as a file")

	cmd.AddCommand(initcmd.NewInitCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newPostExportCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newCopyCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != string(helpers.FormatTable) {
				return helpers.Write(cmd, format, versionFormats, version.Get())
			}
			cmd.Printf("symhook version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
			return nil
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, versionFormats)
	return cmd
}

var versionFormats = []helpers.OutputFormat{helpers.FormatTable, helpers.FormatJSON, helpers.FormatYAML}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
