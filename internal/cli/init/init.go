package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/cli/helpers"
	"github.com/symhook/symhook/internal/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var (
		force  bool
		sentry config.SentryConfig
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create symhook.yaml in a Unity project",
		Long: `Create symhook.yaml in the Unity project with default options.

Flags and SYMHOOK_* / SENTRY_* environment variables are written into the
file. Keep the auth token out of version control by passing it through
SENTRY_AUTH_TOKEN at build time instead.

Example:
  symhook init --project MyGame --cli-path /opt/sentry-cli --org acme --sentry-project game`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := cmd.Flags().GetString("project")
			if err != nil {
				project = "."
			}
			return runInit(cmd, project, sentry, force)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&sentry.URL, "url", "", "Sentry server URL")
	cmd.Flags().StringVar(&sentry.Org, "org", "", "Sentry organization slug")
	cmd.Flags().StringVar(&sentry.Project, "sentry-project", "", "Sentry project slug")
	helpers.AddForceFlag(cmd, &force, "Overwrite an existing options file")

	return cmd
}

func runInit(cmd *cobra.Command, project string, sentry config.SentryConfig, force bool) error {
	root, err := filepath.Abs(project)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("project directory %s does not exist", root)
	}

	path := config.OptionsPath(root)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	loader := config.NewLayeredLoader().WithFlags(cmd.Flags())
	loader.DisableLayer(config.LayerFile)
	opts, err := loader.Load("")
	if err != nil {
		return err
	}

	if sentry.URL != "" {
		opts.Sentry.URL = sentry.URL
	}
	if sentry.Org != "" {
		opts.Sentry.Org = sentry.Org
	}
	if sentry.Project != "" {
		opts.Sentry.Project = sentry.Project
	}

	if err := opts.Validate(); err != nil {
		return err
	}
	if err := config.SaveOptions(path, opts); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", path)
	if opts.Sentry.AuthToken != "" {
		cmd.Println("Warning: the auth token from SENTRY_AUTH_TOKEN was written to the file.")
	}
	return nil
}
