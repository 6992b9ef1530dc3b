package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/config"
	"github.com/symhook/symhook/internal/gradle"
	"github.com/symhook/symhook/internal/logging"
	"github.com/symhook/symhook/internal/upload"
)

// session is the per-invocation state shared by the commands: the project,
// its options and a logger tagged with a run id.
type session struct {
	projectRoot string
	optionsPath string
	options     *config.Options
	logger      zerolog.Logger
}

// newSession loads options for the project selected by the persistent flags.
// Flags registered with config.RegisterFlags on cmd override the file.
func newSession(cmd *cobra.Command) (*session, error) {
	root, err := filepath.Abs(global.project)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	optionsPath := global.configPath
	if optionsPath == "" {
		optionsPath = config.OptionsPath(root)
	}

	opts, err := config.NewLayeredLoader().WithFlags(cmd.Flags()).Load(optionsPath)
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = opts.LogLevel
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.New(logCfg).With().Str("run_id", uuid.NewString()).Logger()

	return &session{
		projectRoot: root,
		optionsPath: optionsPath,
		options:     opts,
		logger:      logger,
	}, nil
}

// reload re-reads the options file, keeping the command-line overrides.
func (s *session) reload(cmd *cobra.Command) error {
	opts, err := config.NewLayeredLoader().WithFlags(cmd.Flags()).Load(s.optionsPath)
	if err != nil {
		return err
	}
	s.options = opts
	return nil
}

// uploadContext derives the build context from the options.
func (s *session) uploadContext() (build.UploadContext, error) {
	return s.options.UploadContext(s.projectRoot)
}

// uploader builds a fresh Uploader for the current options.
func (s *session) uploader() (*upload.Uploader, error) {
	uc, err := s.uploadContext()
	if err != nil {
		return nil, err
	}

	sentry := s.options.Sentry
	opts := []upload.Option{
		upload.WithLogger(s.logger),
		upload.WithUploadDisabled(!s.options.UploadSymbols),
	}
	if sentry != (config.SentryConfig{}) {
		opts = append(opts, upload.WithProperties(gradle.Properties{
			URL:       sentry.URL,
			Org:       sentry.Org,
			Project:   sentry.Project,
			AuthToken: sentry.AuthToken,
		}))
	}
	return upload.New(uc, opts...)
}
