package initcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symhook/symhook/internal/config"
)

// runCmd executes init under a parent that carries the persistent
// --project flag, the way the root command does.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var project string
	root := &cobra.Command{Use: "symhook", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringVarP(&project, "project", "p", ".", "")
	root.AddCommand(NewInitCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"init"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestNewInitCmd(t *testing.T) {
	cmd := NewInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"cli-path", "backend", "export", "org", "sentry-project", "url", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "--%s flag not defined", name)
	}
}

func TestRunInit_WritesOptions(t *testing.T) {
	dir := t.TempDir()

	out, err := runCmd(t, "--project", dir,
		"--cli-path", "/opt/sentry-cli",
		"--backend", "mono",
		"--org", "acme",
		"--sentry-project", "game",
		"--extra-arg", "--wait",
	)
	require.NoError(t, err)
	assert.Contains(t, out, config.OptionsPath(dir))

	loader := config.NewLayeredLoader()
	loader.DisableLayer(config.LayerEnv)
	opts, err := loader.Load(config.OptionsPath(dir))
	require.NoError(t, err)

	assert.Equal(t, "/opt/sentry-cli", opts.CLIPath)
	assert.Equal(t, "mono", opts.ScriptingBackend)
	assert.Equal(t, "acme", opts.Sentry.Org)
	assert.Equal(t, "game", opts.Sentry.Project)
	assert.Equal(t, []string{"--wait"}, opts.ExtraArgs)
	assert.True(t, opts.UploadSymbols)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symhook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upload_symbols: false\n"), 0600))

	_, err := runCmd(t, "--project", dir, "--cli-path", "/opt/sentry-cli")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCmd(t, "--project", dir, "--cli-path", "/opt/sentry-cli", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cli_path: /opt/sentry-cli")
}

func TestRunInit_InvalidOptions(t *testing.T) {
	dir := t.TempDir()

	_, err := runCmd(t, "--project", dir)
	require.Error(t, err, "cli path is required while uploads are enabled")
	assert.NoFileExists(t, filepath.Join(dir, "symhook.yaml"))
}

func TestRunInit_MissingProject(t *testing.T) {
	_, err := runCmd(t, "--project", filepath.Join(t.TempDir(), "absent"), "--cli-path", "/x")
	assert.Error(t, err)
}
