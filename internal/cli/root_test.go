package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeOptions(t *testing.T, p *testutil.UnityProject, content string) {
	t.Helper()
	p.WriteFile(t, constants.OptionsFile, content)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "symhook version")

	out, err = execute(t, "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["go_version"])
}

func TestResolveCmd(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")
	p.Mkdir(t, "Library/Bee/artifacts/Android")

	out, err := execute(t, "resolve", "--project", p.Root, "-o", "json")
	require.NoError(t, err)

	var dirs []symbolDir
	require.NoError(t, json.Unmarshal([]byte(out), &dirs))
	require.Len(t, dirs, 2)
	assert.Equal(t, p.Path("Library/Bee/artifacts/Android"), dirs[0].Path)
	assert.True(t, dirs[0].Exists)
	assert.Equal(t, p.Path("Library/Bee/Android"), dirs[1].Path)
	assert.False(t, dirs[1].Exists)
	assert.Equal(t, "library", dirs[0].Layout)

	out, err = execute(t, "resolve", "--project", p.Root, "--backend", "mono")
	require.NoError(t, err)
	assert.NotContains(t, out, "artifacts")
	assert.Contains(t, out, "PATH")

	_, err = execute(t, "resolve", "--project", p.Root, "-o", "xml")
	assert.Error(t, err)
}

func TestInstallAndUninstallCmd(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")
	p.Mkdir(t, "Library/Bee/artifacts/Android")
	p.Mkdir(t, "Library/Bee/Android")
	tool := testutil.NewUploadTool(t)
	writeOptions(t, p, "cli_path: "+tool+"\n")

	out, err := execute(t, "install", "--project", p.Root)
	require.NoError(t, err)
	assert.Contains(t, out, p.BuildScript())

	content := testutil.ReadFile(t, p.BuildScript())
	assert.Contains(t, content, constants.BlockStartMarker)
	assert.Contains(t, content, filepath.ToSlash(tool))

	_, err = execute(t, "uninstall", "--project", p.Root)
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultBuildScript, testutil.ReadFile(t, p.BuildScript()))
}

func TestInstallCmd_RequiresCLIPath(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")

	_, err := execute(t, "install", "--project", p.Root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cli_path")
	assert.Equal(t, testutil.DefaultBuildScript, testutil.ReadFile(t, p.BuildScript()))
}

func TestPostExportCmd_Export(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")
	p.WriteFile(t, "Library/Bee/artifacts/Android/libil2cpp.so", "symbols")

	exported := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(exported, "build.gradle"), []byte(testutil.DefaultBuildScript), 0o644))

	writeOptions(t, p, strings.Join([]string{
		"exporting: true",
		"cli_path: /opt/tools/sentry-cli",
		"gradle_project: " + exported,
		"sentry:",
		"  org: acme",
		"  project: game",
		"",
	}, "\n"))

	_, err := execute(t, "post-export", "--project", p.Root, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, filepath.Join(exported, "build.gradle")), "executable './sentry-cli'")
	assert.Equal(t, "symbols", testutil.ReadFile(t, filepath.Join(exported, "symbols", "libil2cpp.so")))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(exported, "sentry.properties")), "defaults.org=acme")
}

func TestPostExportCmd_Disabled(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")
	p.Mkdir(t, "Library/Bee/artifacts/Android")
	p.Mkdir(t, "Library/Bee/Android")
	tool := testutil.NewUploadTool(t)
	writeOptions(t, p, "cli_path: "+tool+"\n")

	_, err := execute(t, "install", "--project", p.Root)
	require.NoError(t, err)

	t.Setenv("SYMHOOK_UPLOAD_SYMBOLS", "false")
	_, err = execute(t, "post-export", "--project", p.Root)
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultBuildScript, testutil.ReadFile(t, p.BuildScript()))
}

func TestCopyCmd(t *testing.T) {
	p := testutil.NewUnityProject(t, "2022.1.0f1")
	p.WriteFile(t, "Library/Bee/artifacts/Android/arm64/libmain.so", "main")
	exported := t.TempDir()

	out, err := execute(t, "copy", "--project", p.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "not exported")

	out, err = execute(t, "copy", "--project", p.Root, "--export", "--gradle-project", exported, "-o", "json")
	require.NoError(t, err)

	var report struct {
		Files []struct {
			Destination string `json:"destination"`
			Size        int64  `json:"size"`
			Checksum    string `json:"xxh3"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(exported, "symbols", "arm64", "libmain.so"), report.Files[0].Destination)
	assert.Equal(t, int64(4), report.Files[0].Size)
	assert.Len(t, report.Files[0].Checksum, 16)
}

func TestStatusCmd(t *testing.T) {
	p := testutil.NewUnityProject(t, "2020.3.48f1")
	p.WriteFile(t, "Temp/gradleOut/build.gradle", testutil.DefaultBuildScript)

	out, err := execute(t, "status", "--project", p.Root, "-o", "json")
	require.NoError(t, err)

	var st projectStatus
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "2020.3.48f1", st.UnityVersion)
	assert.Equal(t, "temp", st.Layout)
	assert.False(t, st.Installed)
	assert.Empty(t, st.ScriptError)
	assert.Equal(t, p.Path("Temp/gradleOut/build.gradle"), st.BuildScript)
	assert.Contains(t, st.Warnings, oldLayoutWarning)
	assert.False(t, st.OptionsFound)

	out, err = execute(t, "status", "--project", p.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "symhook status")
	assert.Contains(t, out, "not installed")
}
