package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/unityversion"
)

func TestOptions_UploadContext_DefaultGradleProject(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		version string
		backend string
		want    string
	}{
		{"new layout il2cpp", "2022.1.3f1", "il2cpp", filepath.Join(root, "Library/Bee/Android/Prj/IL2CPP/Gradle")},
		{"new layout mono", "2021.2.0f1", "mono", filepath.Join(root, "Library/Bee/Android/Prj/Mono2x/Gradle")},
		{"old layout", "2020.3.1f1", "il2cpp", filepath.Join(root, "Temp/gradleOut")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.UnityVersion = tt.version
			opts.ScriptingBackend = tt.backend

			uc, err := opts.UploadContext(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, uc.GradleProject)
		})
	}
}

func TestOptions_UploadContext_Fields(t *testing.T) {
	root := t.TempDir()

	opts := DefaultOptions()
	opts.UnityVersion = "2022.1"
	opts.Exporting = true
	opts.UploadSources = true
	opts.ExtraArgs = []string{"--wait"}
	opts.GradleProject = "Exported/Game"

	uc, err := opts.UploadContext(root)
	require.NoError(t, err)

	assert.Equal(t, root, uc.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "Exported/Game"), uc.GradleProject)
	assert.Equal(t, build.BackendIL2CPP, uc.Backend)
	assert.Equal(t, build.PlatformAndroid, uc.Platform)
	assert.True(t, uc.Exporting)
	assert.True(t, uc.UploadSources())
	assert.Equal(t, []string{"--wait"}, uc.ExtraArgs())
	assert.Equal(t, unityversion.Static("2022.1"), uc.EngineVersion)

	opts.ExtraArgs[0] = "changed"
	assert.Equal(t, []string{"--wait"}, uc.ExtraArgs())
}

func TestOptions_UploadContext_ReadsProjectVersion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ProjectSettings"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "ProjectSettings", "ProjectVersion.txt"),
		[]byte("m_EditorVersion: 2020.3.48f1\nm_EditorVersionWithRevision: 2020.3.48f1 (b805b124c6b7)\n"),
		0644,
	))

	uc, err := DefaultOptions().UploadContext(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Temp/gradleOut"), uc.GradleProject)
}

func TestOptions_UploadContext_Errors(t *testing.T) {
	root := t.TempDir()

	t.Run("missing version file", func(t *testing.T) {
		_, err := DefaultOptions().UploadContext(root)
		assert.Error(t, err)
	})

	t.Run("bad backend", func(t *testing.T) {
		opts := DefaultOptions()
		opts.UnityVersion = "2022.1"
		opts.ScriptingBackend = "jit"
		_, err := opts.UploadContext(root)
		assert.Error(t, err)
	})
}
