package unityversion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		threshold string
		want      Comparison
	}{
		{"equal is newer", "2021.2", "2021.2", EqualOrNewer},
		{"equal with patch and suffix", "2021.2.0f1", "2021.2", EqualOrNewer},
		{"newer patch", "2021.2.21f1", "2021.2", EqualOrNewer},
		{"newer minor", "2021.3.5f1", "2021.2", EqualOrNewer},
		{"newer major", "2022.1", "2021.2", EqualOrNewer},
		{"beta release", "2023.1.0b3", "2021.2", EqualOrNewer},
		{"older minor", "2021.1.28f1", "2021.2", Older},
		{"older major", "2020.3.40f1", "2021.2", Older},
		{"numeric not lexical", "2021.10", "2021.2", EqualOrNewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.current, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Invalid(t *testing.T) {
	_, err := Compare("unity-latest", NewBuildBackendThreshold)
	assert.Error(t, err)

	_, err = Compare("2021.2", "")
	assert.Error(t, err)
}

func TestComparisonString(t *testing.T) {
	assert.Equal(t, "older", Older.String())
	assert.Equal(t, "equal-or-newer", EqualOrNewer.String())
	assert.Equal(t, "unknown", Comparison(7).String())
}

func TestUsesNewBuildBackend(t *testing.T) {
	newer, err := UsesNewBuildBackend(Static("2021.2.0f1"))
	require.NoError(t, err)
	assert.True(t, newer)

	older, err := UsesNewBuildBackend(Static("2020.3.1f1"))
	require.NoError(t, err)
	assert.False(t, older)

	_, err = UsesNewBuildBackend(Static(""))
	assert.Error(t, err)
}

func TestProjectVersionFile(t *testing.T) {
	root := t.TempDir()
	settings := filepath.Join(root, "ProjectSettings")
	require.NoError(t, os.MkdirAll(settings, 0o755))

	content := "m_EditorVersion: 2021.3.5f1\nm_EditorVersionWithRevision: 2021.3.5f1 (40eb3a945986)\n"
	require.NoError(t, os.WriteFile(filepath.Join(settings, "ProjectVersion.txt"), []byte(content), 0o644))

	v, err := ProjectVersionFile{ProjectRoot: root}.EngineVersion()
	require.NoError(t, err)
	assert.Equal(t, "2021.3.5f1", v)
}

func TestProjectVersionFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ProjectVersionFile{ProjectRoot: t.TempDir()}.EngineVersion()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing key", func(t *testing.T) {
		root := t.TempDir()
		settings := filepath.Join(root, "ProjectSettings")
		require.NoError(t, os.MkdirAll(settings, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(settings, "ProjectVersion.txt"), []byte("other: 1\n"), 0o644))

		_, err := ProjectVersionFile{ProjectRoot: root}.EngineVersion()
		assert.Error(t, err)
	})
}
