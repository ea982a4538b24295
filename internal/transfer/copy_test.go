package transfer

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTreeReproducesStructure(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/sub/b.txt", []byte("b"), 0o644))
	require.NoError(t, fs.MkdirAll("/src/empty", 0o755))

	require.NoError(t, copyTree(fs, "/src", "/dst"))

	for path, want := range map[string]string{
		"/dst/a.txt":     "a",
		"/dst/sub/b.txt": "b",
	} {
		got, err := afero.ReadFile(fs, path)
		require.NoError(t, err, path)
		assert.Equal(t, want, string(got))
	}

	isDir, err := afero.DirExists(fs, "/dst/empty")
	require.NoError(t, err)
	assert.True(t, isDir, "empty directories must be reproduced")
}

func TestCopyTreeOverwritesFiles(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dst/a.txt", []byte("old content"), 0o644))

	require.NoError(t, copyTree(fs, "/src", "/dst"))

	got, err := afero.ReadFile(fs, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopyFileTruncatesLargerExisting(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a", []byte("tiny"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b", []byte("much longer content"), 0o644))

	require.NoError(t, copyFile(fs, "/a", "/b"))

	got, err := afero.ReadFile(fs, "/b")
	require.NoError(t, err)
	assert.Equal(t, "tiny", string(got))
}
