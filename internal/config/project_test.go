package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path := filepath.Join(root, ProjectFile)
	require.NoError(t, os.WriteFile(path, []byte("limit: 3\n"), 0o644))

	found, err := FindProjectConfig(nested)
	require.NoError(t, err)
	require.Equal(t, path, found)
}

func TestFindProjectConfigIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ProjectFile), 0o755))
	path := filepath.Join(root, "inner", ProjectFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	found, err := FindProjectConfig(filepath.Join(root, "inner"))
	require.NoError(t, err)
	require.Equal(t, path, found)
}

func TestLoadUsesProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	nested := filepath.Join(root, "drafts")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	project := "limit: 3\nlog:\n  file: logs/mention.log\ndirectory:\n  sources:\n    - kind: file\n      path: users.json\n    - kind: http\n      url: https://example.test/users\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFile), []byte(project), 0o644))
	t.Chdir(nested)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Limit)
	require.Equal(t, filepath.Join(root, "users.json"), cfg.Directory.Sources[0].Path)
	require.Equal(t, "https://example.test/users", cfg.Directory.Sources[1].URL)
	require.Equal(t, filepath.Join(root, "logs", "mention.log"), cfg.Log.File)
}
