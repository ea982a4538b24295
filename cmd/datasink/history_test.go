package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryCommand(t *testing.T) {
	t.Parallel()

	cmd := newHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	require.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
}

func TestHistoryListsRecordedTransfers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "datasink.yml")
	content := "log_file: " + filepath.Join(dir, "log.txt") + "\n" +
		"history:\n  enabled: true\n  path: " + filepath.Join(dir, "history.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "backup"), 0o755))

	// Record one transfer through the real command path.
	transferCmd := newRootCommand()
	var transferOut bytes.Buffer
	transferCmd.SetOut(&transferOut)
	transferCmd.SetErr(&transferOut)
	transferCmd.SetArgs([]string{"note.txt", "backup", "-c", cfgPath})
	require.NoError(t, transferCmd.Execute())

	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"history", "-c", cfgPath})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "copy")
	assert.Contains(t, output, "Successfully copied file")
}

func TestHistoryOnEmptyJournal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "datasink.yml")
	content := "history:\n  enabled: true\n  path: " + filepath.Join(dir, "history.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"history", "-c", cfgPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "No transfers recorded.")
}
