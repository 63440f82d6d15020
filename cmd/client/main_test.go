package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/yewchat/internal/apperrors"
)

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  username: fromfile\n  server_url: ws://file/ws\n"), 0o600))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--name", "alice"}))

	var flags clientFlags
	flags.configPath, _ = cmd.Flags().GetString("config")
	flags.username, _ = cmd.Flags().GetString("name")

	cfg, err := resolveConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "ws://file/ws", cfg.ServerURL)
	assert.Equal(t, 5, cfg.ReconnectAttempts)
}

func TestResolveConfig_MissingFileUsesDefaults(t *testing.T) {
	cmd := newRootCmd()
	flags := clientFlags{configPath: filepath.Join(t.TempDir(), "nope.yaml")}

	cfg, err := resolveConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:1780/ws", cfg.ServerURL)
	assert.Empty(t, cfg.Username)
}

func TestResolveConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client: [unclosed"), 0o600))

	_, err := resolveConfig(newRootCmd(), clientFlags{configPath: path})
	assert.ErrorContains(t, err, "load config")
}

func TestRun_MissingUsername(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	err := cmd.Execute()
	assert.ErrorIs(t, err, apperrors.ErrMissingIdentity)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
