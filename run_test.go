package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-organism/utils"
)

func newRunFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().AddFlagSet(runCmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyRunFlags_OnlyChangedFlagsOverride(t *testing.T) {
	config := utils.DefaultConfig()
	config.RedisAddr = "redis:6379"

	cmd := newRunFlags(t, "--world-url", "http://w.test/world", "--no-browser", "--workers", "3")
	applyRunFlags(cmd, &config)

	assert.Equal(t, "http://w.test/world", config.WorldURL)
	assert.Equal(t, utils.DefaultConfig().SubmitURL, config.SubmitURL)
	assert.Equal(t, "redis:6379", config.RedisAddr)
	assert.False(t, config.OpenBrowser)
	assert.Equal(t, 3, config.Workers)
}

func newConfigFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "step"}
	cmd.Flags().String("config", filepath.Join(t.TempDir(), "config.json"), "")
	cmd.Flags().String("log-level", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_DefaultPathMissing(t *testing.T) {
	config, err := loadConfig(newConfigFlags(t, "--log-level", "debug"))
	require.NoError(t, err)

	want := utils.DefaultConfig()
	want.LogLevel = "debug"
	assert.Equal(t, want, config)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	_, err := loadConfig(newConfigFlags(t, "--config", missing))
	assert.ErrorContains(t, err, "[loadConfig] --config "+missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_ExplicitPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers":`), 0o644))

	_, err := loadConfig(newConfigFlags(t, "--config", path))
	assert.ErrorContains(t, err, "[LoadConfig]")
}
