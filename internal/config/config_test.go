package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("device", "d", DefaultDevice, "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-file", "", "")
	fs.Bool("json", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, used, err := Load(LoadOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultDevice, cfg.Device)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadConfigFileFromDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: /tmp/nvram.img\nverbose: true\nlog_file: /tmp/nvramctl.log\n"), 0o644))

	cfg, used, err := Load(LoadOptions{ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "/tmp/nvram.img", cfg.Device)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/nvramctl.log", cfg.LogFile)
}

func TestLoadExplicitTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvramctl.toml")
	require.NoError(t, os.WriteFile(path, []byte("device = \"/dev/mtd3\"\njson = true\n"), 0o644))

	cfg, used, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "/dev/mtd3", cfg.Device)
	assert.True(t, cfg.JSON)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("device: /from/file\n"), 0o644))

	t.Setenv("NVRAM_DEVICE", "/from/env")
	cfg, _, err := Load(LoadOptions{ConfigDir: dir, Flags: testFlags(t)})
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Device, "env beats file")

	fs := testFlags(t)
	require.NoError(t, fs.Parse([]string{"--device", "/from/flag", "--log-file", "/tmp/x.log"}))
	cfg, _, err = Load(LoadOptions{ConfigDir: dir, Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Device, "flag beats env")
	assert.Equal(t, "/tmp/x.log", cfg.LogFile)
}

func TestLoadRejectsEmptyDevice(t *testing.T) {
	t.Setenv("NVRAM_DEVICE", "")
	fs := testFlags(t)
	require.NoError(t, fs.Parse([]string{"--device", ""}))
	_, _, err := Load(LoadOptions{ConfigDir: t.TempDir(), Flags: fs})
	require.Error(t, err)
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", AppName), dir)
}
