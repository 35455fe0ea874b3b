package userconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUserConfig(t *testing.T) {
	cfg := DefaultUserConfig()

	assert.Equal(t, "wtp", cfg.WtpPath)
	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "2s", cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.TimeoutDuration())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("wtp_path: /opt/bin/wtp\ntimeout: 750ms\n"))
	require.NoError(t, err)

	assert.Equal(t, "/opt/bin/wtp", cfg.WtpPath)
	assert.Equal(t, "git", cfg.GitPath, "unset keys keep defaults")
	assert.Equal(t, 750*time.Millisecond, cfg.TimeoutDuration())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseEmptyValuesFallBack(t *testing.T) {
	cfg, err := Parse([]byte("git_path: \"\"\nlog_level: \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseInvalidYAML(t *testing.T) {
	cfg, err := Parse([]byte("timeout: [unclosed"))
	assert.Error(t, err)
	assert.Equal(t, DefaultUserConfig(), cfg)
}

func TestTimeoutDurationFallback(t *testing.T) {
	for _, v := range []string{"", "soon", "-1s", "0"} {
		cfg := &UserConfig{Timeout: v}
		assert.Equal(t, 2*time.Second, cfg.TimeoutDuration(), "timeout %q", v)
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := DefaultUserConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"wtp_path", "/usr/local/bin/wtp"},
		{"git_path", "/usr/bin/git"},
		{"timeout", "500ms"},
		{"log_level", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := DefaultUserConfig()

	assert.Error(t, cfg.Set("timeout", "forever"))
	assert.Error(t, cfg.Set("timeout", "-2s"))
	assert.Error(t, cfg.Set("log_level", "loud"))
	assert.Error(t, cfg.Set("nope", "x"))

	assert.Equal(t, DefaultUserConfig(), cfg, "rejected values leave config untouched")
}

func TestUnset(t *testing.T) {
	cfg := DefaultUserConfig()
	require.NoError(t, cfg.Set("timeout", "10s"))

	require.NoError(t, cfg.Unset("timeout"))
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	assert.Error(t, cfg.Unset("unknown"))
}

func TestGetUnknownKey(t *testing.T) {
	_, err := DefaultUserConfig().Get("remote")
	assert.Error(t, err)
}

func TestValidKeys(t *testing.T) {
	assert.Equal(t, []string{"git_path", "log_level", "timeout", "wtp_path"}, ValidKeys())
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(PathEnv, "")

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "wtp-complete", "config.yaml"), path)

	t.Setenv(PathEnv, "/tmp/custom.yaml")
	path, err = GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultUserConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(PathEnv, path)

	cfg := DefaultUserConfig()
	require.NoError(t, cfg.Set("wtp_path", "/opt/wtp"))
	require.NoError(t, cfg.Set("log_level", "info"))
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
