package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugboard/plugboard/pkg/helper"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("loads yaml", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "engine.yaml", "discover: false\npluginDirs:\n  - /opt/plugins\nlogging:\n  level: debug\n")
		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.False(t, cfg.DiscoverEnabled())
		assert.Equal(t, []string{"/opt/plugins"}, cfg.PluginDirs)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("loads json", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "engine.json", `{"pluginDirs":["/opt/plugins"],"logging":{"format":"json"}}`)
		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.True(t, cfg.DiscoverEnabled())
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFromFile(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "empty.yaml", "")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "broken.json", `{"pluginDirs":`)
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "broken.yaml", "discover: [unclosed\n")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *Default(), false},
		{"bad level", Config{Logging: LoggingConfig{Level: "verbose"}}, true},
		{"bad format", Config{Logging: LoggingConfig{Format: "xml"}}, true},
		{"blank plugin dir", Config{PluginDirs: []string{"  "}}, true},
		{"valid plugin dirs", Config{PluginDirs: []string{"/a", "/b/**"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPluginDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, sub := range []string{"plugins/alpha", "plugins/beta", "other"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, sub), 0o750))
	}
	// Descriptor file inside alpha so the provider is actually usable.
	descDir := filepath.Join(root, "plugins/alpha", helper.DescriptorBase)
	require.NoError(t, os.MkdirAll(descDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(descDir, string(helper.KindClientConnector)), []byte("http-client\n"), 0o600))

	t.Run("glob pattern matches directories", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{PluginDirs: []string{filepath.Join(root, "plugins", "*")}}
		providers, err := cfg.ExpandPluginDirs()
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Contains(t, providers[0].Name, "alpha")
		assert.Contains(t, providers[1].Name, "beta")
	})

	t.Run("literal path", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{PluginDirs: []string{filepath.Join(root, "other")}}
		providers, err := cfg.ExpandPluginDirs()
		require.NoError(t, err)
		assert.Len(t, providers, 1)
	})

	t.Run("missing literal path matches nothing", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{PluginDirs: []string{filepath.Join(root, "nowhere")}}
		providers, err := cfg.ExpandPluginDirs()
		require.NoError(t, err)
		assert.Empty(t, providers)
	})
}
