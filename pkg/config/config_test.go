package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name     string   `json:"name"`
	Interval Duration `json:"interval"`
}

type validatedConfig struct {
	testConfig
	valid bool
}

var errInvalidTestConfig = errors.New("invalid test config")

func (c *validatedConfig) Validate() error {
	if !c.valid {
		return errInvalidTestConfig
	}

	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `{"name":"syncd","interval":"30s"}`)

	var cfg testConfig
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "syncd", cfg.Name)
	assert.Equal(t, Duration(30*time.Second), cfg.Interval)
}

func TestLoadFileMissing(t *testing.T) {
	var cfg testConfig

	err := LoadFile("/nonexistent/config.json", &cfg)
	assert.Error(t, err)
}

func TestLoadFileBadJSON(t *testing.T) {
	path := writeFile(t, `{"name":`)

	var cfg testConfig
	assert.Error(t, LoadFile(path, &cfg))
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    time.Duration
		wantErr bool
	}{
		{name: "string duration", json: `{"interval":"1m30s"}`, want: 90 * time.Second},
		{name: "numeric nanoseconds", json: `{"interval":1000000000}`, want: time.Second},
		{name: "bad string", json: `{"interval":"soon"}`, wantErr: true},
		{name: "wrong type", json: `{"interval":[1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.json)

			var cfg testConfig
			err := LoadFile(path, &cfg)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, Duration(tt.want), cfg.Interval)
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeFile(t, `{"name":"syncd"}`)

	t.Run("valid config", func(t *testing.T) {
		cfg := &validatedConfig{valid: true}
		assert.NoError(t, LoadAndValidate(path, cfg))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := &validatedConfig{valid: false}
		err := LoadAndValidate(path, cfg)
		assert.ErrorIs(t, err, errInvalidTestConfig)
	})
}
