package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/config"
)

func TestLoadDefaultsValidate(t *testing.T) {
	cfg, err := config.NewLoader().Load()
	require.NoError(t, err)
	require.Equal(t, 10000, cfg.Generation.NumNodes)
	require.Equal(t, "internal", cfg.Engine.Name)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emswap.yaml")
	yamlBody := "generation:\n  num_nodes: 42\nengine:\n  name: tfp\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	cfg, err := config.NewLoader(config.WithConfigPath(path)).Load()
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Generation.NumNodes)
	require.Equal(t, "tfp", cfg.Engine.Name)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emswap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  name: internal\n"), 0o600))
	t.Setenv("EMSWAP_ENGINE_NAME", "tfp")

	cfg, err := config.NewLoader(config.WithConfigPath(path)).Load()
	require.NoError(t, err)
	require.Equal(t, "tfp", cfg.Engine.Name)
}

func TestValidateRejectsUnknownEngineName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emswap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  name: bogus\n"), 0o600))

	_, err := config.NewLoader(config.WithConfigPath(path)).Load()
	require.Error(t, err)
}

func TestValidateRejectsInvertedDegreeRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emswap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  min_deg: 10\n  max_deg: 2\n"), 0o600))

	_, err := config.NewLoader(config.WithConfigPath(path)).Load()
	require.Error(t, err)
}
