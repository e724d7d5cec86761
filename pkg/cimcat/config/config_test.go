package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.Colors.RedARGB, "FFFF0000")
	assert.ElementsMatch(t, []int{3, 10, 46}, cfg.Colors.RedIndexed)
	assert.ElementsMatch(t, []int{5, 6, 7}, cfg.Colors.RedThemeIndices)
	assert.Equal(t, -0.5, cfg.Colors.RedThemeTintThreshold)
	assert.Equal(t, 1095, cfg.Defaults.StorageDepth)
	assert.Equal(t, "Categories", cfg.Sheets.Categories)
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#", cfg.Namespaces.RDF)
	assert.NotEmpty(t, cfg.ParentUID)
}

func TestLoadWithoutSources(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cimcat.yaml")
	content := `
sheets:
  categories: "Опросный лист"
defaults:
  storage_depth: 365
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "Опросный лист", cfg.Sheets.Categories)
	assert.Equal(t, 365, cfg.Defaults.StorageDepth)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Templates", cfg.Sheets.Templates)
	assert.Contains(t, cfg.Colors.RedARGB, "FFFF0000")
}

func TestLoadLayersFlagsOverFile(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("parent-uid", "", "")
	require.NoError(t, flags.Parse([]string{"--parent-uid", "AAAA-BBBB"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "AAAA-BBBB", cfg.ParentUID)
}

func TestLoadUnchangedFlagDoesNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("parent-uid", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, Default().ParentUID, cfg.ParentUID, "an unset flag must not wipe the default")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}
