package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	b := Default()
	assert.Equal(t, "Pulse Mobile", b.Name)
	assert.Equal(t, "#8a2be2", b.Colors.Primary)
	assert.NotEmpty(t, b.Logo.Light)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), b)
}

func TestLoadPartialFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yaml")
	content := `
name: "Pulse Mobile Staging"
colors:
  primary: "#123456"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	b, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Pulse Mobile Staging", b.Name)
	assert.Equal(t, "#123456", b.Colors.Primary)
	// Unnamed fields keep their defaults
	assert.Equal(t, "#4cd964", b.Colors.Success)
	assert.Equal(t, Default().Logo, b.Logo)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
