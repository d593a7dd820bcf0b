package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
)

func writeMapFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDeviceMap(t *testing.T) {
	t.Parallel()

	path := writeMapFile(t, `devices:
  - ip: 10.0.0.10
    office: HQ
    direction: IN
  - ip: 10.0.0.11
    office: HQ
    direction: OUT
`)

	mappings, err := LoadDeviceMap(path)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "10.0.0.10", mappings[0].IP)
	assert.Equal(t, "HQ", mappings[0].OfficeLabel)
	assert.Equal(t, event.DirectionIn, mappings[0].Direction)
	assert.Equal(t, event.DirectionOut, mappings[1].Direction)
}

func TestLoadDeviceMap_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	mappings, err := LoadDeviceMap("")
	require.NoError(t, err)
	assert.Empty(t, mappings)

	mappings, err = LoadDeviceMap(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, mappings)
}

func TestLoadDeviceMap_InvalidDirection(t *testing.T) {
	t.Parallel()

	path := writeMapFile(t, `devices:
  - ip: 10.0.0.10
    office: HQ
    direction: SIDEWAYS
`)

	_, err := LoadDeviceMap(path)
	require.Error(t, err)
}

func TestLoadDeviceMap_MissingIP(t *testing.T) {
	t.Parallel()

	path := writeMapFile(t, `devices:
  - office: HQ
    direction: IN
`)

	_, err := LoadDeviceMap(path)
	require.Error(t, err)
}
