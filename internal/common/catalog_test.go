package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
payment_methods:
  - id: bkash
    name: bKash
  - id: nagad
    name: Nagad
services:
  - id: grameenphone
    name: Grameenphone
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Len(t, catalog.PaymentMethods, 2)
	assert.True(t, catalog.HasMethod("BKASH"))
	assert.False(t, catalog.HasMethod("rocket"))
	assert.True(t, catalog.HasService("grameenphone"))
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	_, err := ParseCatalog([]byte("payment_methods:\n  - name: nameless\n"))
	assert.ErrorContains(t, err, "missing id")

	_, err = ParseCatalog([]byte("services:\n  - id: gp\n  - id: GP\n"))
	assert.ErrorContains(t, err, "duplicate service")

	_, err = ParseCatalog([]byte("services: [unterminated"))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	catalog, err := LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Nil(t, catalog)

	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))
	catalog, err = LoadCatalog(path)
	require.NoError(t, err)
	require.NotNil(t, catalog)
	assert.Len(t, catalog.Services, 1)
}
