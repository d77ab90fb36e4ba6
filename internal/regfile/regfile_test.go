package regfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Items []struct {
		ID string `json:"id" yaml:"id"`
	} `json:"items" yaml:"items"`
}

func TestLoadPicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "items.yml")
	require.NoError(t, os.WriteFile(yml, []byte("items:\n  - id: a\n  - id: b\n"), 0o644))
	js := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"items":[{"id":"c"}]}`), 0o644))

	got, err := Load[doc](yml, "items")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "b", got.Items[1].ID)

	got, err = Load[doc](js, "items")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "c", got.Items[0].ID)
}

func TestDecodeUnknownExtensionTriesAll(t *testing.T) {
	got, err := Decode[doc]([]byte(`{"items":[{"id":"x"}]}`), ".conf", "items")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Items[0].ID)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode[doc]([]byte(`{not json`), ".json", "items")
	assert.ErrorContains(t, err, "items file format not recognized")

	_, err = Load[doc]("  ", "items")
	assert.ErrorContains(t, err, "items file path is empty")

	_, err = Load[doc](filepath.Join(t.TempDir(), "missing.yaml"), "items")
	assert.Error(t, err)
}
