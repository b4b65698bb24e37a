// ABOUTME: Tests for catalog loading and product name resolution
// ABOUTME: Covers name/keyword matching, catalog-order tie-breaks, and misses

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_MatchesProductName(t *testing.T) {
	c := New([]Product{
		{ProductID: "p1", ProductName: "hex bolt", Keywords: []string{"fastener"}},
		{ProductID: "p2", ProductName: "washer", Keywords: []string{"spacer"}},
	})

	id, ok := c.Resolve("bolt")
	require.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestResolve_MatchesKeyword(t *testing.T) {
	c := New([]Product{
		{ProductID: "p1", ProductName: "hex bolt", Keywords: []string{"bolt", "fastener"}},
	})

	id, ok := c.Resolve("fastener")
	require.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	c := New([]Product{
		{ProductID: "p1", ProductName: "Hex Bolt", Keywords: nil},
	})

	id, ok := c.Resolve("BOLT")
	require.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestResolve_FirstMatchWinsInCatalogOrder(t *testing.T) {
	// Both products match "bolt"; the first-listed one must win.
	c := New([]Product{
		{ProductID: "p1", ProductName: "hex bolt", Keywords: nil},
		{ProductID: "p2", ProductName: "carriage bolt", Keywords: nil},
	})

	id, ok := c.Resolve("bolt")
	require.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestResolve_NameCheckedBeforeKeywords(t *testing.T) {
	// p1 matches only by keyword, p2 by name. p1 is earlier in catalog order,
	// so p1 still wins: order across products trumps name-vs-keyword.
	c := New([]Product{
		{ProductID: "p1", ProductName: "washer", Keywords: []string{"bolt"}},
		{ProductID: "p2", ProductName: "hex bolt", Keywords: nil},
	})

	id, ok := c.Resolve("bolt")
	require.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestResolve_NoMatchIsNotAnError(t *testing.T) {
	c := New([]Product{
		{ProductID: "p1", ProductName: "hex bolt", Keywords: []string{"fastener"}},
	})

	id, ok := c.Resolve("widget")
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	c := New(nil)

	_, ok := c.Resolve("anything")
	assert.False(t, ok)
}

func TestLoad_ReadsJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	content := `[
		{"product_id": "p1", "product_name": "hex bolt", "keywords": ["bolt", "fastener"]},
		{"product_id": "p2", "product_name": "washer", "keywords": ["spacer"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	id, ok := c.Resolve("spacer")
	require.True(t, ok)
	assert.Equal(t, "p2", id)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
