package catalogfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	t.Run("LegacySingleImage", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", `[
			{
				"id": 1,
				"name": "Organic Cotton T-Shirt",
				"description": "100% organic cotton",
				"category": "Clothing",
				"price": 29.99,
				"sustainabilityScore": 9.2,
				"carbonFootprint": 2.1,
				"certifications": ["Organic", "Fair Trade"],
				"image": "https://example.com/shirt.jpg"
			}
		]`)

		ps, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ps, 1)

		p := ps[0]
		assert.Equal(t, 1, p.ID)
		assert.Equal(t, "Organic Cotton T-Shirt", p.Name)
		assert.Equal(t, "Clothing", p.Category)
		assert.InDelta(t, 29.99, p.Price, 1e-9)
		assert.InDelta(t, 9.2, p.SustainabilityScore, 1e-9)
		assert.InDelta(t, 2.1, p.CarbonFootprint, 1e-9)
		assert.Equal(t, []string{"Organic", "Fair Trade"}, p.Certifications)

		require.Len(t, p.Images, 1)
		assert.Equal(t, "https://example.com/shirt.jpg", p.Images[0].URL)
		assert.Equal(t, p.Name, p.Images[0].Alt)
	})

	t.Run("ImagesSequencePreferred", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", `[
			{
				"id": 1,
				"name": "Bamboo Water Bottle",
				"category": "Lifestyle",
				"price": 24.99,
				"image": "https://example.com/legacy.jpg",
				"images": [
					{"url": "https://example.com/front.jpg", "alt": "front"},
					{"url": "https://example.com/side.jpg", "alt": "side"}
				]
			}
		]`)

		ps, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ps, 1)

		require.Len(t, ps[0].Images, 2)
		assert.Equal(t, "https://example.com/front.jpg", ps[0].Images[0].URL)
		assert.Equal(t, "front", ps[0].Images[0].Alt)
	})

	t.Run("ShippedCatalog", func(t *testing.T) {
		ps, err := Load("../../../data/catalog.json")
		require.NoError(t, err)
		assert.Len(t, ps, 25)
	})
}

func TestLoadCSV(t *testing.T) {
	path := writeCatalog(t, "catalog.csv",
		"id,name,description,category,price,sustainability_score,carbon_footprint,certifications,image\n"+
			"1,Organic Cotton T-Shirt,100% organic cotton,Clothing,29.99,9.2,2.1,Organic; Fair Trade,https://example.com/shirt.jpg\n"+
			"2,Bamboo Water Bottle,Reusable bottle,Lifestyle,24.99,8.8,1.5,Biodegradable,https://example.com/bottle.jpg\n",
	)

	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)

	assert.Equal(t, 1, ps[0].ID)
	assert.Equal(t, []string{"Organic", "Fair Trade"}, ps[0].Certifications)
	assert.InDelta(t, 8.8, ps[1].SustainabilityScore, 1e-9)
	require.Len(t, ps[1].Images, 1)
	assert.Equal(t, "https://example.com/bottle.jpg", ps[1].Images[0].URL)
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		path := writeCatalog(t, "catalog.yaml", "products: []")

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", `[
			{"id": 1, "name": "A", "category": "X", "price": 1, "image": "u"},
			{"id": 1, "name": "B", "category": "X", "price": 2, "image": "u"}
		]`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("NoImage", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", `[
			{"id": 1, "name": "A", "category": "X", "price": 1}
		]`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", `[
			{"id": 1, "name": "A", "category": "X", "price": -1, "image": "u"}
		]`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		path := writeCatalog(t, "catalog.json", "{broken")

		_, err := Load(path)
		assert.Error(t, err)
	})
}
