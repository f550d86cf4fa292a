package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront/catalog"
)

func int64Ptr(v int64) *int64 { return &v }

func baseForm() catalog.ProductForm {
	return catalog.ProductForm{
		Title:       "Leather boots",
		Slug:        "leather-boots",
		Description: "Hand stitched",
		CategoryID:  "c1",
		PriceInFils: 12000,
		Images:      []string{"a.jpg", "b.jpg"},
		IsActive:    true,
	}
}

func TestDiffEmptyForUnchangedForm(t *testing.T) {
	initial := baseForm()

	patch, hints := catalog.Diff(initial, initial)

	assert.Empty(t, patch)
	assert.Empty(t, hints)
}

func TestDiffContainsOnlyChangedFields(t *testing.T) {
	initial := baseForm()
	current := initial
	current.Title = "Suede boots"
	current.PriceInFils = 9000

	patch, _ := catalog.Diff(initial, current)

	require.Len(t, patch, 2)
	assert.Equal(t, "Suede boots", patch["title"])
	assert.Equal(t, int64(9000), patch["priceInFils"])
}

func TestDiffImagesComparedByValue(t *testing.T) {
	initial := baseForm()
	current := initial
	current.Images = []string{"a.jpg", "b.jpg"} // same content, different slice

	patch, _ := catalog.Diff(initial, current)
	assert.NotContains(t, patch, "images")

	current.Images = []string{"a.jpg"}
	patch, _ = catalog.Diff(initial, current)
	assert.Equal(t, []string{"a.jpg"}, patch["images"])
}

func TestDiffClearingOldPriceSendsExplicitNull(t *testing.T) {
	initial := baseForm()
	initial.OldPriceInFils = int64Ptr(15000)
	current := initial
	current.OldPriceInFils = nil

	patch, _ := catalog.Diff(initial, current)

	value, present := patch["oldPriceInFils"]
	require.True(t, present)
	assert.Nil(t, value)
}

func TestDiffSettingOldPriceSendsValue(t *testing.T) {
	initial := baseForm()
	current := initial
	current.OldPriceInFils = int64Ptr(15000)

	patch, hints := catalog.Diff(initial, current)

	assert.Equal(t, int64(15000), patch["oldPriceInFils"])
	assert.Empty(t, hints)
}

func TestDiffHintsWhenOldPriceDoesNotExceedPrice(t *testing.T) {
	initial := baseForm()
	current := initial
	current.OldPriceInFils = int64Ptr(12000) // equal to price, no discount shown

	_, hints := catalog.Diff(initial, current)

	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "should exceed")
}

func TestDiffHintsOnNegativeOldPrice(t *testing.T) {
	initial := baseForm()
	current := initial
	current.OldPriceInFils = int64Ptr(-1)

	_, hints := catalog.Diff(initial, current)

	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "negative")
}

func TestDiffHintUsesUnchangedBaselinePrice(t *testing.T) {
	// Only the old price changes; the hint must compare against the
	// initial price that will remain in force.
	initial := baseForm()
	current := initial
	current.OldPriceInFils = int64Ptr(20000)

	_, hints := catalog.Diff(initial, current)

	assert.Empty(t, hints)
}

func TestFormOfExtractsEditableFields(t *testing.T) {
	product := catalog.Product{
		ID:          "p1",
		Title:       "Boots",
		Slug:        "boots",
		CategoryID:  "c1",
		PriceInFils: 5000,
		Images:      []string{"a.jpg"},
		IsActive:    true,
		Rating:      4.2, // not editable, not part of the form
	}

	form := catalog.FormOf(product)

	assert.Equal(t, "Boots", form.Title)
	assert.Equal(t, int64(5000), form.PriceInFils)
	assert.True(t, form.IsActive)
}
