package catalog

import "fmt"

// ProductForm is the editable subset of a product used when building a
// partial update. OldPriceInFils nil means no discount is set.
type ProductForm struct {
	Title          string
	Slug           string
	Description    string
	CategoryID     string
	PriceInFils    int64
	OldPriceInFils *int64
	Images         []string
	IsActive       bool
}

// FormOf extracts the editable fields from a fetched product, to be held
// as the baseline snapshot while the form is edited.
func FormOf(p Product) ProductForm {
	return ProductForm{
		Title:          p.Title,
		Slug:           p.Slug,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		PriceInFils:    p.PriceInFils,
		OldPriceInFils: p.OldPriceInFils,
		Images:         p.Images,
		IsActive:       p.IsActive,
	}
}

// Patch is a partial product update containing only changed fields.
// A present key with a nil value clears that field on the server.
type Patch map[string]interface{}

// Diff compares the current form state against the initial snapshot and
// builds the PATCH payload. Clearing a previously set OldPriceInFils is
// encoded as an explicit null so the server removes the discount.
//
// The returned hints are advisory validation messages for the UI; the
// server performs the authoritative checks.
func Diff(initial, current ProductForm) (Patch, []string) {
	patch := Patch{}

	if current.Title != initial.Title {
		patch["title"] = current.Title
	}
	if current.Slug != initial.Slug {
		patch["slug"] = current.Slug
	}
	if current.Description != initial.Description {
		patch["description"] = current.Description
	}
	if current.CategoryID != initial.CategoryID {
		patch["categoryId"] = current.CategoryID
	}
	if current.PriceInFils != initial.PriceInFils {
		patch["priceInFils"] = current.PriceInFils
	}
	if !equalOldPrice(initial.OldPriceInFils, current.OldPriceInFils) {
		if current.OldPriceInFils == nil {
			patch["oldPriceInFils"] = nil
		} else {
			patch["oldPriceInFils"] = *current.OldPriceInFils
		}
	}
	if !equalImages(initial.Images, current.Images) {
		patch["images"] = current.Images
	}
	if current.IsActive != initial.IsActive {
		patch["isActive"] = current.IsActive
	}

	return patch, discountHints(initial, current, patch)
}

// discountHints checks the price/old-price relationship the form would
// submit. Non-authoritative: shown to the user, never blocks the request.
func discountHints(initial, current ProductForm, patch Patch) []string {
	var hints []string

	price := initial.PriceInFils
	if _, ok := patch["priceInFils"]; ok {
		price = current.PriceInFils
	}

	oldPrice := initial.OldPriceInFils
	if _, ok := patch["oldPriceInFils"]; ok {
		oldPrice = current.OldPriceInFils
	}

	if oldPrice != nil {
		if *oldPrice < 0 {
			hints = append(hints, "old price must not be negative")
		} else if *oldPrice <= price {
			hints = append(hints, fmt.Sprintf("old price (%d) should exceed the current price (%d) to show a discount", *oldPrice, price))
		}
	}
	return hints
}

func equalOldPrice(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalImages(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
