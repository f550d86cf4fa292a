package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront/checkout"
	"github.com/jrsteele09/go-storefront/persist/memstore"
)

func TestDraftRoundTrip(t *testing.T) {
	store := memstore.New()
	draft := checkout.Draft{
		Name:    "Jane Doe",
		Area:    "Salmiya",
		Block:   "4",
		Street:  "Baghdad St",
		Avenue:  "2",
		HouseNo: "17",
		Phone:   "+96550000000",
		Email:   "jane@example.com",
		Notes:   "leave at door",
	}

	checkout.Save(store, draft)

	require.Equal(t, draft, checkout.Load(store))
}

func TestLoadEmptyStoreYieldsEmptyDraft(t *testing.T) {
	require.Equal(t, checkout.Draft{}, checkout.Load(memstore.New()))
}

func TestFieldsAreStoredIndividually(t *testing.T) {
	store := memstore.New()
	checkout.Save(store, checkout.Draft{Name: "Jane", Phone: "123"})

	raw, err := store.Load("ck_name")
	require.NoError(t, err)
	assert.Equal(t, "Jane", string(raw))

	raw, err = store.Load("ck_phone")
	require.NoError(t, err)
	assert.Equal(t, "123", string(raw))
}

func TestClearRemovesAllFields(t *testing.T) {
	store := memstore.New()
	checkout.Save(store, checkout.Draft{Name: "Jane", Email: "jane@example.com"})

	checkout.Clear(store)

	require.Equal(t, checkout.Draft{}, checkout.Load(store))
	_, err := store.Load("ck_name")
	require.Error(t, err)
}
