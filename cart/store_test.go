package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront/cart"
)

func TestAddItemInsertsWithQtyOne(t *testing.T) {
	s := cart.NewStore(nil)

	s.AddItem(cart.LineItem{ID: "p1", Price: 10})

	require.Equal(t, []cart.LineItem{{ID: "p1", Price: 10, Qty: 1}}, s.Items())
}

func TestAddItemIncrementsExisting(t *testing.T) {
	s := cart.NewStore(nil)

	for i := 0; i < 5; i++ {
		s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)
}

func TestAddItemHonoursIncomingQtyOnInsertOnly(t *testing.T) {
	s := cart.NewStore(nil)

	s.AddItem(cart.LineItem{ID: "p1", Price: 10, Qty: 3})
	require.Equal(t, 3, s.Items()[0].Qty)

	// A second add with its own qty still only increments by one.
	s.AddItem(cart.LineItem{ID: "p1", Price: 10, Qty: 7})
	require.Equal(t, 4, s.Items()[0].Qty)
}

func TestRemoveItemDecrementsThenDeletes(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	s.AddItem(cart.LineItem{ID: "p2", Price: 20})

	s.RemoveItem("p1")
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Qty)
	assert.Equal(t, cart.LineItem{ID: "p2", Price: 20, Qty: 1}, items[1])

	s.RemoveItem("p1")
	require.Equal(t, []cart.LineItem{{ID: "p2", Price: 20, Qty: 1}}, s.Items())
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})

	s.RemoveItem("missing")

	require.Len(t, s.Items(), 1)
}

func TestSetQuantityClampsToOne(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})

	s.SetQuantity("p1", 7)
	assert.Equal(t, 7, s.Items()[0].Qty)

	s.SetQuantity("p1", 0)
	assert.Equal(t, 1, s.Items()[0].Qty)

	s.SetQuantity("p1", -4)
	assert.Equal(t, 1, s.Items()[0].Qty)
}

func TestSetQuantityUnknownIDIsNoOp(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})

	s.SetQuantity("missing", 9)

	require.Equal(t, 1, s.Items()[0].Qty)
}

func TestClearEmptiesCart(t *testing.T) {
	s := cart.NewStore(nil)
	for _, id := range []string{"p1", "p2", "p3"} {
		s.AddItem(cart.LineItem{ID: id, Price: 1})
	}

	s.Clear()

	require.Empty(t, s.Items())
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "b"})
	s.AddItem(cart.LineItem{ID: "a"})
	s.AddItem(cart.LineItem{ID: "c"})
	s.AddItem(cart.LineItem{ID: "a"}) // increment must not reorder

	items := s.Items()
	require.Equal(t, "b", items[0].ID)
	require.Equal(t, "a", items[1].ID)
	require.Equal(t, "c", items[2].ID)
}

func TestTotals(t *testing.T) {
	s := cart.NewStore(nil)
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	s.AddItem(cart.LineItem{ID: "p2", Price: 2.5})

	assert.Equal(t, 3, s.TotalQuantity())
	assert.InDelta(t, 22.5, s.Subtotal(), 0.0001)
}

func TestNewStoreSanitisesSeed(t *testing.T) {
	s := cart.NewStore([]cart.LineItem{
		{ID: "p1", Qty: 0},
		{ID: "", Qty: 2},
		{ID: "p2", Qty: 3},
	})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Qty)
	assert.Equal(t, 3, items[1].Qty)
}

func TestNewStoreMergesDuplicateSeedLines(t *testing.T) {
	s := cart.NewStore([]cart.LineItem{
		{ID: "p1", Price: 10, Qty: 2},
		{ID: "p2", Price: 5, Qty: 1},
		{ID: "p1", Price: 10, Qty: 3},
	})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 5, items[0].Qty)

	// An add after hydration must land on the single merged line.
	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	items = s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 6, items[0].Qty)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	s := cart.NewStore(nil)

	var order []string
	s.Subscribe(func(items []cart.LineItem) { order = append(order, "first") })
	s.Subscribe(func(items []cart.LineItem) { order = append(order, "second") })

	s.AddItem(cart.LineItem{ID: "p1"})

	require.Equal(t, []string{"first", "second"}, order)
}

func TestSubscriberReceivesSnapshotAfterEachMutation(t *testing.T) {
	s := cart.NewStore(nil)

	var last []cart.LineItem
	s.Subscribe(func(items []cart.LineItem) { last = items })

	s.AddItem(cart.LineItem{ID: "p1", Price: 10})
	require.Equal(t, []cart.LineItem{{ID: "p1", Price: 10, Qty: 1}}, last)

	s.RemoveItem("p1")
	require.Empty(t, last)
}
