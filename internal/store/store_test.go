package store

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

func TestDispatchCommitsAndNotifies(t *testing.T) {
	s := NewWithEnv(seededInventory(), testEnv())

	var seen []AppState
	s.Subscribe(func(st AppState) { seen = append(seen, st) })

	err := s.Dispatch(UpdateStock{
		Actor:   testActor(),
		Entries: []StockUpdate{{ItemID: "mat-kain", QuantityChange: -5, Type: model.StockTypeAdjustment}},
	})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, 35, seen[0].Materials[0].Stock)
	assert.Equal(t, 35, s.State().Materials[0].Stock)
}

func TestDispatchRejectedActionLeavesStateAndSkipsSubscribers(t *testing.T) {
	s := NewWithEnv(seededInventory(), testEnv())

	notified := 0
	s.Subscribe(func(AppState) { notified++ })

	err := s.Dispatch(UpdateStock{
		Actor:   testActor(),
		Entries: []StockUpdate{{ItemID: "tidak-ada", QuantityChange: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, notified)
	assert.Equal(t, 40, s.State().Materials[0].Stock)
}

func TestDispatchViewSkipsFnOnRejectedAction(t *testing.T) {
	s := NewWithEnv(seededInventory(), testEnv())

	ran := false
	err := s.DispatchView(UpdateStock{
		Actor:   testActor(),
		Entries: []StockUpdate{{ItemID: "tidak-ada", QuantityChange: 1}},
	}, func(*AppState) { ran = true })
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, ran)
}

// Two checkouts racing must each read back their own order, not whichever one
// happens to sit at the head of the list when the read runs.
func TestDispatchViewReadsOwnCommitUnderContention(t *testing.T) {
	s := NewWithEnv(seededInventory(), testEnv())

	const perCustomer = 50
	customers := []string{"Andi", "Maya", "Rudi"}
	mismatches := make(chan string, len(customers)*perCustomer)

	var wg sync.WaitGroup
	for _, name := range customers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			cartKey := "sesi-" + name
			for i := 0; i < perCustomer; i++ {
				assert.NoError(t, s.Dispatch(ReplaceCart{CartKey: cartKey, Items: cartItems()}))
				err := s.DispatchView(PlaceOnlineOrder{
					CartKey: cartKey,
					Info:    model.OnlineOrder{CustomerName: name},
				}, func(st *AppState) {
					if got := st.OnlineOrders[0].CustomerName; got != name {
						mismatches <- got + " != " + name
					}
				})
				assert.NoError(t, err)
			}
		}(name)
	}
	wg.Wait()
	close(mismatches)
	for m := range mismatches {
		t.Errorf("order read back for the wrong customer: %s", m)
	}
}

func TestSubscriberSnapshotIsIsolated(t *testing.T) {
	s := NewWithEnv(seededInventory(), testEnv())

	var captured AppState
	s.Subscribe(func(st AppState) { captured = st })

	require.NoError(t, s.Dispatch(UpdateStock{
		Actor:   testActor(),
		Entries: []StockUpdate{{ItemID: "mat-kain", QuantityChange: 1, Type: model.StockTypePurchase}},
	}))

	// Mutating the snapshot must not reach the store.
	captured.Materials[0].Stock = 9999
	captured.Materials[0].PricePerUnit = decimal.NewFromInt(1)
	assert.Equal(t, 41, s.State().Materials[0].Stock)
}
