package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/product"
	"storefront/internal/domain/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	laptop, err := product.New("MacBook Air M2", decimal.NewFromInt(1450), 100)
	require.NoError(t, err)
	earbuds, err := product.New("Bose QuietComfort Earbuds", decimal.NewFromInt(250), 500)
	require.NoError(t, err)
	return store.New(nil, laptop, earbuds)
}

func runScript(t *testing.T, st *store.Store, script string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(st, strings.NewReader(script), &out, nil)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestRun_QuitImmediately(t *testing.T) {
	out := runScript(t, newTestStore(t), "4\n")
	assert.Contains(t, out, "Store Menu")
	assert.Contains(t, out, "4. Quit")
}

func TestRun_EndOfInputStopsLoop(t *testing.T) {
	out := runScript(t, newTestStore(t), "")
	assert.Contains(t, out, "Please choose a number: ")
}

func TestRun_ListProducts(t *testing.T) {
	out := runScript(t, newTestStore(t), "1\n4\n")
	assert.Contains(t, out, "1. MacBook Air M2, Price: 1450, Quantity: 100")
	assert.Contains(t, out, "2. Bose QuietComfort Earbuds, Price: 250, Quantity: 500")
}

func TestRun_TotalAmount(t *testing.T) {
	out := runScript(t, newTestStore(t), "2\n4\n")
	assert.Contains(t, out, "Total of 600 items in store")
}

func TestRun_InvalidMenuChoice(t *testing.T) {
	out := runScript(t, newTestStore(t), "9\n4\n")
	assert.Contains(t, out, "Error with your choice! Try again!")
}

func TestRun_MakeOrder(t *testing.T) {
	st := newTestStore(t)
	// Order 2 units of product #1, then finish with an empty line.
	out := runScript(t, st, "3\n1\n2\n\n4\n")

	assert.Contains(t, out, "Product added to list!")
	assert.Contains(t, out, "Order cost: $2900.00")
	assert.Equal(t, 598, st.TotalStockCount())
}

func TestRun_OrderErrorIsPrinted(t *testing.T) {
	st := newTestStore(t)
	// Product #1 has 100 in stock; requesting 101 must fail the order.
	out := runScript(t, st, "3\n1\n101\n\n4\n")

	assert.Contains(t, out, "Error while making order!")
	assert.Contains(t, out, "not enough MacBook Air M2 in stock")
	assert.Equal(t, 600, st.TotalStockCount())
}

func TestRun_RejectsBadOrderInput(t *testing.T) {
	out := runScript(t, newTestStore(t), "3\n7\n1\n0\n5\n\n4\n")

	assert.Contains(t, out, "Only numbers between 1-2 are allowed!")
	assert.Contains(t, out, "Only positive numbers are allowed")
	assert.Contains(t, out, "Order cost: $7250.00")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(newTestStore(t), strings.NewReader("4\n"), &out, nil)
	require.ErrorIs(t, c.Run(ctx), context.Canceled)
}
