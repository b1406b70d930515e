package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"foodie/internal/domain/model"
	"foodie/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUsecase_TotalIsSumOfLines(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	empty, err := e.cart.GetCart(ctx, e.customer)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, int64(0), empty.Total)

	_, err = e.cart.AddItem(ctx, e.customer, e.pizza.ID, 2)
	require.NoError(t, err)
	out, err := e.cart.AddItem(ctx, e.customer, e.soup.ID, 1)
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	var sum int64
	for _, it := range out.Items {
		assert.Equal(t, it.Price*it.Quantity, it.Subtotal)
		sum += it.Subtotal
	}
	assert.Equal(t, sum, out.Total)
	assert.Equal(t, int64(250), out.Total)
	assert.Equal(t, "Margherita Pizza", out.Items[0].Name)
}

func TestCartUsecase_DuplicateAddIncrementsLine(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.cart.AddItem(ctx, e.customer, e.pizza.ID, 1)
	require.NoError(t, err)
	out, err := e.cart.AddItem(ctx, e.customer, e.pizza.ID, 1)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, int64(200), out.Total)
}

func TestCartUsecase_AddItemErrors(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	off := false
	_, err := e.foods.Update(ctx, e.soup.ID, usecase.FoodInput{IsAvailable: &off})
	require.NoError(t, err)

	tests := []struct {
		name     string
		foodID   int64
		quantity int64
		kind     error
		status   int
	}{
		{name: "unknown food", foodID: 9999, quantity: 1, kind: usecase.ErrNotFound, status: http.StatusNotFound},
		{name: "unavailable food", foodID: e.soup.ID, quantity: 1, kind: usecase.ErrInvalidState, status: http.StatusBadRequest},
		{name: "zero quantity", foodID: e.pizza.ID, quantity: 0, kind: usecase.ErrValidation, status: http.StatusBadRequest},
		{name: "invalid food id", foodID: 0, quantity: 1, kind: usecase.ErrValidation, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.cart.AddItem(ctx, e.customer, tt.foodID, tt.quantity)
			assertHTTPError(t, err, tt.kind, tt.status)
		})
	}
}

func TestCartUsecase_UpdateRemoveClear(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.cart.AddItem(ctx, e.customer, e.pizza.ID, 1)
	require.NoError(t, err)
	out, err := e.cart.AddItem(ctx, e.customer, e.soup.ID, 1)
	require.NoError(t, err)
	pizzaLine, soupLine := out.Items[0].ID, out.Items[1].ID

	out, err = e.cart.UpdateItem(ctx, e.customer, pizzaLine, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(350), out.Total)

	// 0以下は削除
	out, err = e.cart.UpdateItem(ctx, e.customer, soupLine, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(300), out.Total)

	// 他人の明細は見つからない扱い
	other := e.newCourier(t, true)
	_, err = e.cart.GetCart(ctx, other)
	require.NoError(t, err)
	_, err = e.cart.UpdateItem(ctx, other, pizzaLine, 5)
	assertHTTPError(t, err, usecase.ErrNotFound, http.StatusNotFound)

	// 存在しない明細の削除は何もしない
	out, err = e.cart.RemoveItem(ctx, e.customer, 9999)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	out, err = e.cart.RemoveItem(ctx, e.customer, pizzaLine)
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	_, err = e.cart.AddItem(ctx, e.customer, e.pizza.ID, 1)
	require.NoError(t, err)
	out, err = e.cart.Clear(ctx, e.customer)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_UpdateWithoutCart(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.cart.UpdateItem(context.Background(), model.Actor{UserID: 9999, Role: model.RoleCustomer}, 1, 1)
	assertHTTPError(t, err, usecase.ErrNotFound, http.StatusNotFound)
}
