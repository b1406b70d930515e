package repository

import (
	"context"
	"testing"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"
	"foodie/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartGorm_GetOrCreateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	carts := NewCartGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, model.User{})

	_, err := carts.FindByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	c1, err := carts.GetOrCreateByUserID(ctx, user.ID)
	require.NoError(t, err)
	c2, err := carts.GetOrCreateByUserID(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	assert.Empty(t, c2.Items)
}

// 同じ料理の追加は1行にまとまり、価格は最初の追加時のまま
func TestCartGorm_UpsertItemMergesLines(t *testing.T) {
	db := testutil.NewDB(t)
	carts := NewCartGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, model.User{})
	rest := testutil.CreateRestaurant(t, db, "R")
	cat := testutil.CreateCategory(t, db, "C")
	pizza := testutil.CreateFood(t, db, "Pizza", 100, cat.ID, rest.ID)
	soup := testutil.CreateFood(t, db, "Soup", 50, cat.ID, rest.ID)

	cart, err := carts.GetOrCreateByUserID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, carts.UpsertItem(ctx, cart.ID, pizza.ID, 1, 100))
	require.NoError(t, carts.UpsertItem(ctx, cart.ID, pizza.ID, 2, 120))
	require.NoError(t, carts.UpsertItem(ctx, cart.ID, soup.ID, 1, 50))

	got, err := carts.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	assert.Equal(t, pizza.ID, got.Items[0].FoodID)
	assert.Equal(t, int64(3), got.Items[0].Quantity)
	assert.Equal(t, int64(100), got.Items[0].Price)
	require.NotNil(t, got.Items[0].Food)
	assert.Equal(t, "Pizza", got.Items[0].Food.Name)

	assert.Equal(t, int64(350), got.Total())

	assert.Error(t, carts.UpsertItem(ctx, cart.ID, soup.ID, 0, 50))
}

func TestCartGorm_ItemOpsAreScopedToCart(t *testing.T) {
	db := testutil.NewDB(t)
	carts := NewCartGormRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, model.User{})
	bob := testutil.CreateUser(t, db, model.User{})
	rest := testutil.CreateRestaurant(t, db, "R")
	cat := testutil.CreateCategory(t, db, "C")
	food := testutil.CreateFood(t, db, "Pizza", 100, cat.ID, rest.ID)

	aCart, err := carts.GetOrCreateByUserID(ctx, alice.ID)
	require.NoError(t, err)
	bCart, err := carts.GetOrCreateByUserID(ctx, bob.ID)
	require.NoError(t, err)

	require.NoError(t, carts.UpsertItem(ctx, aCart.ID, food.ID, 1, 100))
	aCart, err = carts.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	itemID := aCart.Items[0].ID

	// 他人のカートIDでは触れない
	assert.ErrorIs(t, carts.UpdateItemQuantity(ctx, bCart.ID, itemID, 5), repo.ErrNotFound)
	assert.ErrorIs(t, carts.DeleteItem(ctx, bCart.ID, itemID), repo.ErrNotFound)

	require.NoError(t, carts.UpdateItemQuantity(ctx, aCart.ID, itemID, 4))
	aCart, err = carts.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), aCart.Items[0].Quantity)

	require.NoError(t, carts.ClearItems(ctx, aCart.ID))
	aCart, err = carts.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aCart.Items)
}
