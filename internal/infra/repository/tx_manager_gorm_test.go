package repository

import (
	"context"
	"errors"
	"testing"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"
	"foodie/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fnがエラーを返したら注文作成もカートの削除も残らない
func TestTxManagerGorm_RollbackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	tm := NewTxManagerGorm(db)
	carts := NewCartGormRepository(db)
	orders := NewOrderGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, model.User{})
	rest := testutil.CreateRestaurant(t, db, "R")
	cat := testutil.CreateCategory(t, db, "C")
	food := testutil.CreateFood(t, db, "Pizza", 100, cat.ID, rest.ID)

	cart, err := carts.GetOrCreateByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, carts.UpsertItem(ctx, cart.ID, food.ID, 2, 100))

	boom := errors.New("boom")
	err = tm.WithinTx(ctx, func(r repo.TxRepos) error {
		o := model.Order{
			UserID:          user.ID,
			RestaurantID:    rest.ID,
			Items:           []model.OrderItem{{FoodID: food.ID, Name: food.Name, Quantity: 2, Price: 100}},
			DeliveryAddress: model.DeliveryAddress{Street: "s", City: "c", State: "st", ZipCode: "z"},
			TotalAmount:     200,
			Status:          model.OrderStatusPending,
			PaymentMethod:   model.DefaultPaymentMethod,
			PaymentStatus:   model.PaymentStatusPending,
		}
		if err := r.Orders().Create(ctx, &o); err != nil {
			return err
		}
		if err := r.Carts().ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := orders.Count(ctx, repo.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	cart, err = carts.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestAuditLogGorm_SearchAndTrail(t *testing.T) {
	db := testutil.NewDB(t)
	logs := NewAuditLogGormRepository(db)
	ctx := context.Background()

	entries := []model.AuditLog{
		{ActorRole: model.RolePlatformAdmin, Action: model.AuditActionAssignRole, ResourceType: model.AuditResourceUser, ResourceID: 10},
		{ActorRole: model.RoleRestaurantAdmin, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: 10},
		{ActorRole: model.RoleCourier, Action: model.AuditActionAcceptDelivery, ResourceType: model.AuditResourceOrder, ResourceID: 10},
		{ActorRole: model.RolePlatformAdmin, Action: model.AuditActionAssignRole, ResourceType: model.AuditResourceUser, ResourceID: 11},
	}
	for i := range entries {
		entries[i].ActorUserID = int64(i + 1)
		require.NoError(t, logs.Append(ctx, &entries[i]))
		require.NotZero(t, entries[i].ID)
	}

	action := model.AuditActionAssignRole
	got, total, err := logs.Search(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	// 新しい順
	assert.Equal(t, int64(11), got[0].ResourceID)

	// userIdとorderIdは対象の種類も見る
	uid := int64(10)
	got, total, err = logs.Search(ctx, repo.AuditLogFilter{UserID: &uid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, model.AuditActionAssignRole, got[0].Action)

	role := model.RoleCourier
	got, _, err = logs.Search(ctx, repo.AuditLogFilter{OrderID: &uid, ActorRole: &role})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.AuditActionAcceptDelivery, got[0].Action)

	got, total, err = logs.Search(ctx, repo.AuditLogFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, got, 1)
	assert.Equal(t, entries[0].ID, got[0].ID)

	trail, err := logs.OrderTrail(ctx, 10)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, trail[0].Action)
	assert.Equal(t, model.AuditActionAcceptDelivery, trail[1].Action)
}
