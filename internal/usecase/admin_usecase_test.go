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

// 配達完了した250の注文1件が売上になる
func TestStats_RevenueCountsDeliveredOnly(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	o := e.readyOrder(t)
	_, err := e.delivery.Accept(ctx, e.courier, o.ID)
	require.NoError(t, err)
	_, err = e.delivery.Deliver(ctx, e.courier, o.ID)
	require.NoError(t, err)

	// 未完了の注文は売上に入らない
	e.placeOrder(t, e.customer)

	s, err := e.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, usecase.AdminStats{
		TotalUsers:       4,
		TotalFoods:       3,
		TotalOrders:      2,
		TotalCategories:  1,
		TotalRestaurants: 2,
		Orders:           usecase.OrderStatusCounts{Pending: 1, Preparing: 0, Delivered: 1},
		TotalRevenue:     250,
	}, s)

	rs, err := e.restaurantAdmin.Stats(ctx, e.manager)
	require.NoError(t, err)
	assert.Equal(t, usecase.RestaurantAdminStats{
		TotalFoods:    2,
		TotalOrders:   2,
		PendingOrders: 1,
		TotalRevenue:  250,
	}, rs)

	ds, err := e.delivery.Stats(ctx, e.courier)
	require.NoError(t, err)
	assert.Equal(t, usecase.DeliveryStats{
		TotalOrders:     1,
		DeliveredOrders: 1,
		TotalEarnings:   testDeliveryFee,
		IsAvailable:     true,
	}, ds)
}

func TestAdminUsecase_AssignRole(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	target := e.newCustomer(t)
	missing := int64(9999)

	tests := []struct {
		name   string
		userID int64
		in     usecase.AssignRoleInput
		kind   error
		status int
	}{
		{name: "unknown role", userID: target.UserID, in: usecase.AssignRoleInput{Role: "owner"}, kind: usecase.ErrValidation, status: http.StatusBadRequest},
		{name: "restaurant admin without restaurant", userID: target.UserID, in: usecase.AssignRoleInput{Role: "restaurant_admin"}, kind: usecase.ErrValidation, status: http.StatusBadRequest},
		{name: "restaurant admin with unknown restaurant", userID: target.UserID, in: usecase.AssignRoleInput{Role: "restaurant_admin", RestaurantID: &missing}, kind: usecase.ErrNotFound, status: http.StatusNotFound},
		{name: "unknown user", userID: missing, in: usecase.AssignRoleInput{Role: "delivery"}, kind: usecase.ErrNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.admin.AssignRole(ctx, e.platform, tt.userID, tt.in)
			assertHTTPError(t, err, tt.kind, tt.status)
		})
	}

	out, err := e.admin.AssignRole(ctx, e.platform, target.UserID, usecase.AssignRoleInput{
		Role:         "restaurant_admin",
		RestaurantID: &e.other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleRestaurantAdmin), out.Role)
	require.NotNil(t, out.RestaurantID)
	assert.Equal(t, e.other.ID, *out.RestaurantID)

	rest, err := e.restaurants.FindByID(ctx, e.other.ID)
	require.NoError(t, err)
	require.NotNil(t, rest.AdminID)
	assert.Equal(t, target.UserID, *rest.AdminID)

	// 別ロールに変えると担当レストランは外れる
	out, err = e.admin.AssignRole(ctx, e.platform, target.UserID, usecase.AssignRoleInput{Role: "delivery"})
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleCourier), out.Role)
	assert.Nil(t, out.RestaurantID)

	action := string(model.AuditActionAssignRole)
	page, err := e.admin.AuditLogs(ctx, usecase.AuditLogQuery{Action: action, UserID: &target.UserID})
	require.NoError(t, err)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, e.platform.UserID, page.Logs[0].ActorUserID)
	assert.JSONEq(t, `{"role":"delivery"}`, page.Logs[0].AfterJSON)
}

func TestAdminUsecase_ForceLogout(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.admin.ForceLogout(ctx, e.platform, e.customer.UserID))

	u, err := e.users.FindByID(ctx, e.customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.TokenVersion)

	page, err := e.admin.AuditLogs(ctx, usecase.AuditLogQuery{UserID: &e.customer.UserID, ActorRole: "admin"})
	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, model.AuditActionForceLogout, page.Logs[0].Action)
	assert.JSONEq(t, `{"tokenVersion":1}`, page.Logs[0].AfterJSON)

	err = e.admin.ForceLogout(ctx, e.platform, 9999)
	assertHTTPError(t, err, usecase.ErrNotFound, http.StatusNotFound)
}

func TestRestaurantAdminUsecase_FoodOwnership(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	name, desc, price := "Garlic Bread", "warm", int64(40)
	created, err := e.restaurantAdmin.CreateFood(ctx, e.manager, usecase.FoodInput{
		Name:         &name,
		Description:  &desc,
		Price:        &price,
		CategoryID:   &e.pizza.CategoryID,
		RestaurantID: &e.other.ID,
	})
	require.NoError(t, err)
	// 指定に関係なく自分のレストランに作られる
	assert.Equal(t, e.restaurant.ID, created.RestaurantID)

	off := false
	_, err = e.restaurantAdmin.UpdateFood(ctx, e.manager, created.ID, usecase.FoodInput{IsAvailable: &off})
	require.NoError(t, err)

	list, err := e.restaurantAdmin.ListFoods(ctx, e.manager, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total, "unavailable foods are listed for the owner")

	_, err = e.restaurantAdmin.UpdateFood(ctx, e.manager, e.sushi.ID, usecase.FoodInput{IsAvailable: &off})
	assertHTTPError(t, err, usecase.ErrForbidden, http.StatusForbidden)
	err = e.restaurantAdmin.DeleteFood(ctx, e.manager, e.sushi.ID)
	assertHTTPError(t, err, usecase.ErrForbidden, http.StatusForbidden)

	require.NoError(t, e.restaurantAdmin.DeleteFood(ctx, e.manager, created.ID))

	_, err = e.restaurantAdmin.Restaurant(ctx, model.Actor{UserID: 1, Role: model.RoleRestaurantAdmin})
	assertHTTPError(t, err, usecase.ErrForbidden, http.StatusForbidden)

	rest, err := e.restaurantAdmin.Restaurant(ctx, e.manager)
	require.NoError(t, err)
	assert.Equal(t, "Pizza Palace", rest.Name)
}

func TestRestaurantAdminUsecase_ListOrders(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	o := e.placeOrder(t, e.customer)
	_, err := e.restaurantAdmin.UpdateOrderStatus(ctx, e.manager, o.ID, "preparing")
	require.NoError(t, err)
	e.placeOrder(t, e.customer)

	all, err := e.restaurantAdmin.ListOrders(ctx, e.manager, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	preparing, err := e.restaurantAdmin.ListOrders(ctx, e.manager, "preparing")
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, o.ID, preparing[0].ID)

	_, err = e.restaurantAdmin.ListOrders(ctx, e.manager, "lost")
	assertHTTPError(t, err, usecase.ErrValidation, http.StatusBadRequest)

	_, err = e.restaurantAdmin.UpdateOrderStatus(ctx, e.manager, o.ID, "lost")
	assertHTTPError(t, err, usecase.ErrValidation, http.StatusBadRequest)

	otherManager := model.Actor{UserID: 777, Role: model.RoleRestaurantAdmin, RestaurantID: &e.other.ID}
	none, err := e.restaurantAdmin.ListOrders(ctx, otherManager, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeliveryUsecase_Availability(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	out, err := e.delivery.SetAvailability(ctx, e.courier, false)
	require.NoError(t, err)
	assert.False(t, out.IsAvailable)

	mine, err := e.delivery.Mine(ctx, e.courier)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = e.delivery.SetAvailability(ctx, model.Actor{UserID: 9999, Role: model.RoleCourier}, true)
	assertHTTPError(t, err, usecase.ErrNotFound, http.StatusNotFound)
}
