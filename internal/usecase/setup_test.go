package usecase_test

import (
	"context"
	"errors"
	"testing"

	"foodie/internal/domain/model"
	"foodie/internal/infra/qrcode"
	infrarepo "foodie/internal/infra/repository"
	"foodie/internal/repository"
	"foodie/internal/testutil"
	"foodie/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// =====================
// EventPublisher モック
// =====================

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev model.OrderEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// 送信されたイベントを順番に返す
func (m *MockPublisher) events() []model.OrderEvent {
	var out []model.OrderEvent
	for _, c := range m.Calls {
		if c.Method == "Publish" {
			out = append(out, c.Arguments.Get(1).(model.OrderEvent))
		}
	}
	return out
}

// =====================
// テスト環境
// =====================

const testDeliveryFee = 2

type testEnv struct {
	db *gorm.DB

	users       repository.UserRepository
	restaurants *infrarepo.RestaurantGormRepository
	categories  *infrarepo.CategoryGormRepository
	foodsRepo   *infrarepo.FoodGormRepository
	carts       *infrarepo.CartGormRepository
	orders      *infrarepo.OrderGormRepository
	auditLogs   repository.AuditLogRepository
	pub         *MockPublisher

	cart            *usecase.CartUsecase
	foods           *usecase.FoodUsecase
	order           *usecase.OrderUsecase
	admin           *usecase.AdminUsecase
	restaurantAdmin *usecase.RestaurantAdminUsecase
	delivery        *usecase.DeliveryUsecase
	chat            *usecase.ChatUsecase

	// 固定データ
	restaurant model.Restaurant
	other      model.Restaurant
	pizza      model.Food
	soup       model.Food
	sushi      model.Food
	customer   model.Actor
	manager    model.Actor
	courier    model.Actor
	platform   model.Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)

	e := &testEnv{
		db:          db,
		users:       infrarepo.NewUserGormRepository(db),
		restaurants: infrarepo.NewRestaurantGormRepository(db),
		categories:  infrarepo.NewCategoryGormRepository(db),
		foodsRepo:   infrarepo.NewFoodGormRepository(db),
		carts:       infrarepo.NewCartGormRepository(db),
		orders:      infrarepo.NewOrderGormRepository(db),
		auditLogs:   infrarepo.NewAuditLogGormRepository(db),
		pub:         &MockPublisher{},
	}
	e.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	e.cart = usecase.NewCartUsecase(e.carts, e.foodsRepo)
	e.foods = usecase.NewFoodUsecase(e.foodsRepo, e.categories, e.restaurants)
	e.order = usecase.NewOrderUsecase(infrarepo.NewTxManagerGorm(db), e.orders, e.pub, qrcode.NewGenerator("http://localhost:3000"))
	e.admin = usecase.NewAdminUsecase(e.users, e.restaurants, e.categories, e.foodsRepo, e.orders, e.auditLogs)
	e.restaurantAdmin = usecase.NewRestaurantAdminUsecase(e.restaurants, e.foods, e.orders, e.order)
	e.delivery = usecase.NewDeliveryUsecase(e.users, e.orders, e.order, testDeliveryFee)
	e.chat = usecase.NewChatUsecase(e.foodsRepo, e.categories, e.restaurants)

	e.restaurant = testutil.CreateRestaurant(t, db, "Pizza Palace")
	e.other = testutil.CreateRestaurant(t, db, "Sushi Zen")
	mains := testutil.CreateCategory(t, db, "Mains")
	e.pizza = testutil.CreateFood(t, db, "Margherita Pizza", 100, mains.ID, e.restaurant.ID)
	e.soup = testutil.CreateFood(t, db, "Tomato Soup", 50, mains.ID, e.restaurant.ID)
	e.sushi = testutil.CreateFood(t, db, "Salmon Sushi", 300, mains.ID, e.other.ID)

	e.customer = testutil.CreateUser(t, db, model.User{Name: "Customer"}).Actor()
	e.manager = testutil.CreateUser(t, db, model.User{
		Name:         "Manager",
		Role:         model.RoleRestaurantAdmin,
		RestaurantID: &e.restaurant.ID,
	}).Actor()
	e.courier = testutil.CreateUser(t, db, model.User{
		Name:        "Courier",
		Role:        model.RoleCourier,
		IsAvailable: true,
	}).Actor()
	e.platform = testutil.CreateUser(t, db, model.User{Name: "Admin", Role: model.RolePlatformAdmin}).Actor()
	return e
}

func (e *testEnv) newCustomer(t *testing.T) model.Actor {
	t.Helper()
	return testutil.CreateUser(t, e.db, model.User{}).Actor()
}

// 別の配達員
func (e *testEnv) newCourier(t *testing.T, available bool) model.Actor {
	t.Helper()
	return testutil.CreateUser(t, e.db, model.User{Role: model.RoleCourier, IsAvailable: available}).Actor()
}

var testAddress = model.DeliveryAddress{Street: "1 Main St", City: "Pune", State: "MH", ZipCode: "411001"}

// ピザ2枚とスープ1杯（合計250）で注文する
func (e *testEnv) placeOrder(t *testing.T, customer model.Actor) usecase.OrderOutput {
	t.Helper()
	ctx := context.Background()
	_, err := e.cart.AddItem(ctx, customer, e.pizza.ID, 2)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, customer, e.soup.ID, 1)
	require.NoError(t, err)

	out, err := e.order.PlaceOrder(ctx, customer, usecase.PlaceOrderInput{DeliveryAddress: testAddress})
	require.NoError(t, err)
	return out
}

// 注文をreadyまで進める
func (e *testEnv) readyOrder(t *testing.T) usecase.OrderOutput {
	t.Helper()
	ctx := context.Background()
	o := e.placeOrder(t, e.customer)
	for _, st := range []model.OrderStatus{model.OrderStatusPreparing, model.OrderStatusReady} {
		var err error
		o, err = e.order.ChangeStatus(ctx, e.manager, o.ID, st)
		require.NoError(t, err)
	}
	return o
}

func (e *testEnv) orderStatus(t *testing.T, orderID int64) model.Order {
	t.Helper()
	o, err := e.orders.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	return o
}

// エラーの種類とHTTPステータスをまとめて確認
func assertHTTPError(t *testing.T, err error, kind error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not an HTTPError: %v", err)
	assert.Equal(t, status, he.Status)
}
