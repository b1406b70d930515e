package usecase

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"
)

// レストラン管理者向け。すべて actor.RestaurantID の範囲に限る
type RestaurantAdminUsecase struct {
	restaurants repository.RestaurantRepository
	foods       *FoodUsecase
	orders      repository.OrderRepository
	orderFlow   *OrderUsecase
}

func NewRestaurantAdminUsecase(
	restaurants repository.RestaurantRepository,
	foods *FoodUsecase,
	orders repository.OrderRepository,
	orderFlow *OrderUsecase,
) *RestaurantAdminUsecase {
	return &RestaurantAdminUsecase{
		restaurants: restaurants,
		foods:       foods,
		orders:      orders,
		orderFlow:   orderFlow,
	}
}

type RestaurantAdminStats struct {
	TotalFoods      int64 `json:"totalFoods"`
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	PreparingOrders int64 `json:"preparingOrders"`
	ReadyOrders     int64 `json:"readyOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
}

func ownRestaurant(a model.Actor) (int64, error) {
	if a.Role != model.RoleRestaurantAdmin || a.RestaurantID == nil {
		return 0, forbidden("no restaurant assigned")
	}
	return *a.RestaurantID, nil
}

func (u *RestaurantAdminUsecase) Restaurant(ctx context.Context, actor model.Actor) (model.Restaurant, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return model.Restaurant{}, err
	}
	r, err := u.restaurants.FindByID(ctx, rid)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Restaurant{}, notFound("restaurant not found")
	}
	if err != nil {
		return model.Restaurant{}, internal(err)
	}
	return r, nil
}

func (u *RestaurantAdminUsecase) ListFoods(ctx context.Context, actor model.Actor, page, limit int) (FoodListOutput, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return FoodListOutput{}, err
	}
	return u.foods.List(ctx, ListFoodsInput{
		RestaurantID:       &rid,
		Page:               page,
		Limit:              limit,
		IncludeUnavailable: true,
	})
}

// 作成先は常に自分のレストラン
func (u *RestaurantAdminUsecase) CreateFood(ctx context.Context, actor model.Actor, in FoodInput) (model.Food, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return model.Food{}, err
	}
	in.RestaurantID = &rid
	return u.foods.Create(ctx, in)
}

func (u *RestaurantAdminUsecase) UpdateFood(ctx context.Context, actor model.Actor, foodID int64, in FoodInput) (model.Food, error) {
	rid, err := u.ownFood(ctx, actor, foodID)
	if err != nil {
		return model.Food{}, err
	}
	// 別レストランへの付け替えは不可
	in.RestaurantID = &rid
	return u.foods.Update(ctx, foodID, in)
}

func (u *RestaurantAdminUsecase) DeleteFood(ctx context.Context, actor model.Actor, foodID int64) error {
	if _, err := u.ownFood(ctx, actor, foodID); err != nil {
		return err
	}
	return u.foods.Delete(ctx, foodID)
}

func (u *RestaurantAdminUsecase) ownFood(ctx context.Context, actor model.Actor, foodID int64) (int64, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return 0, err
	}
	f, err := u.foods.Get(ctx, foodID)
	if err != nil {
		return 0, err
	}
	if f.RestaurantID != rid {
		return 0, forbidden("not authorized to modify this food")
	}
	return rid, nil
}

func (u *RestaurantAdminUsecase) ListOrders(ctx context.Context, actor model.Actor, status string) ([]OrderOutput, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return nil, err
	}
	f := repository.OrderFilter{RestaurantID: &rid}
	if strings.TrimSpace(status) != "" {
		st, ok := model.ParseOrderStatus(status)
		if !ok {
			return nil, badRequest("invalid status")
		}
		f.Statuses = []model.OrderStatus{st}
	}
	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, internal(err)
	}
	return toOrderOutputs(orders), nil
}

func (u *RestaurantAdminUsecase) UpdateOrderStatus(ctx context.Context, actor model.Actor, orderID int64, status string) (OrderOutput, error) {
	if _, err := ownRestaurant(actor); err != nil {
		return OrderOutput{}, err
	}
	st, ok := model.ParseOrderStatus(status)
	if !ok {
		return OrderOutput{}, badRequest("invalid status for restaurant admin")
	}
	return u.orderFlow.ChangeStatus(ctx, actor, orderID, st)
}

func (u *RestaurantAdminUsecase) Stats(ctx context.Context, actor model.Actor) (RestaurantAdminStats, error) {
	rid, err := ownRestaurant(actor)
	if err != nil {
		return RestaurantAdminStats{}, err
	}

	var s RestaurantAdminStats
	if s.TotalFoods, err = u.foods.foods.Count(ctx, &rid); err != nil {
		return RestaurantAdminStats{}, internal(err)
	}

	count := func(statuses ...model.OrderStatus) (int64, error) {
		return u.orders.Count(ctx, repository.OrderFilter{RestaurantID: &rid, Statuses: statuses})
	}
	if s.TotalOrders, err = count(); err != nil {
		return RestaurantAdminStats{}, internal(err)
	}
	if s.PendingOrders, err = count(model.OrderStatusPending); err != nil {
		return RestaurantAdminStats{}, internal(err)
	}
	if s.PreparingOrders, err = count(model.OrderStatusPreparing); err != nil {
		return RestaurantAdminStats{}, internal(err)
	}
	if s.ReadyOrders, err = count(model.OrderStatusReady); err != nil {
		return RestaurantAdminStats{}, internal(err)
	}

	s.TotalRevenue, err = u.orders.SumTotalAmount(ctx, repository.OrderFilter{
		RestaurantID: &rid,
		Statuses:     []model.OrderStatus{model.OrderStatusDelivered},
	})
	if err != nil {
		return RestaurantAdminStats{}, internal(err)
	}
	return s, nil
}
