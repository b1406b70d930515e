package usecase

import (
	"context"
	"errors"

	"foodie/internal/domain/model"
	"foodie/internal/repository"
)

// 配達員向け
type DeliveryUsecase struct {
	users       repository.UserRepository
	orders      repository.OrderRepository
	orderFlow   *OrderUsecase
	deliveryFee int64
}

func NewDeliveryUsecase(
	users repository.UserRepository,
	orders repository.OrderRepository,
	orderFlow *OrderUsecase,
	deliveryFee int64,
) *DeliveryUsecase {
	return &DeliveryUsecase{users: users, orders: orders, orderFlow: orderFlow, deliveryFee: deliveryFee}
}

type DeliveryStats struct {
	TotalOrders      int64 `json:"totalOrders"`
	DeliveredOrders  int64 `json:"deliveredOrders"`
	InProgressOrders int64 `json:"inProgressOrders"`
	TotalEarnings    int64 `json:"totalEarnings"`
	IsAvailable      bool  `json:"isAvailable"`
}

// 受付可能な注文（ready かつ未割り当て）
func (u *DeliveryUsecase) Available(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.List(ctx, repository.OrderFilter{
		Statuses:   []model.OrderStatus{model.OrderStatusReady},
		Unassigned: true,
	})
	if err != nil {
		return nil, internal(err)
	}
	return toOrderOutputs(orders), nil
}

func (u *DeliveryUsecase) Mine(ctx context.Context, actor model.Actor) ([]OrderOutput, error) {
	orders, err := u.orders.List(ctx, repository.OrderFilter{DeliveryPersonID: &actor.UserID})
	if err != nil {
		return nil, internal(err)
	}
	return toOrderOutputs(orders), nil
}

func (u *DeliveryUsecase) Accept(ctx context.Context, actor model.Actor, orderID int64) (OrderOutput, error) {
	return u.orderFlow.ChangeStatus(ctx, actor, orderID, model.OrderStatusOutForDelivery)
}

func (u *DeliveryUsecase) Deliver(ctx context.Context, actor model.Actor, orderID int64) (OrderOutput, error) {
	return u.orderFlow.ChangeStatus(ctx, actor, orderID, model.OrderStatusDelivered)
}

func (u *DeliveryUsecase) SetAvailability(ctx context.Context, actor model.Actor, available bool) (UserDTO, error) {
	if err := u.users.SetAvailability(ctx, actor.UserID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, notFound("user not found")
		}
		return UserDTO{}, internal(err)
	}
	user, err := u.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return UserDTO{}, internal(err)
	}
	return toUserDTO(user), nil
}

// 報酬は配達完了件数 × 配達料
func (u *DeliveryUsecase) Stats(ctx context.Context, actor model.Actor) (DeliveryStats, error) {
	mine := func(statuses ...model.OrderStatus) (int64, error) {
		return u.orders.Count(ctx, repository.OrderFilter{DeliveryPersonID: &actor.UserID, Statuses: statuses})
	}

	var s DeliveryStats
	var err error
	if s.TotalOrders, err = mine(); err != nil {
		return DeliveryStats{}, internal(err)
	}
	if s.DeliveredOrders, err = mine(model.OrderStatusDelivered); err != nil {
		return DeliveryStats{}, internal(err)
	}
	if s.InProgressOrders, err = mine(model.OrderStatusOutForDelivery); err != nil {
		return DeliveryStats{}, internal(err)
	}
	s.TotalEarnings = s.DeliveredOrders * u.deliveryFee

	user, err := u.users.FindByID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return DeliveryStats{}, notFound("user not found")
	}
	if err != nil {
		return DeliveryStats{}, internal(err)
	}
	s.IsAvailable = user.IsAvailable
	return s, nil
}
