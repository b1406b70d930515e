package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"github.com/rs/zerolog/log"
)

// ChangeStatus は全ロール共通のステータス変更。
// 範囲チェック → 遷移表 → 条件付き更新 → 監査ログ の順に行う
func (u *OrderUsecase) ChangeStatus(ctx context.Context, actor model.Actor, orderID int64, to model.OrderStatus) (OrderOutput, error) {
	if !to.Valid() {
		return OrderOutput{}, badRequest("invalid status")
	}

	var before, after model.Order
	changed := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("order not found")
		}
		if err != nil {
			return internal(err)
		}

		if err := authorizeTransition(actor, o, to); err != nil {
			return err
		}

		// 管理者が同じ状態を指定したら何もしない
		if o.Status == to && actor.Role == model.RolePlatformAdmin {
			after = o
			return nil
		}

		if !model.CanTransition(actor.Role, o.Status, to) {
			return invalidState(transitionMessage(actor.Role, o.Status, to))
		}

		if actor.Role == model.RoleCourier && to == model.OrderStatusOutForDelivery {
			if !o.Unassigned() {
				return invalidState("order is already assigned to a delivery person")
			}
			if !actor.IsAvailable {
				return invalidState("you are not available for delivery")
			}
		}

		ok, err := casTransition(ctx, r.Orders(), actor, o, to)
		if err != nil {
			return internal(err)
		}
		if !ok {
			// 読み取り後に他のリクエストが先に更新した
			return concurrentChangeError(ctx, r.Orders(), o.ID)
		}

		after, err = r.Orders().FindByID(ctx, o.ID)
		if err != nil {
			return internal(err)
		}
		if err := writeStatusAudit(ctx, r.AuditLogs(), actor, o, after, u.now()); err != nil {
			return internal(err)
		}

		before = o
		changed = true
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	if changed {
		log.Info().
			Int64("order_id", after.ID).
			Str("from", string(before.Status)).
			Str("to", string(after.Status)).
			Str("role", string(actor.Role)).
			Msg("order status changed")
		u.publish(ctx, model.OrderEvent{
			Type:           model.OrderEventStatusChanged,
			OrderID:        after.ID,
			UserID:         after.UserID,
			RestaurantID:   after.RestaurantID,
			ActorID:        actor.UserID,
			Status:         after.Status,
			PreviousStatus: before.Status,
			TotalAmount:    after.TotalAmount,
		})
	}
	return toOrderOutput(after), nil
}

// ロールごとの範囲チェック（どの注文を触れるか）
func authorizeTransition(a model.Actor, o model.Order, to model.OrderStatus) error {
	switch a.Role {
	case model.RolePlatformAdmin:
		return nil
	case model.RoleRestaurantAdmin:
		if a.RestaurantID == nil {
			return forbidden("no restaurant assigned")
		}
		if !a.ManagesRestaurant(o.RestaurantID) {
			return forbidden("not authorized to update this order")
		}
		if !model.IsTransitionTarget(a.Role, to) {
			return invalidState("invalid status for restaurant admin")
		}
		return nil
	case model.RoleCourier:
		if !model.IsTransitionTarget(a.Role, to) {
			return invalidState("invalid status for delivery")
		}
		if to == model.OrderStatusDelivered && !o.AssignedTo(a.UserID) {
			return forbidden("not authorized to deliver this order")
		}
		return nil
	case model.RoleCustomer:
		return forbidden("not authorized to update order status")
	default:
		return forbidden("not authorized to update order status")
	}
}

func transitionMessage(role model.Role, from, to model.OrderStatus) string {
	if role == model.RoleCourier {
		switch to {
		case model.OrderStatusOutForDelivery:
			return "order is not ready for delivery"
		case model.OrderStatusDelivered:
			return "order is not out for delivery"
		}
	}
	return fmt.Sprintf("cannot change order status from %s to %s", from, to)
}

// 読み取った状態を条件にして更新する
func casTransition(ctx context.Context, orders repo.OrderRepository, a model.Actor, o model.Order, to model.OrderStatus) (bool, error) {
	switch {
	case a.Role == model.RoleCourier && to == model.OrderStatusOutForDelivery:
		return orders.ClaimForDelivery(ctx, o.ID, a.UserID)
	case a.Role == model.RoleCourier && to == model.OrderStatusDelivered:
		return orders.MarkDelivered(ctx, o.ID, a.UserID)
	default:
		return orders.TransitionStatus(ctx, o.ID, o.Status, to)
	}
}

func concurrentChangeError(ctx context.Context, orders repo.OrderRepository, orderID int64) error {
	cur, err := orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("order not found")
	}
	if err != nil {
		return internal(err)
	}
	if cur.Status == model.OrderStatusReady && !cur.Unassigned() {
		return invalidState("order is already assigned to a delivery person")
	}
	return invalidState(fmt.Sprintf("order status was changed to %s", cur.Status))
}

type statusSnapshot struct {
	Status           model.OrderStatus `json:"status"`
	DeliveryPersonID *int64            `json:"deliveryPersonId,omitempty"`
}

func writeStatusAudit(ctx context.Context, logs repo.AuditLogRepository, a model.Actor, before, after model.Order, at time.Time) error {
	action := model.AuditActionUpdateOrderStatus
	if before.Unassigned() && !after.Unassigned() {
		action = model.AuditActionAcceptDelivery
	}
	return logs.Append(ctx, &model.AuditLog{
		ActorUserID:  a.UserID,
		ActorRole:    a.Role,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   after.ID,
		BeforeJSON:   auditJSON(statusSnapshot{Status: before.Status, DeliveryPersonID: before.DeliveryPersonID}),
		AfterJSON:    auditJSON(statusSnapshot{Status: after.Status, DeliveryPersonID: after.DeliveryPersonID}),
		CreatedAt:    at,
	})
}

// 監査ログ用。失敗したら空文字
func auditJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
