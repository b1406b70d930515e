package usecase

import (
	"context"
	"errors"
	"time"

	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/rs/zerolog/log"
)

// プラットフォーム管理者向け
type AdminUsecase struct {
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	foods       repository.FoodRepository
	orders      repository.OrderRepository
	auditLogs   repository.AuditLogRepository
	now         func() time.Time
}

func NewAdminUsecase(
	users repository.UserRepository,
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	foods repository.FoodRepository,
	orders repository.OrderRepository,
	auditLogs repository.AuditLogRepository,
) *AdminUsecase {
	return &AdminUsecase{
		users:       users,
		restaurants: restaurants,
		categories:  categories,
		foods:       foods,
		orders:      orders,
		auditLogs:   auditLogs,
		now:         time.Now,
	}
}

type OrderStatusCounts struct {
	Pending   int64 `json:"pending"`
	Preparing int64 `json:"preparing"`
	Delivered int64 `json:"delivered"`
}

type AdminStats struct {
	TotalUsers       int64             `json:"totalUsers"`
	TotalFoods       int64             `json:"totalFoods"`
	TotalOrders      int64             `json:"totalOrders"`
	TotalCategories  int64             `json:"totalCategories"`
	TotalRestaurants int64             `json:"totalRestaurants"`
	Orders           OrderStatusCounts `json:"orders"`
	TotalRevenue     int64             `json:"totalRevenue"`
}

type AssignRoleInput struct {
	Role         string
	RestaurantID *int64
}

type AuditLogQuery struct {
	ActorUserID *int64
	ActorRole   string
	Action      string
	OrderID     *int64
	UserID      *int64
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}

type AuditLogPage struct {
	Logs  []model.AuditLog
	Total int64
	Page  int
}

// 売上は配達完了の注文だけ
func (u *AdminUsecase) Stats(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	var err error

	if s.TotalUsers, err = u.users.Count(ctx); err != nil {
		return AdminStats{}, internal(err)
	}
	if s.TotalFoods, err = u.foods.Count(ctx, nil); err != nil {
		return AdminStats{}, internal(err)
	}
	if s.TotalOrders, err = u.orders.Count(ctx, repository.OrderFilter{}); err != nil {
		return AdminStats{}, internal(err)
	}
	if s.TotalCategories, err = u.categories.Count(ctx); err != nil {
		return AdminStats{}, internal(err)
	}
	if s.TotalRestaurants, err = u.restaurants.Count(ctx); err != nil {
		return AdminStats{}, internal(err)
	}

	counts := map[model.OrderStatus]*int64{
		model.OrderStatusPending:   &s.Orders.Pending,
		model.OrderStatusPreparing: &s.Orders.Preparing,
		model.OrderStatusDelivered: &s.Orders.Delivered,
	}
	for st, dst := range counts {
		n, err := u.orders.Count(ctx, repository.OrderFilter{Statuses: []model.OrderStatus{st}})
		if err != nil {
			return AdminStats{}, internal(err)
		}
		*dst = n
	}

	s.TotalRevenue, err = u.orders.SumTotalAmount(ctx, repository.OrderFilter{
		Statuses: []model.OrderStatus{model.OrderStatusDelivered},
	})
	if err != nil {
		return AdminStats{}, internal(err)
	}
	return s, nil
}

// ロール変更。restaurant_adminには担当レストランが必須
func (u *AdminUsecase) AssignRole(ctx context.Context, actor model.Actor, userID int64, in AssignRoleInput) (UserDTO, error) {
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return UserDTO{}, badRequest("invalid role")
	}

	target, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return UserDTO{}, notFound("user not found")
	}
	if err != nil {
		return UserDTO{}, internal(err)
	}

	var restaurantID *int64
	switch role {
	case model.RoleRestaurantAdmin:
		if in.RestaurantID == nil {
			return UserDTO{}, badRequest("restaurantId is required for restaurant_admin")
		}
		if _, err := u.restaurants.FindByID(ctx, *in.RestaurantID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return UserDTO{}, notFound("restaurant not found")
			}
			return UserDTO{}, internal(err)
		}
		restaurantID = in.RestaurantID
	case model.RoleCustomer, model.RolePlatformAdmin, model.RoleCourier:
		restaurantID = nil
	default:
		return UserDTO{}, badRequest("invalid role")
	}

	before := struct {
		Role         model.Role `json:"role"`
		RestaurantID *int64     `json:"restaurantId,omitempty"`
	}{target.Role, target.RestaurantID}

	if err := u.users.UpdateRole(ctx, userID, role, restaurantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, notFound("user not found")
		}
		return UserDTO{}, internal(err)
	}
	if restaurantID != nil {
		if err := u.restaurants.SetAdmin(ctx, *restaurantID, userID); err != nil {
			return UserDTO{}, internal(err)
		}
	}

	after := before
	after.Role, after.RestaurantID = role, restaurantID
	u.audit(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		Action:       model.AuditActionAssignRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   auditJSON(before),
		AfterJSON:    auditJSON(after),
	})

	updated, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return UserDTO{}, internal(err)
	}
	return toUserDTO(updated), nil
}

// 発行済みトークンをすべて無効にする
func (u *AdminUsecase) ForceLogout(ctx context.Context, actor model.Actor, userID int64) error {
	v, err := u.users.IncrementTokenVersion(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("user not found")
	}
	if err != nil {
		return internal(err)
	}

	u.audit(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		Action:       model.AuditActionForceLogout,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		AfterJSON:    auditJSON(map[string]int{"tokenVersion": v}),
	})
	return nil
}

func (u *AdminUsecase) AuditLogs(ctx context.Context, q AuditLogQuery) (AuditLogPage, error) {
	f := repository.AuditLogFilter{
		ActorUserID: q.ActorUserID,
		OrderID:     q.OrderID,
		UserID:      q.UserID,
		Since:       q.From,
		Until:       q.To,
		Page:        q.Page,
		Limit:       q.Limit,
	}
	if q.ActorRole != "" {
		role, ok := model.ParseRole(q.ActorRole)
		if !ok {
			return AuditLogPage{}, badRequest("invalid actorRole")
		}
		f.ActorRole = &role
	}
	if q.Action != "" {
		a, ok := model.ParseAuditAction(q.Action)
		if !ok {
			return AuditLogPage{}, badRequest("invalid action")
		}
		f.Action = &a
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return AuditLogPage{}, badRequest("to must not be before from")
	}

	logs, total, err := u.auditLogs.Search(ctx, f)
	if err != nil {
		return AuditLogPage{}, internal(err)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return AuditLogPage{Logs: logs, Total: total, Page: page}, nil
}

// 注文ごとの状態変更の履歴
func (u *AdminUsecase) OrderTrail(ctx context.Context, orderID int64) ([]model.AuditLog, error) {
	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("order not found")
		}
		return nil, internal(err)
	}
	logs, err := u.auditLogs.OrderTrail(ctx, orderID)
	if err != nil {
		return nil, internal(err)
	}
	return logs, nil
}

// ユーザー操作の監査ログは失敗しても処理は続ける
func (u *AdminUsecase) audit(ctx context.Context, entry model.AuditLog) {
	entry.CreatedAt = u.now()
	if err := u.auditLogs.Append(ctx, &entry); err != nil {
		log.Error().Err(err).Str("action", string(entry.Action)).Int64("resource_id", entry.ResourceID).Msg("failed to write audit log")
	}
}
