package repository

import (
	"context"
	"time"

	"foodie/internal/domain/model"
)

// OrderID / UserID は対象の種類もあわせて絞る
type AuditLogFilter struct {
	ActorUserID *int64
	ActorRole   *model.Role
	Action      *model.AuditAction
	OrderID     *int64
	UserID      *int64
	Since       *time.Time
	Until       *time.Time
	Page        int
	Limit       int
}

type AuditLogRepository interface {
	// entry.IDが埋まる
	Append(ctx context.Context, entry *model.AuditLog) error

	// 新しい順。totalはページングに関係ない件数
	Search(ctx context.Context, f AuditLogFilter) ([]model.AuditLog, int64, error)

	// 1注文の操作履歴（古い順）
	OrderTrail(ctx context.Context, orderID int64) ([]model.AuditLog, error)
}
