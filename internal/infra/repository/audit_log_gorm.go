package repository

import (
	"context"
	"fmt"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"gorm.io/gorm"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (r *auditLogGormRepository) Search(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{}).Scopes(auditLogScope(f))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(f.Page, f.Limit, 50)
	var logs []model.AuditLog
	if err := q.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogGormRepository) OrderTrail(ctx context.Context, orderID int64) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", model.AuditResourceOrder, orderID).
		Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func auditLogScope(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorUserID != nil {
			q = q.Where("actor_user_id = ?", *f.ActorUserID)
		}
		if f.ActorRole != nil {
			q = q.Where("actor_role = ?", *f.ActorRole)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.OrderID != nil {
			q = q.Where("resource_type = ? AND resource_id = ?", model.AuditResourceOrder, *f.OrderID)
		}
		if f.UserID != nil {
			q = q.Where("resource_type = ? AND resource_id = ?", model.AuditResourceUser, *f.UserID)
		}
		if f.Since != nil {
			q = q.Where("created_at >= ?", *f.Since)
		}
		if f.Until != nil {
			q = q.Where("created_at <= ?", *f.Until)
		}
		return q
	}
}
