package model

import (
	"strings"
	"time"
)

// 注文ステータス変更、ロール変更など。
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//配達員が注文を引き受けた操作。
	AuditActionAcceptDelivery AuditAction = "ACCEPT_DELIVERY"
	//ユーザーのロールを変更した操作。
	AuditActionAssignRole AuditAction = "ASSIGN_ROLE"
	//強制ログアウト。
	AuditActionForceLogout AuditAction = "FORCE_LOGOUT"
)

// 大文字小文字は区別しない
func ParseAuditAction(s string) (AuditAction, bool) {
	switch a := AuditAction(strings.ToUpper(strings.TrimSpace(s))); a {
	case AuditActionUpdateOrderStatus, AuditActionAcceptDelivery, AuditActionAssignRole, AuditActionForceLogout:
		return a, true
	default:
		return "", false
	}
}

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
	AuditResourceUser  AuditResourceType = "user"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。
	ActorUserID int64 `gorm:"not null;index" json:"actorUserId"`

	//操作時のロール。
	ActorRole Role `gorm:"type:varchar(20);not null" json:"actorRole"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`
	ResourceID   int64             `gorm:"not null;index" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before"`
	AfterJSON  string `gorm:"type:text" json:"after"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
