package model

import "time"

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// コミット後に外部へ通知するイベント
type OrderEvent struct {
	ID             string         `json:"id"`
	Type           OrderEventType `json:"type"`
	OrderID        int64          `json:"orderId"`
	UserID         int64          `json:"userId"`
	RestaurantID   int64          `json:"restaurantId"`
	ActorID        int64          `json:"actorId"`
	Status         OrderStatus    `json:"status"`
	PreviousStatus OrderStatus    `json:"previousStatus,omitempty"`
	TotalAmount    int64          `json:"totalAmount"`
	OccurredAt     time.Time      `json:"occurredAt"`
}
