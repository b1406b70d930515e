package usecase

import (
	"context"

	"foodie/internal/domain/model"
)

// 公開カタログのキャッシュ（redis / noop）
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// 注文イベントの送信先（rabbitmq / noop）
type EventPublisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

// 注文追跡用QRコード
type QRGenerator interface {
	Generate(orderID int64) ([]byte, error)
}

const (
	cacheKeyActiveRestaurants = "restaurants:active"
	cacheKeyCategories        = "categories:all"
)
