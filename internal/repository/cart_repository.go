package repository

import (
	"context"

	"foodie/internal/domain/model"
)

// Itemsは常にid昇順で読み込む
type CartRepository interface {
	// 無ければ空のカートを作る
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// 同一料理は数量加算。priceは新規行のときだけ使う
	UpsertItem(ctx context.Context, cartID int64, foodID int64, addQty int64, price int64) error
	UpdateItemQuantity(ctx context.Context, cartID int64, itemID int64, qty int64) error
	DeleteItem(ctx context.Context, cartID int64, itemID int64) error
	ClearItems(ctx context.Context, cartID int64) error
}
