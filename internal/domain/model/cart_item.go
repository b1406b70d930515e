package model

import "time"

// カートの明細。Priceは追加時点の価格
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_food" json:"cartId"`
	FoodID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_food" json:"foodId"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

func (it CartItem) Subtotal() int64 {
	return it.Quantity * it.Price
}
