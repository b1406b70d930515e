package model

// 注文時点のスナップショット。作成後は変更しない
type OrderItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64  `gorm:"not null;index" json:"orderId"`
	FoodID   int64  `gorm:"not null;index" json:"foodId"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Quantity int64  `gorm:"not null" json:"quantity"`
	Price    int64  `gorm:"not null" json:"price"`
}
