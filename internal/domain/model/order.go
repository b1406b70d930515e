package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

const DefaultPaymentMethod = "cash"

type DeliveryAddress struct {
	Street  string `gorm:"type:varchar(255);not null" json:"street"`
	City    string `gorm:"type:varchar(255);not null" json:"city"`
	State   string `gorm:"type:varchar(255);not null" json:"state"`
	ZipCode string `gorm:"type:varchar(20);not null" json:"zipCode"`
}

// 注文。明細と合計は作成時に固定され、以降はstatusの遷移だけ
type Order struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	UserID           int64           `gorm:"not null;index"`
	RestaurantID     int64           `gorm:"not null;index"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID"`
	DeliveryAddress  DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_"`
	TotalAmount      int64           `gorm:"not null"`
	Status           OrderStatus     `gorm:"type:varchar(32);not null;default:'pending';index"`
	PaymentMethod    string          `gorm:"type:varchar(32);not null;default:'cash'"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(16);not null;default:'pending'"`
	DeliveryPersonID *int64          `gorm:"index"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime;index"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime"`
}

// 配達員が未割り当てか
func (o Order) Unassigned() bool {
	return o.DeliveryPersonID == nil
}

// 指定の配達員に割り当て済みか
func (o Order) AssignedTo(courierID int64) bool {
	return o.DeliveryPersonID != nil && *o.DeliveryPersonID == courierID
}
