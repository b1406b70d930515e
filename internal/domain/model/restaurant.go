package model

import "time"

type Restaurant struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Image        string    `gorm:"type:text" json:"image"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	Phone        string    `gorm:"type:varchar(50);not null" json:"phone"`
	Rating       float64   `gorm:"not null;default:0" json:"rating"`
	DeliveryTime int       `gorm:"not null;default:30" json:"deliveryTime"`
	IsActive     bool      `gorm:"not null;index" json:"isActive"`
	AdminID      *int64    `gorm:"index" json:"adminId,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
