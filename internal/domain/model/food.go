package model

import (
	"time"

	"gorm.io/gorm"
)

// 料理。削除は論理削除（注文スナップショットは影響を受けない）
type Food struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Price           int64          `gorm:"not null" json:"price"`
	Image           string         `gorm:"type:text" json:"image"`
	CategoryID      int64          `gorm:"not null;index" json:"categoryId"`
	RestaurantID    int64          `gorm:"not null;index" json:"restaurantId"`
	IsAvailable     bool           `gorm:"not null;index" json:"isAvailable"`
	Rating          float64        `gorm:"not null;default:0" json:"rating"`
	PreparationTime int            `gorm:"not null;default:20" json:"preparationTime"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}
