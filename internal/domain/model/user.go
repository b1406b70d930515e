package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Address      string `gorm:"type:text" json:"address"`

	// restaurant_adminのみ
	RestaurantID *int64 `gorm:"index" json:"restaurantId,omitempty"`
	// deliveryのみ意味を持つ
	IsAvailable bool `gorm:"not null" json:"isAvailable"`

	TokenVersion int       `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Actorに変換
func (u User) Actor() Actor {
	return Actor{
		UserID:       u.ID,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		IsAvailable:  u.IsAvailable,
	}
}
