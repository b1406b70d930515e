package model

import "strings"

// ロールは閉じた集合。DBにはこの文字列で保存する。
type Role string

const (
	RoleCustomer        Role = "user"
	RolePlatformAdmin   Role = "admin"
	RoleRestaurantAdmin Role = "restaurant_admin"
	RoleCourier         Role = "delivery"
)

// 文字列をRoleに変換（未知のロールはfalse）
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RolePlatformAdmin, RoleRestaurantAdmin, RoleCourier:
		return r, true
	default:
		return "", false
	}
}

// 認証済みの呼び出し元。middlewareがDBの最新値から作る。
type Actor struct {
	UserID       int64
	Role         Role
	RestaurantID *int64
	IsAvailable  bool
}

// 担当レストランが一致するか
func (a Actor) ManagesRestaurant(restaurantID int64) bool {
	return a.Role == RoleRestaurantAdmin && a.RestaurantID != nil && *a.RestaurantID == restaurantID
}
