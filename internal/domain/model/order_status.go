package model

import "strings"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var allOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 文字列をOrderStatusに変換（未知はfalse）
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

func (s OrderStatus) Valid() bool {
	for _, v := range allOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// delivered / cancelled は終端
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ロールごとの遷移表。ここ以外で遷移可否を判断しない。
// platform adminは表を使わず任意の状態へ変更できる。
var orderTransitions = map[Role]map[OrderStatus][]OrderStatus{
	RoleRestaurantAdmin: {
		OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
		OrderStatusReady:     {OrderStatusCancelled},
	},
	RoleCourier: {
		OrderStatusReady:          {OrderStatusOutForDelivery},
		OrderStatusOutForDelivery: {OrderStatusDelivered},
	},
}

// (role, from, to) が許可されるか
func CanTransition(role Role, from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	switch role {
	case RolePlatformAdmin:
		return true
	case RoleRestaurantAdmin, RoleCourier:
		for _, next := range orderTransitions[role][from] {
			if next == to {
				return true
			}
		}
		return false
	case RoleCustomer:
		return false
	default:
		return false
	}
}

// roleが遷移先として指定できる状態の一覧
func TransitionTargets(role Role) []OrderStatus {
	switch role {
	case RolePlatformAdmin:
		out := make([]OrderStatus, len(allOrderStatuses))
		copy(out, allOrderStatuses)
		return out
	case RoleRestaurantAdmin, RoleCourier:
		seen := map[OrderStatus]bool{}
		out := []OrderStatus{}
		// 状態の定義順
		for _, st := range allOrderStatuses {
			for _, nexts := range orderTransitions[role] {
				for _, n := range nexts {
					if n == st && !seen[st] {
						seen[st] = true
						out = append(out, st)
					}
				}
			}
		}
		return out
	default:
		return []OrderStatus{}
	}
}

// roleがtoを遷移先として指定できるか（fromに関係なく）
func IsTransitionTarget(role Role, to OrderStatus) bool {
	for _, st := range TransitionTargets(role) {
		if st == to {
			return true
		}
	}
	return false
}
