package repository

import (
	"context"

	"foodie/internal/domain/model"
)

type UserListFilter struct {
	Role  *model.Role
	Page  int
	Limit int
}

// プロフィールで更新できる項目（nilは変更しない）
type UserProfileUpdate struct {
	Name        *string
	Phone       *string
	Address     *string
	IsAvailable *bool
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, f UserListFilter) ([]model.User, int64, error)
	UpdateProfile(ctx context.Context, userID int64, in UserProfileUpdate) error
	// ロールと担当レストランをまとめて変更
	UpdateRole(ctx context.Context, userID int64, role model.Role, restaurantID *int64) error
	SetAvailability(ctx context.Context, userID int64, available bool) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID int64) (int, error)
	Count(ctx context.Context) (int64, error)
}
