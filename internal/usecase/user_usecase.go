package usecase

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	Address     *string
	IsAvailable *bool
}

type UserListOutput struct {
	Users []UserDTO `json:"users"`
	Total int64     `json:"total"`
}

func (u *UserUsecase) Profile(ctx context.Context, actor model.Actor) (UserDTO, error) {
	user, err := u.users.FindByID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return UserDTO{}, notFound("user not found")
	}
	if err != nil {
		return UserDTO{}, internal(err)
	}
	return toUserDTO(user), nil
}

// 空文字の名前は不可。isAvailableは配達員だけ
func (u *UserUsecase) UpdateProfile(ctx context.Context, actor model.Actor, in UpdateProfileInput) (UserDTO, error) {
	upd := repository.UserProfileUpdate{Phone: in.Phone, Address: in.Address}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return UserDTO{}, badRequest("name must not be empty")
		}
		upd.Name = &name
	}
	if in.IsAvailable != nil {
		if actor.Role != model.RoleCourier {
			return UserDTO{}, forbidden("only delivery users can change availability")
		}
		upd.IsAvailable = in.IsAvailable
	}

	if err := u.users.UpdateProfile(ctx, actor.UserID, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, notFound("user not found")
		}
		return UserDTO{}, internal(err)
	}
	return u.Profile(ctx, actor)
}

// 管理者向けユーザー一覧（roleで絞り込み可）
func (u *UserUsecase) List(ctx context.Context, role string, page, limit int) (UserListOutput, error) {
	f := repository.UserListFilter{Page: page, Limit: limit}
	if strings.TrimSpace(role) != "" {
		r, ok := model.ParseRole(role)
		if !ok {
			return UserListOutput{}, badRequest("invalid role")
		}
		f.Role = &r
	}

	users, total, err := u.users.List(ctx, f)
	if err != nil {
		return UserListOutput{}, internal(err)
	}

	out := UserListOutput{Users: make([]UserDTO, 0, len(users)), Total: total}
	for i := range users {
		out.Users = append(out.Users, toUserDTO(&users[i]))
	}
	return out, nil
}
