package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodie/internal/config"
	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type UserDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	RestaurantID *int64 `json:"restaurantId,omitempty"`
	IsAvailable  bool   `json:"isAvailable"`
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Phone:        u.Phone,
		Address:      u.Address,
		RestaurantID: u.RestaurantID,
		IsAvailable:  u.IsAvailable,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type AuthUsecase struct {
	users      repository.UserRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, cfg config.Config) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		secret:     []byte(cfg.JWTSecret),
		ttl:        cfg.JWTTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// テストでbcryptを軽くする
func (u *AuthUsecase) WithBcryptCost(cost int) *AuthUsecase {
	u.bcryptCost = cost
	return u
}

// 会員登録。ロールは常にuser（変更は管理者が行う）
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return AuthResult{}, badRequest("name and email are required")
	}
	if len(in.Password) < 6 {
		return AuthResult{}, badRequest("password must be at least 6 characters")
	}

	//email重複チェック
	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return AuthResult{}, badRequest("user already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return AuthResult{}, internal(err)
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return AuthResult{}, internal(err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		IsAvailable:  true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return AuthResult{}, internal(err)
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return AuthResult{}, internal(err)
	}
	return AuthResult{Token: token, User: toUserDTO(user)}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthResult{}, badRequest("email and password are required")
	}

	//ユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthResult{}, unauthenticatedMsg("invalid credentials")
	}
	if err != nil {
		return AuthResult{}, internal(err)
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, unauthenticatedMsg("invalid credentials")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return AuthResult{}, internal(err)
	}
	return AuthResult{Token: token, User: toUserDTO(user)}, nil
}

// jwt発行。roleは表示用で、認可はDBの値で行う
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, error) {
	now := u.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"tv":   user.TokenVersion,
		"iat":  now.Unix(),
		"exp":  now.Add(u.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(u.secret)
}
