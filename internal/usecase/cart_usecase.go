package usecase

import (
	"context"
	"errors"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
// カートは1ユーザー1つ、合計は常に明細から計算します。
type CartUsecase struct {
	carts repo.CartRepository
	foods repo.FoodRepository
}

func NewCartUsecase(carts repo.CartRepository, foods repo.FoodRepository) *CartUsecase {
	return &CartUsecase{carts: carts, foods: foods}
}

// price は追加時点の価格
type CartItemOutput struct {
	ID       int64  `json:"id"`
	FoodID   int64  `json:"foodId"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

type CartOutput struct {
	ID    int64            `json:"id"`
	Items []CartItemOutput `json:"items"`
	Total int64            `json:"total"`
}

func toCartOutput(c model.Cart) CartOutput {
	items := make([]CartItemOutput, 0, len(c.Items))
	for _, it := range c.Items {
		out := CartItemOutput{
			ID:       it.ID,
			FoodID:   it.FoodID,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		}
		if it.Food != nil {
			out.Name = it.Food.Name
			out.Image = it.Food.Image
		}
		items = append(items, out)
	}
	return CartOutput{ID: c.ID, Items: items, Total: c.Total()}
}

// GetCart はカート取得（無ければ空のカートを作って返す）。
func (u *CartUsecase) GetCart(ctx context.Context, actor model.Actor) (CartOutput, error) {
	cart, err := u.carts.GetOrCreateByUserID(ctx, actor.UserID)
	if err != nil {
		return CartOutput{}, internal(err)
	}
	return toCartOutput(cart), nil
}

// AddItem はカートに追加（同一料理は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, actor model.Actor, foodID int64, quantity int64) (CartOutput, error) {
	if foodID <= 0 {
		return CartOutput{}, badRequest("invalid foodId")
	}
	if quantity < 1 {
		return CartOutput{}, badRequest("quantity must be at least 1")
	}

	f, err := u.foods.FindByID(ctx, foodID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, notFound("food not found")
	}
	if err != nil {
		return CartOutput{}, internal(err)
	}
	if !f.IsAvailable {
		return CartOutput{}, invalidState("food is not available")
	}

	cart, err := u.carts.GetOrCreateByUserID(ctx, actor.UserID)
	if err != nil {
		return CartOutput{}, internal(err)
	}

	// 価格は今の料理価格を取り込む
	if err := u.carts.UpsertItem(ctx, cart.ID, f.ID, quantity, f.Price); err != nil {
		return CartOutput{}, internal(err)
	}
	return u.reload(ctx, actor.UserID)
}

// 数量変更。0以下なら明細を削除
func (u *CartUsecase) UpdateItem(ctx context.Context, actor model.Actor, itemID int64, quantity int64) (CartOutput, error) {
	cart, err := u.findCart(ctx, actor.UserID)
	if err != nil {
		return CartOutput{}, err
	}

	if quantity <= 0 {
		err = u.carts.DeleteItem(ctx, cart.ID, itemID)
	} else {
		err = u.carts.UpdateItemQuantity(ctx, cart.ID, itemID, quantity)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, notFound("item not found in cart")
	}
	if err != nil {
		return CartOutput{}, internal(err)
	}
	return u.reload(ctx, actor.UserID)
}

// 明細削除。カートに無いIDは何もしない
func (u *CartUsecase) RemoveItem(ctx context.Context, actor model.Actor, itemID int64) (CartOutput, error) {
	cart, err := u.findCart(ctx, actor.UserID)
	if err != nil {
		return CartOutput{}, err
	}

	if err := u.carts.DeleteItem(ctx, cart.ID, itemID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, internal(err)
	}
	return u.reload(ctx, actor.UserID)
}

// 明細を空にする（カートは残す）
func (u *CartUsecase) Clear(ctx context.Context, actor model.Actor) (CartOutput, error) {
	cart, err := u.findCart(ctx, actor.UserID)
	if err != nil {
		return CartOutput{}, err
	}
	if err := u.carts.ClearItems(ctx, cart.ID); err != nil {
		return CartOutput{}, internal(err)
	}
	return u.reload(ctx, actor.UserID)
}

func (u *CartUsecase) findCart(ctx context.Context, userID int64) (model.Cart, error) {
	cart, err := u.carts.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, notFound("cart not found")
	}
	if err != nil {
		return model.Cart{}, internal(err)
	}
	return cart, nil
}

func (u *CartUsecase) reload(ctx context.Context, userID int64) (CartOutput, error) {
	cart, err := u.findCart(ctx, userID)
	if err != nil {
		return CartOutput{}, err
	}
	return toCartOutput(cart), nil
}
