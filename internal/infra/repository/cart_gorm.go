package repository

import (
	"context"
	"errors"
	"time"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 明細はid昇順、料理は削除済みでも名前を出すためUnscoped
func (r *CartGormRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("cart_items.id asc")
		}).
		Preload("Items.Food", func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		})
}

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	cart, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, err
	}

	// 同時作成はuser_idのunique制約で1つに収束させる
	newCart := model.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&newCart).Error; err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.withItems(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

// 同一料理は数量加算。
// 加算はUPDATE一発で行い、読み取り→書き込みの間に割り込まれないようにする
func (r *CartGormRepository) UpsertItem(ctx context.Context, cartID int64, foodID int64, addQty int64, price int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inc := func() (int64, error) {
			res := tx.Model(&model.CartItem{}).
				Where("cart_id = ? AND food_id = ?", cartID, foodID).
				Updates(map[string]interface{}{
					"quantity":   gorm.Expr("quantity + ?", addQty),
					"updated_at": time.Now(),
				})
			return res.RowsAffected, res.Error
		}

		n, err := inc()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		//無い場合は新規作成
		item := model.CartItem{
			CartID:   cartID,
			FoodID:   foodID,
			Quantity: addQty,
			Price:    price,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "food_id"}},
			DoNothing: true,
		}).Create(&item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// 同時に作られていたら加算し直す
		n, err = inc()
		if err != nil {
			return err
		}
		if n == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 明細の数量を更新（cart_idで所有を絞る）
func (r *CartGormRepository) UpdateItemQuantity(ctx context.Context, cartID int64, itemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) DeleteItem(ctx context.Context, cartID int64, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 指定カートの明細を全削除（カート自体は残す）
func (r *CartGormRepository) ClearItems(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}
