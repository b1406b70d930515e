// テスト用のSQLite(in-memory)と固定データ
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"foodie/internal/domain/model"
	"foodie/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// テストごとに独立したDB。接続は1本にして書き込みを直列にする
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:foodie_test_%d?mode=memory&cache=shared", dbSeq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

func CreateUser(t testing.TB, gdb *gorm.DB, u model.User) model.User {
	t.Helper()
	if u.Name == "" {
		u.Name = "user"
	}
	if u.Email == "" {
		u.Email = fmt.Sprintf("user%d@example.com", dbSeq.Add(1))
	}
	if u.Role == "" {
		u.Role = model.RoleCustomer
	}
	if u.PasswordHash == "" {
		u.PasswordHash = "x"
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func CreateRestaurant(t testing.TB, gdb *gorm.DB, name string) model.Restaurant {
	t.Helper()
	r := model.Restaurant{
		Name:         name,
		Address:      "1 Main St",
		Phone:        "000",
		DeliveryTime: 30,
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(&r).Error)
	return r
}

func CreateCategory(t testing.TB, gdb *gorm.DB, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func CreateFood(t testing.TB, gdb *gorm.DB, name string, price int64, categoryID, restaurantID int64) model.Food {
	t.Helper()
	f := model.Food{
		Name:            name,
		Description:     name + " description",
		Price:           price,
		CategoryID:      categoryID,
		RestaurantID:    restaurantID,
		IsAvailable:     true,
		PreparationTime: 20,
	}
	require.NoError(t, gdb.Create(&f).Error)
	return f
}

// 明細付きの注文を直接作る
func CreateOrder(t testing.TB, gdb *gorm.DB, o model.Order) model.Order {
	t.Helper()
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = model.DefaultPaymentMethod
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentStatusPending
	}
	if o.DeliveryAddress == (model.DeliveryAddress{}) {
		o.DeliveryAddress = model.DeliveryAddress{Street: "1 Main St", City: "Pune", State: "MH", ZipCode: "411001"}
	}
	require.NoError(t, gdb.Create(&o).Error)
	return o
}
