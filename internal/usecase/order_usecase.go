package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	publisher EventPublisher
	qr        QRGenerator
	newID     func() string
	now       func() time.Time
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	publisher EventPublisher,
	qr QRGenerator,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		publisher: publisher,
		qr:        qr,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

type PlaceOrderInput struct {
	DeliveryAddress model.DeliveryAddress
	PaymentMethod   string
}

type OrderItemOutput struct {
	FoodID   int64  `json:"foodId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type OrderOutput struct {
	ID               int64                 `json:"id"`
	UserID           int64                 `json:"userId"`
	RestaurantID     int64                 `json:"restaurantId"`
	Items            []OrderItemOutput     `json:"items"`
	DeliveryAddress  model.DeliveryAddress `json:"deliveryAddress"`
	TotalAmount      int64                 `json:"totalAmount"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"paymentMethod"`
	PaymentStatus    string                `json:"paymentStatus"`
	DeliveryPersonID *int64                `json:"deliveryPersonId"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			FoodID:   it.FoodID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return OrderOutput{
		ID:               o.ID,
		UserID:           o.UserID,
		RestaurantID:     o.RestaurantID,
		Items:            items,
		DeliveryAddress:  o.DeliveryAddress,
		TotalAmount:      o.TotalAmount,
		Status:           string(o.Status),
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    string(o.PaymentStatus),
		DeliveryPersonID: o.DeliveryPersonID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out
}

// カートから注文を作る。
// 明細のコピー・注文作成・カートを空にするまでを1トランザクションで行う
func (u *OrderUsecase) PlaceOrder(ctx context.Context, actor model.Actor, in PlaceOrderInput) (OrderOutput, error) {
	addr := model.DeliveryAddress{
		Street:  strings.TrimSpace(in.DeliveryAddress.Street),
		City:    strings.TrimSpace(in.DeliveryAddress.City),
		State:   strings.TrimSpace(in.DeliveryAddress.State),
		ZipCode: strings.TrimSpace(in.DeliveryAddress.ZipCode),
	}
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.ZipCode == "" {
		return OrderOutput{}, badRequest("delivery address is incomplete")
	}

	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = model.DefaultPaymentMethod
	}
	if len(method) > 32 {
		return OrderOutput{}, badRequest("invalid paymentMethod")
	}

	var created model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return invalidState("cart is empty")
		}
		if err != nil {
			return internal(err)
		}
		if len(cart.Items) == 0 {
			return invalidState("cart is empty")
		}

		//スナップショット
		items := make([]model.OrderItem, 0, len(cart.Items))
		var restaurantID int64
		for _, ci := range cart.Items {
			f, err := r.Foods().FindByID(ctx, ci.FoodID)
			if errors.Is(err, repo.ErrNotFound) {
				return invalidState(fmt.Sprintf("food %d is no longer available", ci.FoodID))
			}
			if err != nil {
				return internal(err)
			}

			// 複数レストランの混在は注文にできない
			if restaurantID == 0 {
				restaurantID = f.RestaurantID
			} else if f.RestaurantID != restaurantID {
				return invalidState("cart contains items from multiple restaurants")
			}

			items = append(items, model.OrderItem{
				FoodID:   f.ID,
				Name:     f.Name,
				Quantity: ci.Quantity,
				Price:    ci.Price,
			})
		}

		o := model.Order{
			UserID:          actor.UserID,
			RestaurantID:    restaurantID,
			Items:           items,
			DeliveryAddress: addr,
			TotalAmount:     cart.Total(),
			Status:          model.OrderStatusPending,
			PaymentMethod:   method,
			PaymentStatus:   model.PaymentStatusPending,
		}
		if err := r.Orders().Create(ctx, &o); err != nil {
			return internal(err)
		}

		//カートは残して明細だけ消す
		if err := r.Carts().ClearItems(ctx, cart.ID); err != nil {
			return internal(err)
		}

		created = o
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	log.Info().Int64("order_id", created.ID).Int64("user_id", actor.UserID).Int64("total", created.TotalAmount).Msg("order created")
	u.publish(ctx, model.OrderEvent{
		Type:         model.OrderEventCreated,
		OrderID:      created.ID,
		UserID:       created.UserID,
		RestaurantID: created.RestaurantID,
		ActorID:      actor.UserID,
		Status:       created.Status,
		TotalAmount:  created.TotalAmount,
	})

	return toOrderOutput(created), nil
}

// 自分の注文（新しい順）
func (u *OrderUsecase) ListMine(ctx context.Context, actor model.Actor) ([]OrderOutput, error) {
	orders, err := u.orders.List(ctx, repo.OrderFilter{UserID: &actor.UserID})
	if err != nil {
		return nil, internal(err)
	}
	return toOrderOutputs(orders), nil
}

// 管理者向け全注文。statusで絞り込み可
func (u *OrderUsecase) ListAll(ctx context.Context, status string, page, limit int) ([]OrderOutput, error) {
	f := repo.OrderFilter{Page: page, Limit: limit}
	if strings.TrimSpace(status) != "" {
		st, ok := model.ParseOrderStatus(status)
		if !ok {
			return nil, badRequest("invalid status")
		}
		f.Statuses = []model.OrderStatus{st}
	}
	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, internal(err)
	}
	return toOrderOutputs(orders), nil
}

func (u *OrderUsecase) Get(ctx context.Context, actor model.Actor, orderID int64) (OrderOutput, error) {
	o, err := u.load(ctx, actor, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(o), nil
}

// 注文追跡ページへのQRコード（PNG）
func (u *OrderUsecase) QRCode(ctx context.Context, actor model.Actor, orderID int64) ([]byte, error) {
	o, err := u.load(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	png, err := u.qr.Generate(o.ID)
	if err != nil {
		return nil, internal(err)
	}
	return png, nil
}

func (u *OrderUsecase) load(ctx context.Context, actor model.Actor, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFound("order not found")
	}
	if err != nil {
		return model.Order{}, internal(err)
	}
	if !canViewOrder(actor, o) {
		return model.Order{}, forbidden("not authorized to view this order")
	}
	return o, nil
}

// 閲覧できるのは注文者・管理者・担当レストラン・担当配達員。
// 配達員は引き受け前のready注文も見られる
func canViewOrder(a model.Actor, o model.Order) bool {
	if o.UserID == a.UserID {
		return true
	}
	switch a.Role {
	case model.RolePlatformAdmin:
		return true
	case model.RoleRestaurantAdmin:
		return a.ManagesRestaurant(o.RestaurantID)
	case model.RoleCourier:
		return o.AssignedTo(a.UserID) || (o.Status == model.OrderStatusReady && o.Unassigned())
	case model.RoleCustomer:
		return false
	default:
		return false
	}
}

// 送信失敗は注文処理を失敗にしない
func (u *OrderUsecase) publish(ctx context.Context, ev model.OrderEvent) {
	ev.ID = u.newID()
	ev.OccurredAt = u.now().UTC()
	if err := u.publisher.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("type", string(ev.Type)).Int64("order_id", ev.OrderID).Msg("failed to publish order event")
	}
}
