package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"foodie/internal/config"
	"foodie/internal/handler"
	"foodie/internal/infra/cache"
	"foodie/internal/infra/db"
	"foodie/internal/infra/mq"
	"foodie/internal/infra/qrcode"
	infraRepo "foodie/internal/infra/repository"
	"foodie/internal/logger"
	"foodie/internal/middleware"
	"foodie/internal/server"
	"foodie/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	//.envは無くてもよい（環境変数を優先）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}
	defer sqlDB.Close()

	//キャッシュ（REDIS_ADDR未設定なら無効）
	var catalogCache usecase.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, cache disabled")
		} else {
			defer client.Close()
			catalogCache = cache.NewRedisCache(client, cfg.CacheTTL)
		}
	}

	//イベント送信（RABBITMQ_URL未設定なら無効）
	var publisher usecase.EventPublisher = mq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, order events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	foodRepo := infraRepo.NewFoodGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg)
	userUC := usecase.NewUserUsecase(userRepo)
	foodUC := usecase.NewFoodUsecase(foodRepo, categoryRepo, restaurantRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, catalogCache)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo, catalogCache)
	cartUC := usecase.NewCartUsecase(cartRepo, foodRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, publisher, qrcode.NewGenerator(cfg.FEURL))
	adminUC := usecase.NewAdminUsecase(userRepo, restaurantRepo, categoryRepo, foodRepo, orderRepo, auditRepo)
	restaurantAdminUC := usecase.NewRestaurantAdminUsecase(restaurantRepo, foodUC, orderRepo, orderUC)
	deliveryUC := usecase.NewDeliveryUsecase(userRepo, orderRepo, orderUC, cfg.DeliveryFee)
	chatUC := usecase.NewChatUsecase(foodRepo, categoryRepo, restaurantRepo)

	//Handler生成
	e := server.New(cfg)
	server.RegisterRoutes(e, server.Handlers{
		Auth:            handler.NewAuthHandler(authUC),
		User:            handler.NewUserHandler(userUC),
		Food:            handler.NewFoodHandler(foodUC),
		Category:        handler.NewCategoryHandler(categoryUC),
		Restaurant:      handler.NewRestaurantHandler(restaurantUC),
		Cart:            handler.NewCartHandler(cartUC),
		Order:           handler.NewOrderHandler(orderUC),
		Admin:           handler.NewAdminHandler(adminUC),
		RestaurantAdmin: handler.NewRestaurantAdminHandler(restaurantAdminUC),
		Delivery:        handler.NewDeliveryHandler(deliveryUC),
		Chat:            handler.NewChatHandler(chatUC),
		Health:          handler.NewHealthHandler(sqlDB.PingContext),
	}, middleware.Authenticated(cfg, userRepo))

	//Server起動
	if err := server.Start(ctx, e, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
