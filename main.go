package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/config"
	"github.com/arushi-dev/vastra-api/courier"
	"github.com/arushi-dev/vastra-api/gateway"
	"github.com/arushi-dev/vastra-api/logger"
	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/pincode"
	"github.com/arushi-dev/vastra-api/routes"
	"github.com/arushi-dev/vastra-api/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := initDatabase(cfg, log)

	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Admin{},
		&models.Product{},
		&models.ProductImage{},
		&models.Quantity{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Address{},
		&models.Order{},
		&models.Return{},
		&models.Review{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	gw := gateway.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	cr := courier.New(cfg.Courier.BaseURL, cfg.Courier.Token, cfg.Courier.Timeout, log)
	pc := pincode.New(cfg.Pincode.BaseURL, cfg.Pincode.Timeout, cfg.Pincode.CacheTTL, rdb, log)

	deps := routes.Deps{
		DB:      db,
		Cfg:     cfg,
		Orders:  services.NewOrderService(db, gw, cr, log),
		Returns: services.NewReturnService(db, cr, log),
		Reviews: services.NewReviewService(db, log),
		Address: services.NewAddressService(db, pc, log),
		Pincode: pc,
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log), logger.GinRecovery(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(r, deps)

	log.Info("server starting", zap.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("db connection failed", zap.Error(err))
	}
	return db
}
