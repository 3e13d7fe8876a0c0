package main

import (
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/freshkart/grocer-backend/internal/address"
	"github.com/freshkart/grocer-backend/internal/cart"
	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/category"
	"github.com/freshkart/grocer-backend/internal/config"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/favorite"
	"github.com/freshkart/grocer-backend/internal/loyalty"
	"github.com/freshkart/grocer-backend/internal/notification"
	"github.com/freshkart/grocer-backend/internal/order"
	"github.com/freshkart/grocer-backend/internal/payment"
	"github.com/freshkart/grocer-backend/internal/product"
	"github.com/freshkart/grocer-backend/internal/settings"
	"github.com/freshkart/grocer-backend/internal/user"
	"github.com/freshkart/grocer-backend/internal/wallet"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := mustOpenDB(cfg.DatabaseURL, log)
	defer db.Close()
	bootstrapSchema(db, log)

	// product cache: Redis when configured, otherwise a no-op
	var cache catalog.Cache = catalog.NopCache{}
	if cfg.RedisAddr != "" {
		cache = catalog.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	catalogRepo := catalog.NewCachedRepository(catalog.NewPostgresRepository(db), cache)
	ledger := catalog.NewLedger(catalogRepo, log)

	// outbound events: Kafka when configured, log-only otherwise
	var emitter notification.Emitter = notification.NewLogEmitter(log)
	if cfg.KafkaBrokers != "" {
		emitter = notification.NewKafkaEmitter(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	}
	dispatcher := notification.NewDispatcher(emitter, log)
	defer dispatcher.Close()

	gateways := payment.NewRegistry()
	if cfg.StripeSecretKey != "" {
		gateways.Register(payment.TypeStripe, payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, log))
	}

	userService := user.NewService(user.NewPostgresRepository(db))
	walletService := wallet.NewService(wallet.NewPostgresRepository(db), log)
	loyaltyService := loyalty.NewService(loyalty.NewPostgresRepository(db), log)
	couponRepo := coupon.NewPostgresRepository(db)
	settingsRepo := settings.NewPostgresRepository(db)
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogRepo, couponRepo, settingsRepo, walletService)
	productService := product.NewService(product.NewPostgresRepository(db), cache)
	categoryService := category.NewService(category.NewPostgresRepository(db))
	addressService := address.NewService(address.NewPostgresRepository(db))
	favoriteService := favorite.NewService(favorite.NewPostgresRepository(db), catalogRepo)

	orderService := order.NewService(order.ServiceDeps{
		Orders:   order.NewPostgresRepository(db),
		Carts:    cartRepo,
		Catalog:  catalogRepo,
		Ledger:   ledger,
		Coupons:  couponRepo,
		Settings: settingsRepo,
		Wallet:   walletService,
		Loyalty:  loyaltyService,
		Users:    userService,
		Gateways: gateways,
		Events:   dispatcher,
		Log:      log,
	})

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userHandler := user.NewHandler(userService)
	productHandler := product.NewHandler(productService)
	categoryHandler := category.NewHandler(categoryService)

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// public storefront reads stay open; everything else needs a token
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			return strings.HasPrefix(c.Path(), "/api/v1/products") ||
				strings.HasPrefix(c.Path(), "/api/v1/categories")
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	address.NewHandler(addressService).RegisterProtectedRoutes(app)
	favorite.NewHandler(favoriteService).RegisterProtectedRoutes(app)
	cart.NewHandler(cartService).RegisterProtectedRoutes(app)
	order.NewHandler(orderService).RegisterProtectedRoutes(app)
	coupon.NewHandler(couponRepo).RegisterProtectedRoutes(app)
	settings.NewHandler(settingsRepo).RegisterProtectedRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func mustOpenDB(url string, log *zap.Logger) *sql.DB {
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}
	return db
}

// bootstrapSchema creates the tables the repositories expect. Statements
// are idempotent so restarts against an existing database are safe.
func bootstrapSchema(db *sql.DB, log *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            "userID" SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            "firstName" TEXT NOT NULL DEFAULT '',
            "lastName" TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'customer',
            "purchaseCount" INT NOT NULL DEFAULT 0,
            "walletBalance" numeric NOT NULL DEFAULT 0,
            "loyaltyPoints" INT NOT NULL DEFAULT 0,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            "productID" SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            status BOOLEAN NOT NULL DEFAULT true,
            "categoryID" INT NOT NULL DEFAULT 0,
            "subcategoryID" INT NOT NULL DEFAULT 0,
            "isDealAvailable" BOOLEAN NOT NULL DEFAULT false,
            "dealPercent" numeric NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            "productID" INT NOT NULL REFERENCES products ("productID"),
            unit TEXT NOT NULL,
            price numeric NOT NULL DEFAULT 0,
            stock INT NOT NULL DEFAULT 0,
            enable BOOLEAN NOT NULL DEFAULT true,
            "offerAvailable" BOOLEAN NOT NULL DEFAULT false,
            "offerPercent" numeric NOT NULL DEFAULT 0,
            PRIMARY KEY ("productID", unit)
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            "cartID" SERIAL PRIMARY KEY,
            "userID" INT NOT NULL,
            items jsonb NOT NULL DEFAULT '[]',
            subtotal numeric NOT NULL DEFAULT 0,
            tax numeric NOT NULL DEFAULT 0,
            "deliveryCharge" numeric NOT NULL DEFAULT 0,
            "couponAmount" numeric NOT NULL DEFAULT 0,
            "walletAmount" numeric NOT NULL DEFAULT 0,
            "grandTotal" numeric NOT NULL DEFAULT 0,
            "couponCode" TEXT,
            linked BOOLEAN NOT NULL DEFAULT false,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1001`,
		`CREATE TABLE IF NOT EXISTS orders (
            "orderID" SERIAL PRIMARY KEY,
            "orderNumber" BIGINT NOT NULL,
            "userID" INT NOT NULL,
            "cartID" INT NOT NULL DEFAULT 0,
            items jsonb NOT NULL DEFAULT '[]',
            subtotal numeric NOT NULL DEFAULT 0,
            tax numeric NOT NULL DEFAULT 0,
            "deliveryCharge" numeric NOT NULL DEFAULT 0,
            "couponAmount" numeric NOT NULL DEFAULT 0,
            "walletAmount" numeric NOT NULL DEFAULT 0,
            "grandTotal" numeric NOT NULL DEFAULT 0,
            "paymentType" TEXT NOT NULL,
            "paymentStatus" TEXT NOT NULL,
            "transactionID" TEXT,
            "intentID" TEXT,
            status TEXT NOT NULL,
            history jsonb NOT NULL DEFAULT '[]',
            "deliveryMethod" TEXT NOT NULL,
            "couponCode" TEXT,
            "assignedTo" INT,
            "isAssigned" BOOLEAN NOT NULL DEFAULT false,
            "isAcceptedByAgent" BOOLEAN NOT NULL DEFAULT false,
            "rejectedBy" integer[] NOT NULL DEFAULT '{}',
            "usedWalletAmount" numeric NOT NULL DEFAULT 0,
            "amountRefunded" numeric NOT NULL DEFAULT 0,
            "amountRefundedOrderModified" numeric NOT NULL DEFAULT 0,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            code TEXT PRIMARY KEY,
            type TEXT NOT NULL,
            value numeric NOT NULL DEFAULT 0,
            "startDate" TIMESTAMPTZ NOT NULL,
            "expiryDate" TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            id INT PRIMARY KEY,
            "deliveryType" TEXT NOT NULL DEFAULT 'FIXED',
            "fixedCharge" numeric NOT NULL DEFAULT 0,
            "chargePerKm" numeric NOT NULL DEFAULT 0,
            "freeThreshold" numeric NOT NULL DEFAULT 0,
            "taxPercent" numeric NOT NULL DEFAULT 0,
            "storeLat" double precision NOT NULL DEFAULT 0,
            "storeLng" double precision NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_ledger (
            "entryID" SERIAL PRIMARY KEY,
            "userID" INT NOT NULL,
            "orderID" INT,
            amount numeric NOT NULL,
            reason TEXT NOT NULL,
            "createdAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS loyalty_log (
            "awardID" SERIAL PRIMARY KEY,
            "userID" INT NOT NULL,
            "orderID" INT,
            points INT NOT NULL,
            reason TEXT NOT NULL,
            "createdAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS loyalty_settings (
            id INT PRIMARY KEY,
            "bonusOnOrderEnabled" BOOLEAN NOT NULL DEFAULT false,
            "subtotalPercent" numeric NOT NULL DEFAULT 0,
            "flatPoints" INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            "categoryID" SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            ord INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS subcategories (
            "subcategoryID" SERIAL PRIMARY KEY,
            "categoryID" INT NOT NULL REFERENCES categories ("categoryID"),
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            "addressID" SERIAL PRIMARY KEY,
            "userID" INT NOT NULL,
            label TEXT NOT NULL,
            line1 TEXT NOT NULL,
            line2 TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL,
            pincode TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            "isDefault" BOOLEAN NOT NULL DEFAULT false,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS favorites (
            "userID" INT NOT NULL,
            "productID" INT NOT NULL,
            "createdAt" TEXT,
            PRIMARY KEY ("userID", "productID")
        )`,
		`INSERT INTO settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO loyalty_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal("schema bootstrap failed", zap.Error(err))
		}
	}
}
