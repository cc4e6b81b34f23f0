package app

import (
	"brickvest-backend/internal/auth"
	"brickvest-backend/internal/certificates"
	"brickvest-backend/internal/config"
	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/database"
	"brickvest-backend/internal/distribution"
	"brickvest-backend/internal/health"
	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/payments"
	"brickvest-backend/internal/properties"
	"brickvest-backend/internal/purchase"
	"brickvest-backend/internal/roles"
	"brickvest-backend/internal/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and routes.
// Returns the app plus the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	// Stripe webhook mounted before the session middleware so nothing
	// consumes the raw body the signature is computed over.
	stripeWebhook := &payments.WebhookHandler{WebhookSecret: cfg.StripeWebhookSecret}
	app.Post("/api/v1/stripe/webhook", stripeWebhook.HandleWebhook)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	if db == nil {
		return app, nil, rdb, nil
	}
	stripeWebhook.DB = db

	roleService := &roles.Service{DB: db}

	// Auth (no auth middleware)
	authService := &auth.Service{DB: db}
	authHandlers := &auth.Handlers{Service: authService, Roles: roleService, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Roles
	roleHandlers := &roles.Handlers{Service: roleService}
	roleGroup := app.Group("/api/v1/roles", middleware.RequireAuth())
	roleGroup.Patch("/assign", middleware.AuthorizePermission(constants.AssignRole), roleHandlers.AssignRole)
	roleGroup.Patch("/revoke", middleware.AuthorizePermission(constants.AssignRole), roleHandlers.RevokeRole)
	roleGroup.Get("/my-roles", roleHandlers.MyRoles)

	// Wallet
	walletService := &wallet.Service{DB: db}
	walletHandlers := &wallet.Handlers{Service: walletService}
	walletGroup := app.Group("/api/v1/wallet", middleware.RequireAuth())
	walletGroup.Post("/deposit", middleware.AuthorizePermission(constants.DepositFunds), walletHandlers.Deposit)
	walletGroup.Get("/balance", walletHandlers.Balance)
	walletGroup.Get("/transactions", walletHandlers.Transactions)

	// Stripe top-up intent
	paymentHandlers := &payments.Handlers{Creator: &payments.StripeCreator{SecretKey: cfg.StripeSecretKey}}
	walletGroup.Post("/topup-intent", middleware.AuthorizePermission(constants.DepositFunds), paymentHandlers.CreateTopUpIntent)

	// Purchases
	purchaseService := &purchase.Service{DB: db}
	purchaseHandlers := &purchase.Handlers{Service: purchaseService}
	purchaseGroup := app.Group("/api/v1/purchases", middleware.RequireAuth())
	purchaseGroup.Post("/buy-tokens", middleware.AuthorizePermission(constants.BuyTokens), purchaseHandlers.BuyTokens)
	purchaseGroup.Get("/my-purchases", purchaseHandlers.MyPurchases)

	// Distributions
	distService := &distribution.Service{DB: db, Roles: roleService}
	distHandlers := &distribution.Handlers{Service: distService}
	distGroup := app.Group("/api/v1/distributions", middleware.RequireAuth())
	distGroup.Post("/distribute", middleware.AuthorizePermission(constants.DistributeProfit), distHandlers.Distribute)
	distGroup.Get("/property/:id", distHandlers.ForProperty)

	// Properties
	propService := &properties.Service{DB: db, Roles: roleService}
	propHandlers := &properties.Handlers{Service: propService}
	propGroup := app.Group("/api/v1/properties", middleware.RequireAuth())
	propGroup.Post("/create", middleware.AuthorizePermission(constants.CreateProperty), propHandlers.Create)
	propGroup.Get("/get-all", propHandlers.GetAll)
	propGroup.Get("/get-active", propHandlers.GetActive)
	propGroup.Get("/:id", propHandlers.GetByID)
	propGroup.Patch("/:id/verify", middleware.AuthorizePermission(constants.VerifyProperty), propHandlers.Verify)
	propGroup.Patch("/:id", middleware.AuthorizePermission(constants.EditProperty), propHandlers.Update)

	// Certificates
	certService := &certificates.Service{DB: db, Roles: roleService}
	certHandlers := &certificates.Handlers{Service: certService}
	certGroup := app.Group("/api/v1/certificates", middleware.RequireAuth())
	certGroup.Get("/my-certificates", certHandlers.MyCertificates)
	certGroup.Post("/view-one", certHandlers.ViewOne)
	certGroup.Post("/mark-rendered", middleware.AuthorizePermission(constants.MarkRendered), certHandlers.MarkRendered)

	return app, db, rdb, nil
}
