package router

import (
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/config"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/handler"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/middleware"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/region"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/shipping"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store/Gateway ← Redis
func New(cfg *config.Config, st *store.Store, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	biteship := infra.NewBiteshipClient(cfg.BiteshipBaseURL, cfg.BiteshipAPIKey)
	gateway := shipping.NewGateway(biteship, rdb, cfg.OriginPostalCode)
	regionClient := region.NewClient(cfg.WilayahBaseURL, rdb)
	regionSessions := region.NewSessions(regionClient)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(st, cfg)
	inventorySvc := service.NewInventoryService(st)
	orderSvc := service.NewOrderService(st, dispatcher)
	hrSvc := service.NewHRService(st)
	chatSvc := service.NewChatService(st)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productionH := handler.NewProductionHandler(inventorySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	warrantyH := handler.NewWarrantyHandler(orderSvc)
	hrH := handler.NewHRHandler(hrSvc)
	chatH := handler.NewChatHandler(chatSvc)
	regionsH := handler.NewRegionsHandler(regionClient, regionSessions)
	shippingH := handler.NewShippingHandler(gateway, inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb, gateway))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/register", authH.Register)
		auth.GET("/recent-logins", authH.RecentLogins)
		auth.POST("/password-reset", authH.RequestPasswordReset)
	}

	// Storefront catalog and address cascade — no auth required
	r.GET("/v1/catalog", inventoryH.ListFinishedGoods)
	regions := r.Group("/v1/regions")
	{
		regions.GET("/provinces", regionsH.Provinces)
		regions.GET("/provinces/:provinceId/regencies", regionsH.Regencies)
		regions.GET("/regencies/:regencyId/districts", regionsH.Districts)
		regions.GET("/districts/:districtId/villages", regionsH.Villages)
		regions.GET("/provisional-postal-code", regionsH.ProvisionalPostalCode)
		// Per-form cascade sessions: selections invalidate child levels so a
		// stale list load can never overwrite the current one.
		regions.POST("/cascade/:sessionId/select", regionsH.CascadeSelect)
		regions.GET("/cascade/:sessionId/:level", regionsH.CascadeOptions)
	}

	// Shipping proxy — storefront-compatible raw relay endpoints
	r.POST("/api/shipping-cost", shippingH.ShippingCost)
	r.POST("/api/track-package", shippingH.TrackPackage)
	// Normalized variants
	r.POST("/v1/shipping/quote", shippingH.Quote)
	r.GET("/v1/shipping/track", shippingH.Track)

	optionalJWT := middleware.OptionalJWTAuth(cfg.JWTSecret)
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Carts and checkout serve guests (X-Cart-Session) and customers alike
	storefront := r.Group("/v1", optionalJWT)
	{
		storefront.GET("/cart", ordersH.Cart)
		storefront.PUT("/cart", ordersH.ReplaceCart)
		storefront.POST("/orders", ordersH.Place)
		storefront.GET("/orders/:id", ordersH.Get)
	}

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.PUT("/profile", usersH.UpdateProfile)

		// Customer surface
		v1.POST("/warranty-claims", warrantyH.Submit)
		v1.POST("/chat/messages", chatH.SendAsCustomer)
		v1.GET("/chat/thread", chatH.MyThread)
		v1.POST("/chat/read", chatH.MarkReadAsCustomer)

		// Account administration
		users := v1.Group("/users", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin))
		{
			users.GET("", usersH.List)
			users.POST("/:id/approve", usersH.Approve)
			users.POST("/account-requests/:id/resolve", usersH.ResolveAccountRequest)
		}

		// Warehouse
		warehouseRoles := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleKepalaGudang)
		inv := v1.Group("/inventory", warehouseRoles)
		{
			inv.GET("/materials", inventoryH.ListMaterials)
			inv.PUT("/materials", inventoryH.ReplaceMaterials)
			inv.GET("/goods", inventoryH.ListFinishedGoods)
			inv.GET("/history", inventoryH.StockHistory)
			inv.POST("/stock-updates", inventoryH.UpdateStock)
			inv.GET("/patterns", inventoryH.ListGarmentPatterns)
			inv.PUT("/patterns", inventoryH.ReplaceGarmentPatterns)
		}

		// Production
		productionRoles := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleKepalaProduksi, model.RoleKepalaGudang)
		prod := v1.Group("/production", productionRoles)
		{
			prod.GET("/reports", productionH.List)
			prod.POST("/reports", productionH.Create)
			prod.POST("/reports/:id/receive", warehouseRoles, productionH.Receive)
		}

		// Sales & fulfilment
		salesRoles := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleKepalaPenjualan, model.RolePenjualan, model.RoleKepalaGudang)
		orders := v1.Group("/orders", salesRoles)
		{
			orders.GET("", ordersH.List)
			orders.POST("/:id/approve-payment", ordersH.ApprovePayment)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
			orders.POST("/:id/dispatch", ordersH.Dispatch)
		}
		v1.GET("/sales", salesRoles, ordersH.ListSales)

		warranty := v1.Group("/warranty-claims", salesRoles)
		{
			warranty.GET("", warrantyH.List)
			warranty.POST("/:id/review", warrantyH.Review)
		}

		// HR: attendance, prayer, payroll, survey, performance
		v1.POST("/attendance", hrH.ClockIn)
		v1.POST("/attendance/:id/clock-out", hrH.ClockOut)
		v1.POST("/prayers", hrH.LogPrayer)
		v1.POST("/surveys", hrH.SubmitSurvey)
		v1.POST("/payroll/:id/confirm", hrH.ConfirmPayroll)

		hrAdmin := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin)
		v1.GET("/attendance", hrAdmin, hrH.ListAttendance)
		v1.GET("/prayers", hrAdmin, hrH.ListPrayers)
		v1.GET("/payroll", hrAdmin, hrH.ListPayroll)
		v1.POST("/payroll", hrAdmin, hrH.AddPayrollEntry)
		v1.GET("/performance/:id", hrAdmin, hrH.Performance)

		// Support chat admin surface
		chatAdmin := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleKepalaPenjualan, model.RolePenjualan)
		v1.GET("/chat/threads", chatAdmin, chatH.ListThreads)
		v1.GET("/chat/threads/:customerId", chatAdmin, chatH.Thread)
		v1.POST("/chat/threads/:customerId/messages", chatAdmin, chatH.SendAsAdmin)
		v1.POST("/chat/threads/:customerId/read", chatAdmin, chatH.MarkReadAsAdmin)

		// Audit trail
		v1.GET("/activity", hrAdmin, chatH.Activity)

		// Queue operations: replay jobs parked after exhausted retries
		v1.POST("/queues/:queue/replay", hrAdmin, handler.ReplayDeadJobs(rdb))
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
