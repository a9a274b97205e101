package server

import (
	"context"
	"net/http"
	"time"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/middleware"
	"anoa.com/storerating/pkg/database"
	"anoa.com/storerating/pkg/ratelimiter"
	"anoa.com/storerating/pkg/response"

	adminHttp "anoa.com/storerating/internal/modules/admin/delivery/http"
	adminService "anoa.com/storerating/internal/modules/admin/service"

	ratingHttp "anoa.com/storerating/internal/modules/rating/delivery/http"
	ratingRepo "anoa.com/storerating/internal/modules/rating/repository"
	ratingService "anoa.com/storerating/internal/modules/rating/service"

	statHttp "anoa.com/storerating/internal/modules/stat/delivery/http"
	statService "anoa.com/storerating/internal/modules/stat/service"

	storeHttp "anoa.com/storerating/internal/modules/store/delivery/http"
	storeRepo "anoa.com/storerating/internal/modules/store/repository"
	storeService "anoa.com/storerating/internal/modules/store/service"

	userHttp "anoa.com/storerating/internal/modules/user/delivery/http"
	userRepo "anoa.com/storerating/internal/modules/user/repository"
	userService "anoa.com/storerating/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := userRepo.NewUserRepository(db)
	storeRepo := storeRepo.NewStoreRepository(db)
	ratingRepo := ratingRepo.NewRatingRepository(db)

	authSvc := userService.NewAuthService(userRepo, cfg)
	authHandler := userHttp.NewAuthHandler(authSvc)

	userSvc := userService.NewUserService(userRepo, cfg)
	userHandler := userHttp.NewUserHandler(userSvc)

	adminSvc := adminService.NewAdminService(userRepo, cfg)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	statSvc := statService.NewStatService(ratingRepo, storeRepo, userRepo)
	statHandler := statHttp.NewStatHandler(statSvc)

	storeSvc := storeService.NewStoreService(storeRepo, ratingRepo, cfg)
	storeHandler := storeHttp.NewStoreHandler(storeSvc)

	ratingSvc := ratingService.NewRatingService(ratingRepo, storeRepo, statSvc)
	ratingHandler := ratingHttp.NewRatingHandler(ratingSvc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg)

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	authMiddleware := middleware.NewAuthMiddleware(authSvc, storeRepo, ratingRepo)
	authLimiter := ratelimiter.New(redisClient, "auth", cfg.AuthRateLimit, cfg.AuthRateWindow)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Envelope{Message: "Database unavailable"})
			return
		}
		response.OK(c, "OK", nil)
	})

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimit(authLimiter), authHandler.Register)
		auth.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/verify", authHandler.Verify)
		protected.POST("/auth/logout", authHandler.Logout)

		admin := authMiddleware.RequireAdmin()

		// User routes
		protected.GET("/users", admin, adminHandler.GetAllUsers)
		protected.GET("/users/stats", admin, statHandler.GetUserStats)
		protected.POST("/users", admin, adminHandler.CreateUser)
		protected.PUT("/users/password", userHandler.UpdatePassword)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.GET("/users/:id", authMiddleware.RequireSelfOrAdmin("id"), userHandler.GetUser)
		protected.DELETE("/users/:id", admin, adminHandler.DeleteUser)

		// Store routes
		protected.GET("/stores", storeHandler.GetStores)
		protected.GET("/stores/admin", admin, storeHandler.GetStoresForAdmin)
		protected.GET("/stores/stats", admin, statHandler.GetStoreStats)
		protected.POST("/stores", admin, storeHandler.CreateStore)
		protected.GET("/stores/:id", storeHandler.GetStore)
		// The store id shares the :id wildcard with the routes above.
		protected.GET("/stores/:id/ratings", authMiddleware.RequireStoreOwnerOrAdmin("id"), storeHandler.GetStoreRatings)
		protected.PUT("/stores/:id", admin, storeHandler.UpdateStore)
		protected.DELETE("/stores/:id", admin, storeHandler.DeleteStore)

		// Rating routes
		protected.POST("/ratings", authMiddleware.RequireRoles(entity.RoleNormalUser, entity.RoleSystemAdmin), ratingHandler.Submit)
		protected.GET("/ratings", admin, ratingHandler.GetAllRatings)
		protected.GET("/ratings/stats", admin, statHandler.GetRatingStats)
		protected.GET("/ratings/user", ratingHandler.GetMyRatings)
		protected.GET("/ratings/store/:storeId", ratingHandler.GetStoreRatings)
		protected.GET("/ratings/user/:storeId", ratingHandler.GetUserRating)
		protected.PUT("/ratings/:id", authMiddleware.RequireRatingOwnerOrAdmin("id"), ratingHandler.Update)
		protected.DELETE("/ratings/:id", authMiddleware.RequireRatingOwnerOrAdmin("id"), ratingHandler.Delete)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// Handler exposes the router, for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := cfg.Origins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
