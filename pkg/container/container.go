package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"presskit-backend/internal/config"
	infraCache "presskit-backend/internal/infrastructure/cache"
	"presskit-backend/internal/infrastructure/database"
	"presskit-backend/pkg/cache"
	"presskit-backend/pkg/jwt"

	"presskit-backend/internal/domains/analytics"
	analyticsRepo "presskit-backend/internal/domains/analytics/repository"
	"presskit-backend/internal/domains/presskit"
	presskitHandler "presskit-backend/internal/domains/presskit/handler"
	presskitRepo "presskit-backend/internal/domains/presskit/repository"
	presskitService "presskit-backend/internal/domains/presskit/service"
	"presskit-backend/internal/domains/subscription"
	subscriptionHandler "presskit-backend/internal/domains/subscription/handler"
	subscriptionRepo "presskit-backend/internal/domains/subscription/repository"
	subscriptionService "presskit-backend/internal/domains/subscription/service"
	"presskit-backend/internal/domains/template"
	templateHandler "presskit-backend/internal/domains/template/handler"
	templateRepo "presskit-backend/internal/domains/template/repository"
	templateService "presskit-backend/internal/domains/template/service"
	"presskit-backend/internal/domains/user"
	userHandler "presskit-backend/internal/domains/user/handler"
	userRepo "presskit-backend/internal/domains/user/repository"
	userService "presskit-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	UserRepo         user.Repository
	PresskitRepo     presskit.Repository
	TemplateRepo     template.Repository
	SubscriptionRepo subscription.Repository
	AnalyticsRepo    analytics.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	UserService         user.Service
	PresskitService     presskit.Service
	TemplateService     template.Service
	SubscriptionService subscription.Service

	// ========================================
	// HANDLER LAYER
	// ========================================

	UserHandler         *userHandler.UserHandler
	PresskitHandler     *presskitHandler.PresskitHandler
	TemplateHandler     *templateHandler.TemplateHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
}

// NewContainer builds the whole graph in dependency order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	db := database.NewPostgresDB(&database.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,

		MaxConns:          int32(cfg.Database.MaxConns),
		MinConns:          int32(cfg.Database.MinConns),
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,

		MaxRetries:     5,
		RetryDelay:     time.Second,
		ConnectTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: CACHE
	// ========================================
	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis is required: it backs sessions, not just caching.
	if err := redisClient.Connect(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisClient

	// ========================================
	// STEP 4: JWT
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 5: DOMAIN LAYERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.PresskitRepo = presskitRepo.NewPostgresRepository(pool)
	c.TemplateRepo = templateRepo.NewPostgresRepository(pool)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(pool)
	c.AnalyticsRepo = analyticsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)
	c.PresskitService = presskitService.NewPresskitService(c.PresskitRepo, c.UserRepo, c.AnalyticsRepo)
	c.TemplateService = templateService.NewTemplateService(c.TemplateRepo, c.Cache)
	c.SubscriptionService = subscriptionService.NewSubscriptionService(c.SubscriptionRepo, c.UserRepo, c.PresskitRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PresskitHandler = presskitHandler.NewPresskitHandler(c.PresskitService)
	c.TemplateHandler = templateHandler.NewTemplateHandler(c.TemplateService)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Println("[CONTAINER] Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[CONTAINER] Failed to close redis: %v", err)
			} else {
				log.Println("[CONTAINER] Redis connections closed")
			}
		}
	}
}
