package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"hellobooks-backend/internal/config"
	infracache "hellobooks-backend/internal/infrastructure/cache"
	"hellobooks-backend/internal/infrastructure/database"
	"hellobooks-backend/pkg/cache"
	"hellobooks-backend/pkg/jwt"

	bookHandler "hellobooks-backend/internal/domains/book/handler"
	bookRepo "hellobooks-backend/internal/domains/book/repository"
	bookService "hellobooks-backend/internal/domains/book/service"
	borrowHandler "hellobooks-backend/internal/domains/borrow/handler"
	borrowRepo "hellobooks-backend/internal/domains/borrow/repository"
	borrowService "hellobooks-backend/internal/domains/borrow/service"
	userHandler "hellobooks-backend/internal/domains/user/handler"
	userRepo "hellobooks-backend/internal/domains/user/repository"
	userService "hellobooks-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton for the application lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo   userRepo.UserRepository
	BookRepo   bookRepo.BookRepository
	BorrowRepo borrowRepo.BorrowRepository

	UserService   userService.ServiceInterface
	BookService   bookService.ServiceInterface
	BorrowService borrowService.ServiceInterface

	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.BookHandler
	BorrowHandler *borrowHandler.BorrowHandler
}

// NewContainer builds the dependency graph in order: config, infrastructure,
// repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infracache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infracache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Cache is an optimization; a dead redis must not stop the API.
			log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool, c.Cache)
	c.BorrowRepo = borrowRepo.NewPostgresBorrowRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BorrowService = borrowService.NewBorrowService(
		c.BorrowRepo,
		c.BookRepo,
		c.UserRepo,
		borrowService.Policy{
			PeriodDays: c.Config.Borrow.PeriodDays,
			MaxOpen:    c.Config.Borrow.MaxOpen,
		},
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.BorrowHandler = borrowHandler.NewBorrowHandler(c.BorrowService)
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		}
	}
}
