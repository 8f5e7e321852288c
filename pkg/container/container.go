package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"localbiz-backend/internal/config"
	"localbiz-backend/internal/infrastructure/cache"
	"localbiz-backend/internal/infrastructure/database"
	"localbiz-backend/internal/infrastructure/email"
	"localbiz-backend/internal/infrastructure/session"
	"localbiz-backend/internal/infrastructure/storage"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/pkg/jwt"

	apiHandler "localbiz-backend/internal/domains/api/handler"
	bizHandler "localbiz-backend/internal/domains/business/handler"
	bizRepo "localbiz-backend/internal/domains/business/repository"
	bizService "localbiz-backend/internal/domains/business/service"
	"localbiz-backend/internal/domains/category"
	categoryHandler "localbiz-backend/internal/domains/category/handler"
	categoryRepo "localbiz-backend/internal/domains/category/repository"
	categoryService "localbiz-backend/internal/domains/category/service"
	moderationHandler "localbiz-backend/internal/domains/moderation/handler"
	moderationService "localbiz-backend/internal/domains/moderation/service"
	pagesHandler "localbiz-backend/internal/domains/pages/handler"
	pagesService "localbiz-backend/internal/domains/pages/service"
	reviewHandler "localbiz-backend/internal/domains/review/handler"
	reviewRepo "localbiz-backend/internal/domains/review/repository"
	reviewService "localbiz-backend/internal/domains/review/service"
	searchHandler "localbiz-backend/internal/domains/search/handler"
	searchService "localbiz-backend/internal/domains/search/service"
	"localbiz-backend/internal/domains/user"
	userHandler "localbiz-backend/internal/domains/user/handler"
	userRepo "localbiz-backend/internal/domains/user/repository"
	userService "localbiz-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự khởi tạo: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	Sessions   session.Store
	JWTManager *jwt.Manager
	Mailer     email.Mailer
	Media      *storage.MediaService
	Auth       *middleware.Authenticator

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo     user.Repository
	CategoryRepo category.Repository
	BusinessRepo bizRepo.RepositoryInterface
	ReviewRepo   reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService       user.Service
	CategoryService   category.Service
	BusinessService   bizService.ServiceInterface
	ReviewService     reviewService.ServiceInterface
	SearchService     *searchService.SearchService
	PagesService      *pagesService.PagesService
	ModerationService *moderationService.ModerationService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler       *userHandler.UserHandler
	CategoryHandler   *categoryHandler.CategoryHandler
	BusinessHandler   *bizHandler.Handler
	ReviewHandler     *reviewHandler.ReviewHandler
	SearchHandler     *searchHandler.SearchHandler
	APIHandler        *apiHandler.Handler
	PagesHandler      *pagesHandler.PagesHandler
	ModerationHandler *moderationHandler.ModerationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

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
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 2: INITIALIZE REDIS (sessions)
	// ========================================
	// Sessions sống trong Redis nên lỗi ở đây là fatal
	log.Println("🔴 Connecting to Redis...")

	c.Redis = cache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Sessions = session.NewRedisStore(c.Redis.Client, cfg.Session.TTL)
	log.Println("✅ Redis connected")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 3: MAIL + MEDIA
	// ========================================
	if err := c.initMailer(); err != nil {
		return nil, err
	}
	if err := c.initMedia(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 4: REPOSITORIES / SERVICES / HANDLERS
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initMailer() error {
	ec := c.Config.Email
	switch ec.Backend {
	case "smtp":
		c.Mailer = email.NewSMTPMailer(ec.SMTPHost, ec.SMTPPort, ec.SMTPUsername, ec.SMTPPassword, ec.From)
	default:
		c.Mailer = email.NewConsoleMailer(ec.From)
	}
	log.Printf("✅ Mailer ready (backend: %s)", ec.Backend)
	return nil
}

func (c *Container) initMedia(ctx context.Context) error {
	var store storage.Storage

	switch c.Config.Media.Backend {
	case "minio":
		log.Println("🪣 Connecting to MinIO...")
		minio, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio storage: %w", err)
		}
		store = minio
	default:
		local, err := storage.NewLocalStorage(c.Config.Media.Root, c.Config.Media.URL)
		if err != nil {
			return fmt.Errorf("failed to init local media storage: %w", err)
		}
		store = local
	}

	c.Media = storage.NewMediaService(store, storage.NewImageProcessor())
	log.Printf("✅ Media storage ready (backend: %s)", c.Config.Media.Backend)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.BusinessRepo = bizRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)

	// Cross-domain: business cần category lookup + media
	c.BusinessService = bizService.NewBusinessService(c.BusinessRepo, c.CategoryService, c.Media)

	// Review chỉ cần tìm business active theo slug, dùng repository trực tiếp
	// để không đếm view
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BusinessRepo)

	c.SearchService = searchService.NewSearchService(c.BusinessService, c.CategoryService, c.Media.URL)
	c.PagesService = pagesService.NewPagesService(
		c.BusinessService,
		c.CategoryService,
		c.ReviewService,
		c.Mailer,
		c.Config.Email.ContactEmail,
	)
	c.ModerationService = moderationService.NewModerationService(
		c.BusinessService,
		c.ReviewService,
		c.CategoryService,
		c.Mailer,
		c.Config.App.SiteURL,
	)
}

func (c *Container) initHandlers() {
	c.Auth = middleware.NewAuthenticator(c.Sessions, c.JWTManager, c.UserService, middleware.SessionCookie{
		Name:   c.Config.Session.CookieName,
		TTL:    c.Config.Session.TTL,
		Secure: c.Config.IsProduction(),
	})

	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Auth, c.BusinessService, c.ReviewService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService, c.BusinessService)
	c.BusinessHandler = bizHandler.NewHandler(c.BusinessService, c.CategoryService, c.ReviewService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService, c.BusinessService)
	c.SearchHandler = searchHandler.NewSearchHandler(c.SearchService)
	c.APIHandler = apiHandler.NewHandler(c.BusinessService, c.CategoryService, c.ReviewService)
	c.PagesHandler = pagesHandler.NewPagesHandler(c.PagesService, c.Config.App.MaintenanceMode)
	c.ModerationHandler = moderationHandler.NewModerationHandler(c.ModerationService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("⚠️  Failed to close database: %v", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
