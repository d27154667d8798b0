// Package server contains the HTTP handlers and routing of the blog.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "scribe/docs" // swagger docs
	"scribe/internal/cache"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/media"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *middleware.SessionManager
	limiter        *middleware.RateLimiter
	media          *media.Store

	feeds    *service.FeedService
	posts    *service.PostService
	comments *service.CommentService
	follows  *service.FollowService
	accounts *service.AccountService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; pages may be nil to disable the global feed cache.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, pages cache.PageCache) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server requires a config and a database")
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	store := media.NewStore(cfg.MediaRoot, cfg.MediaURL, cfg.ImageMaxUploadSizeMB)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("scribe-api"),
		sessions:       middleware.NewSessionManager(cfg),
		limiter:        middleware.NewRateLimiter(redisClient, cfg.Env, middleware.FailOpen),
		media:          store,
	}

	s.feeds = service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, commentRepo, pages, store, service.FeedOptions{
		PerPage:  cfg.PostsPerPage,
		CacheTTL: cfg.IndexCacheTTL(),
	})
	s.posts = service.NewPostService(postRepo, groupRepo, store)
	s.comments = service.NewCommentService(commentRepo, postRepo)
	s.follows = service.NewFollowService(followRepo, userRepo)
	s.accounts = service.NewAccountService(userRepo)

	return s, nil
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := (s.config.ImageMaxUploadSizeMB + 1) * 1024 * 1024
	if bodyLimit <= 1024*1024 {
		bodyLimit = 4 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:      "Scribe",
		BodyLimit:    bodyLimit,
		UnescapePath: true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return models.RespondWithError(c, fiber.StatusNotFound, &models.AppError{
			Code:    models.CodeNotFound,
			Message: fiberErr.Message,
		})
	}

	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
		if !models.HasCode(err, models.CodeInternal) && fiberErr == nil {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || !s.config.IsProduction()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Use(s.sessions.Authenticate())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Scribe Metrics Dashboard",
	}))
	app.Get("/swagger/*", swagger.HandlerDefault)

	if prefix := strings.TrimSuffix(s.config.MediaURL, "/"); prefix != "" && s.config.MediaRoot != "" {
		app.Static(prefix, s.config.MediaRoot, fiber.Static{MaxAge: 3600})
	}

	loginRequired := middleware.LoginRequired(s.loginURL())

	auth := app.Group("/auth")
	auth.Get("/signup/", s.SignupForm)
	auth.Post("/signup/", s.limiter.Limit("signup", 3, 10*time.Minute), s.Signup)
	auth.Get("/login/", s.LoginForm)
	auth.Post("/login/", s.limiter.Limit("login", 10, 5*time.Minute), s.Login)
	auth.Post("/logout/", s.Logout)

	app.Get("/", s.Index)
	app.Get("/group/:slug/", s.GroupPosts)
	app.Get("/follow/", loginRequired, s.FollowIndex)

	app.Get("/create/", loginRequired, s.CreatePostForm)
	app.Post("/create/", loginRequired, s.limiter.Limit("create_post", 10, 5*time.Minute), s.CreatePost)

	// Specific /profile/:username/<action>/ routes before the profile itself
	profile := app.Group("/profile/:username")
	profile.Get("/follow/", loginRequired, s.ProfileFollow)
	profile.Post("/follow/", loginRequired, s.ProfileFollow)
	profile.Get("/unfollow/", loginRequired, s.ProfileUnfollow)
	profile.Post("/unfollow/", loginRequired, s.ProfileUnfollow)
	profile.Get("/", s.Profile)

	posts := app.Group("/posts/:post_id")
	posts.Get("/edit/", loginRequired, s.EditPostForm)
	posts.Post("/edit/", loginRequired, s.EditPost)
	posts.Post("/comment/", loginRequired, s.limiter.Limit("add_comment", 20, time.Minute), s.AddComment)
	posts.Get("/", s.PostDetail)
}

func (s *Server) loginURL() string {
	if s.config.LoginURL == "" {
		return "/auth/login/"
	}
	return s.config.LoginURL
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: the
// page cache falls back to memory, so a missing client reports "unavailable"
// without failing the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http: %w", err))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			errs = append(errs, fmt.Errorf("close database: %w", cerr))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", rerr))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return errors.Join(errs...)
}
