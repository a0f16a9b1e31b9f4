// Package server contains the HTTP handlers for the application's API.
package server

import (
	"time"

	"mesa/internal/bootstrap"
	"mesa/internal/config"
	"mesa/internal/middleware"
	"mesa/internal/recommend"
	"mesa/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	accounts    *service.AccountService
	friends     *service.FriendService
	posts       *service.PostService
	groups      *service.GroupService
	restaurants *service.RestaurantService
	engine      *recommend.Engine
}

// NewServer wires a server from an initialized runtime.
func NewServer(rt *bootstrap.Runtime) *Server {
	return &Server{
		config:         rt.Config,
		redis:          rt.Redis,
		promMiddleware: middleware.InitMetrics("mesa-api"),
		accounts:       service.NewAccountService(rt.Users, rt.Posts, rt.Friends, rt.Groups),
		friends:        service.NewFriendService(rt.Users, rt.Friends),
		posts:          service.NewPostService(rt.Users, rt.Posts),
		groups:         service.NewGroupService(rt.Users, rt.Groups),
		restaurants:    service.NewRestaurantService(rt.CatalogDB),
		engine:         rt.Engine,
	}
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so browser clients
	// still get CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
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
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public browse routes
	api.Get("/posts", s.GetPosts)
	api.Get("/restaurants", s.GetRestaurants)
	api.Get("/restaurants/:id", s.GetRestaurant)

	protected := api.Group("", middleware.AuthRequired(s.config.JWTSecret))

	protected.Get("/users", s.GetUsernames)
	protected.Get("/users/all", s.GetAllUsernames)
	protected.Get("/users/filter", s.FilterUsersByDietary)

	protected.Put("/profile", s.UpdateProfile)
	protected.Put("/profile/favorites", s.UpdateFavorites)
	protected.Put("/profile/dietary", s.UpdateDietary)

	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Post("/", s.AddFriend)
	friends.Delete("/:friend", s.RemoveFriend)

	protected.Post("/posts", s.CreatePost)
	protected.Delete("/posts/:id", s.DeletePost)

	groups := protected.Group("/groups")
	groups.Post("/", s.CreateGroup)
	groups.Get("/", s.GetMyGroups)
	groups.Post("/dietary", s.GroupDietary)
	groups.Post("/:id/leave", s.LeaveGroup)
	groups.Post("/:id/recommend", s.RecommendForGroup)
	groups.Get("/:id/preferences", s.GroupPreferences)
	groups.Delete("/:id", s.DeleteGroup)
}

// HealthCheck reports liveness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
