package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "blogilista/internal/app"
	"blogilista/internal/bootstrap"
	"blogilista/internal/cache"
	"blogilista/internal/platform/rabbitmq"
	"blogilista/internal/repository"
	"blogilista/internal/transport/http/handler"
	"blogilista/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if c := corsMiddleware(app.Config.CORS.AllowedOrigins); c != nil {
		router.Use(c)
	}

	userRepo := repository.NewUserRepository(app.DB)
	blogRepo := repository.NewBlogRepository(app.DB)
	eventRepo := repository.NewEventRepository(app.DB)

	var denylist appsvc.TokenDenylist
	if app.Redis != nil {
		denylist = cache.NewTokenDenylist(app.Redis)
	}
	var publisher appsvc.EventPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.BlogEventQueue)
	}

	authService := appsvc.NewAuthService(
		userRepo,
		denylist,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	userService := appsvc.NewUserService(userRepo, blogRepo, app.Config.Auth.BcryptCost)
	blogService := appsvc.NewBlogService(blogRepo, userRepo, authService, eventRepo, publisher, appsvc.OwnershipPolicy{
		Update: app.Config.Auth.EnforceUpdateOwnership,
		Delete: app.Config.Auth.EnforceDeleteOwnership,
	})

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	blogHandler := handler.NewBlogHandler(blogService)

	routes := []handler.Route{
		{Method: http.MethodGet, Path: "/healthz", Handler: handler.HandlerFunc(healthHandler.Check)},

		{Method: http.MethodPost, Path: "/api/login", Handler: handler.HandlerFunc(authHandler.Login)},
		{Method: http.MethodPost, Path: "/api/logout", Auth: true, Handler: handler.HandlerFunc(authHandler.Logout)},

		{Method: http.MethodGet, Path: "/api/users", Handler: handler.HandlerFunc(userHandler.List)},
		{Method: http.MethodPost, Path: "/api/users", Handler: handler.HandlerFunc(userHandler.Create)},

		{Method: http.MethodGet, Path: "/api/blogs", Handler: handler.HandlerFunc(blogHandler.List)},
		{Method: http.MethodGet, Path: "/api/blogs/stats", Handler: handler.HandlerFunc(blogHandler.Stats)},
		{Method: http.MethodGet, Path: "/api/blogs/:id/events", Handler: handler.HandlerFunc(blogHandler.Events)},
		{Method: http.MethodPost, Path: "/api/blogs", Auth: true, Handler: handler.HandlerFunc(blogHandler.Create)},
		{Method: http.MethodPut, Path: "/api/blogs/:id", Auth: true, Handler: handler.HandlerFunc(blogHandler.Update)},
		{Method: http.MethodDelete, Path: "/api/blogs/:id", Auth: true, Handler: handler.HandlerFunc(blogHandler.Delete)},
	}
	register(router, routes, middleware.AuthJWT(authService))

	return router
}

func register(router gin.IRoutes, routes []handler.Route, auth gin.HandlerFunc) {
	for _, r := range routes {
		chain := make([]gin.HandlerFunc, 0, 2)
		if r.Auth {
			chain = append(chain, auth)
		}
		chain = append(chain, handler.Gin(r.Handler))
		router.Handle(r.Method, r.Path, chain...)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
