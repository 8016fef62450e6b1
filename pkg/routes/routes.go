package pkg

import (
	"context"
	"log"
	"os"

	"BillTracker/internal/auth"
	"BillTracker/internal/bills"
	"BillTracker/internal/config"
	"BillTracker/internal/events"
	"BillTracker/internal/notification"
	"BillTracker/internal/subscription"
	"BillTracker/pkg/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewEmailConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(bills.NewBillRepository),
	fx.Provide(bills.NewBillHandler),
	fx.Provide(events.NewEventRepository),
	fx.Provide(events.NewEventHandler),
	fx.Provide(subscription.NewSubscriptionRepository),
	fx.Provide(subscription.NewSubscriptionHandler),
	fx.Provide(NewFanoutService),
	fx.Provide(notification.NewNotificationRepository),
	fx.Provide(notification.NewNotificationHandler),
	fx.Provide(notification.NewFanoutScheduler),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(StartScheduler),
)

// NewFanoutService wires the fan-out against its concrete collaborators.
func NewFanoutService(
	subRepo *subscription.SubscriptionRepository,
	notifRepo *notification.NotificationRepository,
	userRepo *auth.UserRepository,
	email *config.EmailService,
) *notification.FanoutService {
	emailEcho := notification.NewEmailEcho(userRepo, email)
	return notification.NewFanoutService(subRepo, notifRepo, emailEcho)
}

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Println("Server running on http://localhost" + addr)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(addr); err != nil {
					log.Println("Server stopped:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// StartScheduler hooks the fan-out poller into the fx lifecycle.
func StartScheduler(lc fx.Lifecycle, scheduler *notification.FanoutScheduler) {
	scheduler.StartScheduler(lc)
}

func RegisterRoutes(
	e *echo.Echo,
	authHandler *auth.AuthHandler,
	billHandler *bills.BillHandler,
	eventHandler *events.EventHandler,
	subHandler *subscription.SubscriptionHandler,
	notifHandler *notification.NotificationHandler,
) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Public listing surface.
	e.GET("/bills", billHandler.List)
	e.GET("/bills/:court/:number", billHandler.Get)

	protected := e.Group("/api")
	protected.Use(middleware.JWTMiddleware)
	protected.GET("/profile", authHandler.Profile)
	protected.GET("/subscriptions", subHandler.List)
	protected.POST("/subscriptions", subHandler.Subscribe)
	protected.DELETE("/subscriptions/:topic", subHandler.Unsubscribe)
	protected.GET("/notifications", notifHandler.List)
	protected.PUT("/notifications/:id/delivered", notifHandler.MarkDelivered)

	admin := protected.Group("/admin")
	admin.Use(middleware.CasbinMiddleware)
	admin.POST("/events", eventHandler.PublishEvent)
	admin.POST("/bills", billHandler.Upsert)
}
