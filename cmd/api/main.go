package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/venuelinkhq/venuelink-backend/api/routes"
	internalauth "github.com/venuelinkhq/venuelink-backend/internal/auth"
	"github.com/venuelinkhq/venuelink-backend/internal/calendar"
	"github.com/venuelinkhq/venuelink-backend/internal/chatbridge"
	"github.com/venuelinkhq/venuelink-backend/internal/messages"
	"github.com/venuelinkhq/venuelink-backend/internal/notifications"
	"github.com/venuelinkhq/venuelink-backend/internal/orders"
	"github.com/venuelinkhq/venuelink-backend/internal/pricing"
	"github.com/venuelinkhq/venuelink-backend/internal/settlements"
	"github.com/venuelinkhq/venuelink-backend/internal/users"
	"github.com/venuelinkhq/venuelink-backend/pkg/auth/session"
	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/migrate"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/redis"
	"github.com/venuelinkhq/venuelink-backend/pkg/slack"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, outboxService, usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	messagesRepo := messages.NewRepository(dbClient.DB())
	messagesService, err := messages.NewService(messagesRepo, dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create messages service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(pricing.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	settlementsService, err := settlements.NewService(settlements.NewRepository(dbClient.DB()), dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create settlements service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config:               cfg,
		Logger:               logg,
		DB:                   dbClient.DB(),
		Redis:                redisClient,
		SessionManager:       sessionManager,
		AuthService:          authService,
		UsersService:         usersService,
		OrdersService:        ordersService,
		MessagesService:      messagesService,
		PricingService:       pricingService,
		SettlementsService:   settlementsService,
		NotificationsService: notificationsService,
		CalendarRepo:         calendar.NewRepository(dbClient.DB()),
	}

	if cfg.Slack.WebhookURL != "" && cfg.Slack.SigningSecret != "" {
		slackClient, err := slack.NewClient(cfg.Slack)
		if err != nil {
			logg.Error(context.Background(), "failed to create slack client", err)
			os.Exit(1)
		}
		inbound, err := chatbridge.NewInbound(messagesRepo, messagesService)
		if err != nil {
			logg.Error(context.Background(), "failed to create slack inbound bridge", err)
			os.Exit(1)
		}
		deps.SlackClient = slackClient
		deps.SlackInbound = inbound
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
