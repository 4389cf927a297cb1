package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/venuelinkhq/venuelink-backend/internal/analytics"
	"github.com/venuelinkhq/venuelink-backend/internal/calendar"
	"github.com/venuelinkhq/venuelink-backend/internal/chatbridge"
	"github.com/venuelinkhq/venuelink-backend/internal/crmsync"
	"github.com/venuelinkhq/venuelink-backend/internal/notifications"
	"github.com/venuelinkhq/venuelink-backend/internal/orders"
	"github.com/venuelinkhq/venuelink-backend/pkg/bigquery"
	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/idempotency"
	"github.com/venuelinkhq/venuelink-backend/pkg/pubsub"
	"github.com/venuelinkhq/venuelink-backend/pkg/redis"
	"github.com/venuelinkhq/venuelink-backend/pkg/slack"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "error closing pubsub", err)
		}
	}()

	idempotencyManager, err := idempotency.NewManager(redisClient, cfg.Eventing.OutboxIdempotencyTTL)
	if err != nil {
		logg.Error(ctx, "failed to create idempotency manager", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())

	calendarConsumer, err := calendar.NewConsumer(
		calendar.NewRepository(dbClient.DB()),
		pubsubClient.Subscription(cfg.PubSub.CalendarSubscription),
		idempotencyManager,
		cfg.Calendar,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create calendar consumer", err)
		os.Exit(1)
	}

	notificationsConsumer, err := notifications.NewConsumer(
		notifications.NewRepository(dbClient.DB()),
		ordersRepo,
		pubsubClient.Subscription(cfg.PubSub.NotificationsSubscription),
		idempotencyManager,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create notifications consumer", err)
		os.Exit(1)
	}

	params := ServiceParams{
		Config:                cfg,
		Logger:                logg,
		DB:                    dbClient,
		Redis:                 redisClient,
		PubSub:                pubsubClient,
		CalendarConsumer:      calendarConsumer,
		NotificationsConsumer: notificationsConsumer,
	}

	// CRM mirroring only runs when the external CRM is configured.
	if cfg.CRM.BaseURL != "" {
		crmClient, err := crmsync.NewClient(cfg.CRM)
		if err != nil {
			logg.Error(ctx, "failed to create crm client", err)
			os.Exit(1)
		}
		crmConsumer, err := crmsync.NewConsumer(
			crmClient,
			pubsubClient.Subscription(cfg.PubSub.CRMSyncSubscription),
			idempotencyManager,
			logg,
		)
		if err != nil {
			logg.Error(ctx, "failed to create crm sync consumer", err)
			os.Exit(1)
		}
		params.CRMSyncConsumer = crmConsumer
	}

	if cfg.Slack.WebhookURL != "" {
		slackClient, err := slack.NewClient(cfg.Slack)
		if err != nil {
			logg.Error(ctx, "failed to create slack client", err)
			os.Exit(1)
		}
		chatConsumer, err := chatbridge.NewConsumer(
			slackClient,
			pubsubClient.Subscription(cfg.PubSub.ChatBridgeSubscription),
			idempotencyManager,
			logg,
		)
		if err != nil {
			logg.Error(ctx, "failed to create chat bridge consumer", err)
			os.Exit(1)
		}
		params.ChatBridgeConsumer = chatConsumer
	}

	bigqueryClient, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap bigquery", err)
		os.Exit(1)
	}
	defer func() {
		if err := bigqueryClient.Close(); err != nil {
			logg.Error(ctx, "error closing bigquery", err)
		}
	}()
	params.BigQuery = bigqueryClient

	analyticsConsumer, err := analytics.NewConsumer(
		bigqueryClient,
		pubsubClient.Subscription(cfg.PubSub.AnalyticsSubscription),
		idempotencyManager,
		cfg.BigQuery,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create analytics consumer", err)
		os.Exit(1)
	}
	params.AnalyticsConsumer = analyticsConsumer

	svc, err := NewService(params)
	if err != nil {
		logg.Error(ctx, "failed to build worker service", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "env", cfg.App.Env), "starting worker")
	if err := svc.Run(ctx); err != nil && err != context.Canceled {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "worker shut down gracefully")
}
