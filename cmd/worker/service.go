package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/venuelinkhq/venuelink-backend/internal/analytics"
	"github.com/venuelinkhq/venuelink-backend/internal/calendar"
	"github.com/venuelinkhq/venuelink-backend/internal/chatbridge"
	"github.com/venuelinkhq/venuelink-backend/internal/crmsync"
	"github.com/venuelinkhq/venuelink-backend/internal/notifications"
	"github.com/venuelinkhq/venuelink-backend/pkg/bigquery"
	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/pubsub"
	"github.com/venuelinkhq/venuelink-backend/pkg/redis"
)

// consumerRunner is the common surface of every domain event consumer.
type consumerRunner interface {
	Run(ctx context.Context) error
}

type ServiceParams struct {
	Config                *config.Config
	Logger                *logger.Logger
	DB                    *db.Client
	Redis                 *redis.Client
	PubSub                *pubsub.Client
	BigQuery              *bigquery.Client
	CalendarConsumer      *calendar.Consumer
	NotificationsConsumer *notifications.Consumer
	CRMSyncConsumer       *crmsync.Consumer
	ChatBridgeConsumer    *chatbridge.Consumer
	AnalyticsConsumer     *analytics.Consumer
}

type Service struct {
	cfg       *config.Config
	logg      *logger.Logger
	db        *db.Client
	redis     *redis.Client
	pubsub    *pubsub.Client
	bigquery  *bigquery.Client
	consumers map[string]consumerRunner
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.DB == nil {
		return nil, errors.New("database client is required")
	}
	if params.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	if params.PubSub == nil {
		return nil, errors.New("pubsub client is required")
	}

	consumers := map[string]consumerRunner{}
	if params.CalendarConsumer != nil {
		consumers["calendar"] = params.CalendarConsumer
	}
	if params.NotificationsConsumer != nil {
		consumers["notifications"] = params.NotificationsConsumer
	}
	if params.CRMSyncConsumer != nil {
		consumers["crm-sync"] = params.CRMSyncConsumer
	}
	if params.ChatBridgeConsumer != nil {
		consumers["chat-bridge"] = params.ChatBridgeConsumer
	}
	if params.AnalyticsConsumer != nil {
		consumers["analytics"] = params.AnalyticsConsumer
	}
	if len(consumers) == 0 {
		return nil, errors.New("at least one consumer is required")
	}

	return &Service{
		cfg:       params.Config,
		logg:      params.Logger,
		db:        params.DB,
		redis:     params.Redis,
		pubsub:    params.PubSub,
		bigquery:  params.BigQuery,
		consumers: consumers,
	}, nil
}

func (s *Service) ensureReadiness(ctx context.Context) error {
	if err := pingDependency(ctx, s.logg, "database", s.db.Ping); err != nil {
		return err
	}
	if err := pingDependency(ctx, s.logg, "redis", s.redis.Ping); err != nil {
		return err
	}
	if err := pingDependency(ctx, s.logg, "pubsub", s.pubsub.Ping); err != nil {
		return err
	}
	if s.bigquery != nil {
		if err := pingDependency(ctx, s.logg, "bigquery", s.bigquery.Ping); err != nil {
			return err
		}
	}
	s.logg.Info(ctx, "all worker dependencies are ready")
	return nil
}

func pingDependency(ctx context.Context, logg *logger.Logger, name string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		logg.Error(ctx, fmt.Sprintf("%s ping failed", name), err)
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}

// Run blocks until a consumer fails or the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.ensureReadiness(ctx); err != nil {
		return err
	}

	errCh := make(chan error, len(s.consumers))
	for name, consumer := range s.consumers {
		name, consumer := name, consumer
		go func() {
			runCtx := s.logg.WithField(ctx, "consumer", name)
			s.logg.Info(runCtx, "consumer starting")
			errCh <- consumer.Run(runCtx)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "worker context canceled")
			return ctx.Err()
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logg.Error(ctx, "consumer stopped unexpectedly", err)
				return err
			}
			return err
		}
	}
}
