package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/api/controllers"
	webhookcontrollers "github.com/venuelinkhq/venuelink-backend/api/controllers/webhooks"
	"github.com/venuelinkhq/venuelink-backend/api/middleware"
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
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	pkgredis "github.com/venuelinkhq/venuelink-backend/pkg/redis"
	"github.com/venuelinkhq/venuelink-backend/pkg/slack"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             *gorm.DB
	Redis          *pkgredis.Client
	SessionManager sessionManager

	AuthService          internalauth.Service
	UsersService         users.Service
	OrdersService        orders.Service
	MessagesService      messages.Service
	PricingService       pricing.Service
	SettlementsService   settlements.Service
	NotificationsService notifications.Service
	CalendarRepo         *calendar.Repository

	SlackClient  *slack.Client
	SlackInbound *chatbridge.Inbound
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	// The Slack webhook only mounts when the bridge is configured; a nil
	// client would otherwise satisfy the verifier interface.
	if deps.SlackClient != nil && deps.SlackInbound != nil {
		r.Post("/api/v1/webhooks/slack", webhookcontrollers.SlackWebhook(deps.SlackClient, deps.SlackInbound, logg))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/v1/me", controllers.Me(deps.UsersService, logg))

		r.Route("/v1/meta", func(r chi.Router) {
			r.Get("/regions", controllers.MetaRegions(logg))
			r.Get("/service-types", controllers.MetaServiceTypes(logg))
		})

		r.Route("/v1/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleStaff), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(deps.OrdersService, logg))
				r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
				r.Route("/{orderID}", func(r chi.Router) {
					r.Get("/", controllers.GetOrder(deps.OrdersService, logg))
					r.Patch("/", controllers.UpdateOrderDetails(deps.OrdersService, logg))
					r.Post("/confirm", controllers.ConfirmOrder(deps.OrdersService, logg))
					r.Post("/cancel", controllers.CancelOrder(deps.OrdersService, logg))
					r.Post("/settlement", controllers.ConfirmSettlement(deps.SettlementsService, logg))
					r.Get("/settlement", controllers.GetOrderSettlement(deps.SettlementsService, logg))
					r.Get("/messages", controllers.ListOrderMessages(deps.MessagesService, logg))
					r.Post("/messages", controllers.PostOrderMessage(deps.MessagesService, logg))
					r.Get("/attachments", controllers.ListOrderAttachments(deps.OrdersService, logg))
					r.Post("/attachments", controllers.AddOrderAttachment(deps.OrdersService, logg))
				})
			})
			r.Delete("/attachments/{attachmentID}", controllers.DeleteOrderAttachment(deps.OrdersService, logg))

			r.Get("/settlements", controllers.ListSettlements(deps.SettlementsService, logg))

			r.Route("/partners", func(r chi.Router) {
				r.Post("/", controllers.CreatePartner(deps.UsersService, logg))
				r.Get("/", controllers.ListPartners(deps.UsersService, logg))
			})

			r.Route("/pricing", func(r chi.Router) {
				r.Post("/quote", controllers.QuotePrice(deps.PricingService, logg))
				r.Route("/groups", func(r chi.Router) {
					r.Get("/", controllers.ListPricingGroups(deps.PricingService, logg))
					r.Post("/", controllers.CreatePricingGroup(deps.PricingService, logg))
					r.Post("/{groupID}/rules", controllers.CreatePricingRule(deps.PricingService, logg))
					r.Post("/{groupID}/active", controllers.SetPricingGroupActive(deps.PricingService, logg))
				})
				r.Post("/rules/{ruleID}/active", controllers.SetPricingRuleActive(deps.PricingService, logg))
			})

			r.Get("/calendar", controllers.ListCalendarEvents(deps.CalendarRepo, logg))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.NotificationsService, logg))
				r.Post("/{notificationID}/read", controllers.MarkNotificationRead(deps.NotificationsService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.NotificationsService, logg))
			})
		})

		r.Route("/v1/partner", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRolePartner), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
				r.Route("/{orderID}", func(r chi.Router) {
					r.Get("/", controllers.GetOrder(deps.OrdersService, logg))
					r.Post("/decision", controllers.DecideOrder(deps.OrdersService, logg))
					r.Post("/complete", controllers.CompleteOrder(deps.OrdersService, logg))
					r.Put("/memo", controllers.SetPartnerMemo(deps.OrdersService, logg))
					r.Get("/messages", controllers.ListOrderMessages(deps.MessagesService, logg))
					r.Post("/messages", controllers.PostOrderMessage(deps.MessagesService, logg))
					r.Get("/attachments", controllers.ListOrderAttachments(deps.OrdersService, logg))
					r.Post("/attachments", controllers.AddOrderAttachment(deps.OrdersService, logg))
				})
			})
			r.Delete("/attachments/{attachmentID}", controllers.DeleteOrderAttachment(deps.OrdersService, logg))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.NotificationsService, logg))
				r.Post("/{notificationID}/read", controllers.MarkNotificationRead(deps.NotificationsService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.NotificationsService, logg))
			})
		})
	})

	return r
}
