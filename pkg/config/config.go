package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Eventing      EventingConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	BigQuery      BigQueryConfig
	Outbox        OutboxConfig
	CRM           CRMConfig
	Slack         SlackConfig
	AuthRateLimit AuthRateLimitConfig
	Calendar      CalendarConfig
	Features      FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENUELINK_APP_ENV" required:"true"`
	Port         string `envconfig:"VENUELINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENUELINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENUELINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VENUELINK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VENUELINK_DB_DSN"`
	Driver string `envconfig:"VENUELINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENUELINK_DB_HOST"`
	LegacyPort     int    `envconfig:"VENUELINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENUELINK_DB_USER"`
	LegacyPassword string `envconfig:"VENUELINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENUELINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENUELINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENUELINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENUELINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENUELINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENUELINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENUELINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VENUELINK_REDIS_ADDR"`
	Password     string        `envconfig:"VENUELINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENUELINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENUELINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENUELINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENUELINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENUELINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENUELINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VENUELINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VENUELINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VENUELINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VENUELINK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VENUELINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VENUELINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VENUELINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VENUELINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VENUELINK_ARGON_KEY_LEN" default:"32"`
}

type EventingConfig struct {
	OutboxIdempotencyTTL time.Duration `envconfig:"VENUELINK_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VENUELINK_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"VENUELINK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"VENUELINK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"VENUELINK_PUBSUB_DOMAIN_TOPIC" default:"vl-domain-events"`
	DomainSubscription string `envconfig:"VENUELINK_PUBSUB_DOMAIN_SUBSCRIPTION" required:"true"`

	// Each worker consumes the domain topic through its own fan-out
	// subscription so every consumer sees every event.
	CalendarSubscription      string `envconfig:"VENUELINK_PUBSUB_CALENDAR_SUBSCRIPTION" default:"vl-domain-events.calendar-worker"`
	NotificationsSubscription string `envconfig:"VENUELINK_PUBSUB_NOTIFICATIONS_SUBSCRIPTION" default:"vl-domain-events.notifications-worker"`
	CRMSyncSubscription       string `envconfig:"VENUELINK_PUBSUB_CRM_SYNC_SUBSCRIPTION" default:"vl-domain-events.crm-sync-worker"`
	ChatBridgeSubscription    string `envconfig:"VENUELINK_PUBSUB_CHAT_BRIDGE_SUBSCRIPTION" default:"vl-domain-events.chat-bridge-worker"`
	AnalyticsSubscription     string `envconfig:"VENUELINK_PUBSUB_ANALYTICS_SUBSCRIPTION" default:"vl-domain-events.analytics-worker"`
}

type BigQueryConfig struct {
	Dataset          string `envconfig:"VENUELINK_BIGQUERY_DATASET" default:"venuelink"`
	OrderEventsTable string `envconfig:"VENUELINK_BIGQUERY_ORDER_EVENTS_TABLE" default:"order_events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"VENUELINK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"VENUELINK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"VENUELINK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// CRMConfig points at the external chat-CRM that mirrors order activity.
type CRMConfig struct {
	BaseURL     string        `envconfig:"VENUELINK_CRM_BASE_URL"`
	AccessToken string        `envconfig:"VENUELINK_CRM_ACCESS_TOKEN"`
	Timeout     time.Duration `envconfig:"VENUELINK_CRM_TIMEOUT" default:"5s"`
}

// SlackConfig drives the team-chat bridge in both directions.
type SlackConfig struct {
	WebhookURL    string        `envconfig:"VENUELINK_SLACK_WEBHOOK_URL"`
	SigningSecret string        `envconfig:"VENUELINK_SLACK_SIGNING_SECRET"`
	Channel       string        `envconfig:"VENUELINK_SLACK_CHANNEL" default:"#orders"`
	Timeout       time.Duration `envconfig:"VENUELINK_SLACK_TIMEOUT" default:"5s"`
}

// AuthRateLimitConfig throttles credential guessing on the login endpoint.
type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"VENUELINK_AUTH_RL_LOGIN_WINDOW" default:"10m"`
	LoginIPLimit    int           `envconfig:"VENUELINK_AUTH_RL_LOGIN_IP_LIMIT" default:"30"`
	LoginEmailLimit int           `envconfig:"VENUELINK_AUTH_RL_LOGIN_EMAIL_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VENUELINK_AUTO_MIGRATE" default:"false"`
}

// CalendarConfig holds defaults for calendar events created on order accept.
type CalendarConfig struct {
	DefaultDuration time.Duration `envconfig:"VENUELINK_CALENDAR_DEFAULT_DURATION" default:"2h"`
	DefaultColor    string        `envconfig:"VENUELINK_CALENDAR_DEFAULT_COLOR" default:"#3b82f6"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
