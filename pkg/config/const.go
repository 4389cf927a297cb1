package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "VENUELINK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "VENUELINK_DB_DSN"
	EnvDBHost = "VENUELINK_DB_HOST"
	EnvDBUser = "VENUELINK_DB_USER"
	EnvDBName = "VENUELINK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
