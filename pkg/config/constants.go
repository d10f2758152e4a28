package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "WARUNGPOS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "WARUNGPOS_DB_DSN"
	EnvDBHost = "WARUNGPOS_DB_HOST"
	EnvDBUser = "WARUNGPOS_DB_USER"
	EnvDBName = "WARUNGPOS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
