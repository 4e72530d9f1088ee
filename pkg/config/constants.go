package config

const (
	// EnvPrefix is the envconfig prefix shared by every SHOPPU_* variable.
	EnvPrefix = "SHOPPU"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPPU_DB_DSN"
	EnvDBHost = "SHOPPU_DB_HOST"
	EnvDBUser = "SHOPPU_DB_USER"
	EnvDBName = "SHOPPU_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
