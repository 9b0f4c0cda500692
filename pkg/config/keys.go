package config

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "SSBCOMPASS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverMemory   = "memory"
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

const (
	EnvAppEnv       = "SSBCOMPASS_APP_ENV"
	EnvPort         = "SSBCOMPASS_APP_PORT"
	EnvLogLevel     = "SSBCOMPASS_LOG_LEVEL"
	EnvLogWarnStack = "SSBCOMPASS_LOG_WARN_STACK"

	EnvDBDriver     = "SSBCOMPASS_DB_DRIVER"
	EnvDBDSN        = "SSBCOMPASS_DB_DSN"
	EnvDBHost       = "SSBCOMPASS_DB_HOST"
	EnvDBPort       = "SSBCOMPASS_DB_PORT"
	EnvDBUser       = "SSBCOMPASS_DB_USER"
	EnvDBPassword   = "SSBCOMPASS_DB_PASSWORD"
	EnvDBName       = "SSBCOMPASS_DB_NAME"
	EnvDBSSLMode    = "SSBCOMPASS_DB_SSLMODE"
	EnvDBSQLitePath = "SSBCOMPASS_DB_SQLITE_PATH"

	EnvRedisURL  = "SSBCOMPASS_REDIS_URL"
	EnvRedisAddr = "SSBCOMPASS_REDIS_ADDR"

	EnvJWTSecret  = "SSBCOMPASS_JWT_SECRET"
	EnvJWTIssuer  = "SSBCOMPASS_JWT_ISSUER"
	EnvJWTExpMins = "SSBCOMPASS_JWT_EXPIRATION_MINUTES"

	EnvRefundGracePeriod = "SSBCOMPASS_LEDGER_REFUND_GRACE_PERIOD"
	EnvEnforcePrice      = "SSBCOMPASS_LEDGER_ENFORCE_PRICE"

	EnvUPIID          = "SSBCOMPASS_PAYMENTS_UPI_ID"
	EnvUPIPayeeName   = "SSBCOMPASS_PAYMENTS_PAYEE_NAME"
	EnvCORSOrigins    = "SSBCOMPASS_CORS_ALLOWED_ORIGINS"
	EnvSeedDemoData   = "SSBCOMPASS_SEED_DEMO_DATA"
	EnvAutoMigrate    = "SSBCOMPASS_AUTO_MIGRATE"
	EnvIdempotencyTTL = "SSBCOMPASS_IDEMPOTENCY_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

// devJWTSecret is only ever used outside production when no secret is configured.
const devJWTSecret = "ssbcompass-dev-only-secret-change-me"
