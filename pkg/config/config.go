package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Ledger        LedgerConfig
	Payments      PaymentsConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs error
	errs = multierr.Append(errs, c.DB.ensureDSN())
	errs = multierr.Append(errs, c.JWT.ensureSecret(c.App))
	if c.JWT.ExpirationMinutes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvJWTExpMins))
	}
	if c.Ledger.RefundGracePeriod <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvRefundGracePeriod))
	}
	if errs != nil {
		return fmt.Errorf("invalid config: %w", errs)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"SSBCOMPASS_APP_ENV" required:"true"`
	Port         string `envconfig:"SSBCOMPASS_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"SSBCOMPASS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SSBCOMPASS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// IsProd accepts both "prod" and "production".
func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	Driver     string `envconfig:"SSBCOMPASS_DB_DRIVER" default:"memory"`
	DSN        string `envconfig:"SSBCOMPASS_DB_DSN"`
	SQLitePath string `envconfig:"SSBCOMPASS_DB_SQLITE_PATH" default:"file:ssbcompass.db?cache=shared"`

	LegacyHost     string `envconfig:"SSBCOMPASS_DB_HOST"`
	LegacyPort     int    `envconfig:"SSBCOMPASS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SSBCOMPASS_DB_USER"`
	LegacyPassword string `envconfig:"SSBCOMPASS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SSBCOMPASS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SSBCOMPASS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SSBCOMPASS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SSBCOMPASS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SSBCOMPASS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SSBCOMPASS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// NormalizedDriver lowercases the driver and maps unknown values to an empty string.
func (db DBConfig) NormalizedDriver() string {
	switch driver := strings.ToLower(strings.TrimSpace(db.Driver)); driver {
	case DBDriverMemory, DBDriverSQLite, DBDriverPostgres:
		return driver
	case "":
		return DBDriverMemory
	default:
		return ""
	}
}

// Persistent reports whether repositories should be backed by gorm.
func (db DBConfig) Persistent() bool {
	driver := db.NormalizedDriver()
	return driver == DBDriverSQLite || driver == DBDriverPostgres
}

type RedisConfig struct {
	URL          string        `envconfig:"SSBCOMPASS_REDIS_URL"`
	Address      string        `envconfig:"SSBCOMPASS_REDIS_ADDR"`
	Password     string        `envconfig:"SSBCOMPASS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SSBCOMPASS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SSBCOMPASS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SSBCOMPASS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SSBCOMPASS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SSBCOMPASS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SSBCOMPASS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SSBCOMPASS_JWT_SECRET"`
	Issuer            string `envconfig:"SSBCOMPASS_JWT_ISSUER" default:"ssbcompass"`
	ExpirationMinutes int    `envconfig:"SSBCOMPASS_JWT_EXPIRATION_MINUTES" default:"10080"`

	// UsingDevSecret is set by Load when the built-in development secret was applied.
	UsingDevSecret bool `ignored:"true"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

func (j *JWTConfig) ensureSecret(app AppConfig) error {
	if strings.TrimSpace(j.Secret) != "" {
		return nil
	}
	if app.IsProd() {
		return fmt.Errorf("%s is required in production", EnvJWTSecret)
	}
	j.Secret = devJWTSecret
	j.UsingDevSecret = true
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SSBCOMPASS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SSBCOMPASS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SSBCOMPASS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SSBCOMPASS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SSBCOMPASS_ARGON_KEY_LEN" default:"32"`
}

type LedgerConfig struct {
	RefundGracePeriod time.Duration `envconfig:"SSBCOMPASS_LEDGER_REFUND_GRACE_PERIOD" default:"72h"`
	EnforcePrice      bool          `envconfig:"SSBCOMPASS_LEDGER_ENFORCE_PRICE" default:"true"`
}

type PaymentsConfig struct {
	UPIID          string        `envconfig:"SSBCOMPASS_PAYMENTS_UPI_ID" default:"ssbcompass@axl"`
	PayeeName      string        `envconfig:"SSBCOMPASS_PAYMENTS_PAYEE_NAME" default:"SSB COMPASS"`
	IdempotencyTTL time.Duration `envconfig:"SSBCOMPASS_IDEMPOTENCY_TTL" default:"24h"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SSBCOMPASS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SSBCOMPASS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"SSBCOMPASS_AUTO_MIGRATE" default:"false"`
	SeedDemoData bool `envconfig:"SSBCOMPASS_SEED_DEMO_DATA" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	driver := db.NormalizedDriver()
	if driver == "" {
		return fmt.Errorf("%s must be one of %s, %s, %s", EnvDBDriver, DBDriverMemory, DBDriverSQLite, DBDriverPostgres)
	}
	if driver != DBDriverPostgres || db.DSN != "" {
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
