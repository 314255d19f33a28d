package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	CORS       CORS
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Cache      Cache
	Risk       RiskConfig
	Queue      QueueConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173" env-description:"comma separated list of allowed origins"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
	MigrateOnStart     bool          `env:"DB_MIGRATE_ON_START" env-default:"true"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT        JWTConfig
	BcryptCost int `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

type JWTConfig struct {
	SigningKey           string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	EmailVerificationTTL time.Duration `env:"JWT_EMAIL_VERIFICATION_TTL" env-default:"1h"`
	SessionTTL           time.Duration `env:"JWT_SESSION_TTL" env-default:"168h"`
	ResetPasswordTTL     time.Duration `env:"JWT_RESET_PASSWORD_TTL" env-default:"15m"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-required:"true"`
	Port     int    `env:"SMTP_PORT" env-required:"true"`
	From     string `env:"SMTP_FROM" env-required:"true"`
	FromName string `env:"SMTP_FROM_NAME" env-default:"TaskHub"`
	Pass     string `env:"SMTP_PASS" env-required:"true"`
}

type EmailConfig struct {
	Enabled     bool   `env:"EMAIL_ENABLED" env-default:"false"`
	FrontendURL string `env:"EMAIL_FRONTEND_URL" env-default:"http://localhost:5173" env-description:"base url used in verification and reset links"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type RiskConfig struct {
	URL             string        `env:"RISK_URL" env-default:"" env-description:"decision service base url, empty disables remote screening"`
	Key             string        `env:"RISK_KEY" env-default:""`
	Timeout         time.Duration `env:"RISK_TIMEOUT" env-default:"3s"`
	FailOpen        bool          `env:"RISK_FAIL_OPEN" env-default:"true" env-description:"allow registration when a screener errors"`
	MaxSignupsPerIP int64         `env:"RISK_MAX_SIGNUPS_PER_IP" env-default:"5"`
	Window          time.Duration `env:"RISK_WINDOW" env-default:"1h"`
	BlockedDomains  []string      `env:"RISK_BLOCKED_DOMAINS" env-default:"mailinator.com,guerrillamail.com,10minutemail.com"`
}

type QueueConfig struct {
	Concurrency int `env:"QUEUE_CONCURRENCY" env-default:"10"`
	MaxRetry    int `env:"QUEUE_MAX_RETRY" env-default:"5"`
}

func MustLoad() *Config {
	var cfg Config

	// .env is optional, real environment wins
	_ = godotenv.Load()

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
