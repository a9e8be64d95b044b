package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "vinylscan-dev-secret"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreDatabase = "database"
	SessionStoreMemory   = "memory"
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Session session
	Discogs discogs
	CORS    cors
}

type db struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type session struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Store  string        `env:"SESSION_STORE" envDefault:"database"`
}

type discogs struct {
	Token     string        `env:"DISCOGS_TOKEN"`
	BaseURL   string        `env:"DISCOGS_BASE_URL" envDefault:"https://api.discogs.com"`
	UserAgent string        `env:"DISCOGS_USER_AGENT"`
	Timeout   time.Duration `env:"DISCOGS_TIMEOUT" envDefault:"10s"`
}

type cors struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Verbose reports whether debug diagnostics are enabled.
func (c *Config) Verbose() bool {
	return c.Env != EnvProd
}

// Load reads .env (when present), the optional config file and the environment.
// An empty cfgFile skips the file lookup.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("port", 3000)
	v.SetDefault("database_driver", DriverPostgres)
	v.SetDefault("session_secret", SecretKey)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("session_store", SessionStoreDatabase)
	v.SetDefault("discogs_base_url", "https://api.discogs.com")
	v.SetDefault("discogs_user_agent", "VinylScan/1.0")
	v.SetDefault("discogs_timeout", 10*time.Second)
	v.SetDefault("cors_allowed_origins", "*")
}

func fromViper(v *viper.Viper) (*Config, error) {
	runAddress := v.GetString("run_address")
	if runAddress == "" {
		runAddress = fmt.Sprintf("localhost:%d", v.GetInt("port"))
	}

	config := Config{
		Env: strings.ToLower(v.GetString("app_env")),
		DB: db{
			Driver:      strings.ToLower(v.GetString("database_driver")),
			DatabaseURI: v.GetString("database_uri"),
		},
		Server: server{RunAddress: runAddress},
		Session: session{
			Secret: v.GetString("session_secret"),
			TTL:    v.GetDuration("session_ttl"),
			Store:  strings.ToLower(v.GetString("session_store")),
		},
		Discogs: discogs{
			Token:     v.GetString("discogs_token"),
			BaseURL:   strings.TrimRight(v.GetString("discogs_base_url"), "/"),
			UserAgent: v.GetString("discogs_user_agent"),
			Timeout:   v.GetDuration("discogs_timeout"),
		},
		CORS: cors{AllowedOrigins: splitList(v.GetString("cors_allowed_origins"))},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DB.Driver)
	}

	switch c.Session.Store {
	case SessionStoreDatabase, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.Env == EnvProd && c.Session.Secret == SecretKey {
		return fmt.Errorf("SESSION_SECRET must be set in %s", EnvProd)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
