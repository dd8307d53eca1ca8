package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config se carga de variables de entorno (y de un .env opcional).
type Config struct {
	// Server
	Port    int    `mapstructure:"PORT"`
	Env     string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Storage. DB_DSN vacío => memoria.
	DatabaseDSN string `mapstructure:"DB_DSN"`
	DBMigrate   bool   `mapstructure:"DB_MIGRATE"`
	// REDIS_URL vacío => las marcas de leído van al mismo storage.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth. JWT_SECRET vacío => modo dev con headers X-Debug-*.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	// Seed (solo modo memoria)
	SeedEnabled bool   `mapstructure:"SEED_ENABLED"`
	SeedFile    string `mapstructure:"SEED_FILE"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	TendenciaMeses int `mapstructure:"TENDENCIA_MESES"`
}

func (c Config) MemoryMode() bool { return strings.TrimSpace(c.DatabaseDSN) == "" }
func (c Config) DevAuth() bool    { return strings.TrimSpace(c.JWTSecret) == "" }

// Load lee la configuración. paths son directorios donde buscar un .env; sin paths usa ".".
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()

	// AutomaticEnv solo resuelve claves conocidas: todas llevan default.
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "gestion-correos")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("SEED_ENABLED", true)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("TENDENCIA_MESES", 6)

	// .env opcional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
