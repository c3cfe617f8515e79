package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every variable read by Load.
// EMS_DATABASE_HOST -> database.host, EMS_DATABASE_AUTO_MIGRATE -> database.auto_migrate.
const EnvPrefix = "EMS_"

type Config struct {
	App          AppConfig          `koanf:"app" validate:"required"`
	Database     DatabaseConfig     `koanf:"database" validate:"required"`
	Redis        RedisConfig        `koanf:"redis" validate:"required"`
	Kafka        KafkaConfig        `koanf:"kafka"`
	Auth         AuthConfig         `koanf:"auth" validate:"required"`
	Cache        CacheConfig        `koanf:"cache"`
	Notification NotificationConfig `koanf:"notification"`
	Storage      StorageConfig      `koanf:"storage"`
}

type AppConfig struct {
	Env          string        `koanf:"env" validate:"omitempty,oneof=development staging production test"`
	Port         string        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	CORSOrigins  string        `koanf:"cors_origins"`
	Timezone     string        `koanf:"timezone"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
	Debug           bool          `koanf:"debug"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type KafkaConfig struct {
	Brokers           string `koanf:"brokers"`
	NotificationTopic string `koanf:"notification_topic"`
	GroupID           string `koanf:"group_id"`
}

type AuthConfig struct {
	JWTSecret    string        `koanf:"jwt_secret" validate:"required,min=16"`
	AccessTTL    time.Duration `koanf:"access_ttl"`
	RefreshTTL   time.Duration `koanf:"refresh_ttl"`
	CookieSecure bool          `koanf:"cookie_secure"`
}

type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type NotificationConfig struct {
	// Delivery is either "direct" or "outbox".
	Delivery string `koanf:"delivery" validate:"omitempty,oneof=direct outbox"`
}

type StorageConfig struct {
	UploadDir    string `koanf:"upload_dir"`
	BaseURL      string `koanf:"base_url"`
	MaxImageSize int64  `koanf:"max_image_size"`
}

// Load reads EMS_* environment variables (ambient .env is autoloaded),
// applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", keyFromEnv), nil)
	if err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// keyFromEnv turns EMS_SECTION_SOME_KEY into section.some_key.
func keyFromEnv(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.App.Port == "" {
		c.App.Port = "3000"
	}
	if c.App.ReadTimeout == 0 {
		c.App.ReadTimeout = 5 * time.Second
	}
	if c.App.WriteTimeout == 0 {
		c.App.WriteTimeout = 10 * time.Second
	}
	if c.App.IdleTimeout == 0 {
		c.App.IdleTimeout = 60 * time.Second
	}
	if c.App.CORSOrigins == "" {
		c.App.CORSOrigins = "http://localhost:3000"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Kafka.NotificationTopic == "" {
		c.Kafka.NotificationTopic = "ems.notification.requested"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "go-ems-notification"
	}

	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTTL == 0 {
		c.Auth.RefreshTTL = 7 * 24 * time.Hour
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}

	if c.Notification.Delivery == "" {
		c.Notification.Delivery = "direct"
	}

	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.BaseURL == "" {
		c.Storage.BaseURL = "/uploads"
	}
	if c.Storage.MaxImageSize == 0 {
		c.Storage.MaxImageSize = 2 << 20
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) CORSOrigins() []string {
	return splitList(c.App.CORSOrigins)
}

func (c *Config) KafkaBrokers() []string {
	return splitList(c.Kafka.Brokers)
}

// Location returns the office timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
