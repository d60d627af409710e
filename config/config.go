package config

import (
	"fmt"
	"strings"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MachineSourceDatabase = "database"
	MachineSourceRegistry = "registry"
)

type Config struct {
	Log             Logger          `mapstructure:"logger"`
	DB              Database        `mapstructure:"database"`
	API             API             `mapstructure:"api"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Reminder        Reminder        `mapstructure:"reminder"`
	Catalog         Catalog         `mapstructure:"catalog"`
	MachineRegistry MachineRegistry `mapstructure:"machine_registry"`
	Cache           Cache           `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level" validate:"required"`
	Encoding string `mapstructure:"encoding" validate:"oneof=json console"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// Scheduler controls the reminder generation loop. When CronExpression is set
// it takes precedence over Interval.
type Scheduler struct {
	Enabled        bool          `mapstructure:"enabled"`
	WarmUp         time.Duration `mapstructure:"warm_up" validate:"gte=0"`
	Interval       time.Duration `mapstructure:"interval" validate:"gt=0"`
	CronExpression string        `mapstructure:"cron_expression"`
}

// Reminder holds the due date anchor. Every due date is stored at AnchorHour
// in TimeZone.
type Reminder struct {
	AnchorHour      int    `mapstructure:"anchor_hour" validate:"gte=0,lte=23"`
	TimeZone        string `mapstructure:"time_zone" validate:"required"`
	InsertBatchSize int    `mapstructure:"insert_batch_size" validate:"gt=0"`
}

type Catalog struct {
	MachineSource    string        `mapstructure:"machine_source" validate:"oneof=database registry"`
	TemplateCacheTTL time.Duration `mapstructure:"template_cache_ttl" validate:"gte=0"`
}

type MachineRegistry struct {
	BaseURL          string        `mapstructure:"base_url"`
	BaseTimeout      time.Duration `mapstructure:"base_timeout"`
	BearerToken      string        `mapstructure:"bearer_token"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type API struct {
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
	// RateLimit is the per-IP request rate, in requests per second.
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gt=0"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.rate_limit", 10)
	v.SetDefault("api.rate_limit_burst", 30)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.warm_up", 10*time.Second)
	v.SetDefault("scheduler.interval", 30*time.Minute)
	v.SetDefault("scheduler.cron_expression", "")
	v.SetDefault("reminder.anchor_hour", 8)
	v.SetDefault("reminder.time_zone", "UTC")
	v.SetDefault("reminder.insert_batch_size", 100)
	v.SetDefault("catalog.machine_source", MachineSourceDatabase)
	v.SetDefault("catalog.template_cache_ttl", 5*time.Minute)
	v.SetDefault("machine_registry.base_timeout", 10*time.Second)
	v.SetDefault("machine_registry.max_request_per_min", 60)
	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and the cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := goValidator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Catalog.MachineSource == MachineSourceRegistry && c.MachineRegistry.BaseURL == "" {
		return fmt.Errorf("invalid configuration: machine_registry.base_url is required when catalog.machine_source is %q", MachineSourceRegistry)
	}
	if c.Catalog.MachineSource == MachineSourceRegistry && c.MachineRegistry.MaxRequestPerMin <= 0 {
		return fmt.Errorf("invalid configuration: machine_registry.max_request_per_min must be positive")
	}
	if _, err := c.Reminder.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location resolves the configured reminder time zone.
func (r Reminder) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("unknown reminder.time_zone %q: %w", r.TimeZone, err)
	}
	return loc, nil
}
