package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"goflare.io/billing/driver"
	"goflare.io/ember"
	emberConfig "goflare.io/ember/config"
	"goflare.io/ignite"
)

const (
	DefaultConfigFile = "./config.yaml"
	ConfigFileEnv     = "BILLING_CONFIG"
	envPrefix         = "BILLING"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address" validate:"required"`
	GRPCAddress     string        `mapstructure:"grpc_address" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type StripeConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret" validate:"required"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type NATSConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type WorkerConfig struct {
	MinWorkers int `mapstructure:"min_workers" validate:"gte=1"`
	MaxWorkers int `mapstructure:"max_workers" validate:"gtefield=MinWorkers"`
	QueueSize  int `mapstructure:"queue_size" validate:"gte=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.grpc_address", ":9090")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("postgres.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("nats.url", nats.DefaultURL)
	v.SetDefault("worker.min_workers", 1)
	v.SetDefault("worker.max_workers", 10)
	v.SetDefault("worker.queue_size", 1000)
}

// LoadConfig reads path (if non-empty), applies BILLING_* environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func ProvideApplicationConfig() (*Config, error) {
	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadConfig(path)
}

func ProvidePostgresConn(appConfig *Config) (driver.PostgresPool, error) {

	conn, err := driver.ConnectSQL(appConfig.Postgres.URL)
	if err != nil {
		return nil, err
	}

	return conn.Pool, nil
}

func ProvideEmber(appConfig *Config) (*ember.MultiCache, error) {

	conn, err := driver.ConnectRedis(appConfig.Redis.Addr, appConfig.Redis.Password, appConfig.Redis.DB)
	if err != nil {
		return nil, err
	}

	config := emberConfig.NewConfig()
	cache, err := ember.NewMultiCache(context.Background(), &config, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return cache, nil
}

func ProvideIgnite() ignite.Manager {
	return ignite.NewManager()
}

func ProvideNATS(appConfig *Config, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(appConfig.NATS.URL,
		nats.Name("billing"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return conn, nil
}

// ProvideRegistry returns a registry preloaded with the Go runtime and process collectors.
func ProvideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
