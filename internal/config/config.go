package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrMissingDatabaseKey = errors.New("DATABASE_API_KEY is required")

type FoodbotConfig struct {
	Env           string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	GRPCServer    `yaml:"grpc_server"`
	Database      `yaml:"database"`
	Messenger     `yaml:"messenger"`
	Sessions      `yaml:"sessions"`
	Menu          `yaml:"menu"`
	KafkaService  `yaml:"kafka-service"`
	ChangeFeed    `yaml:"change_feed"`
	LogConfig     `yaml:"log_config"`
	TracingConfig `yaml:"tracing"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HOST"`
	Port string `yaml:"port" env:"PORT" env-default:"3000"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST"`
	Port string `yaml:"port" env:"GRPC_PORT"`
}

type Database struct {
	URL            string `yaml:"url" env:"DATABASE_URL,SUPABASE_URL"`
	APIKey         string `yaml:"api_key" env:"DATABASE_API_KEY,SUPABASE_ANON_KEY"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

type Messenger struct {
	VerifyToken     string        `yaml:"verify_token" env:"VERIFY_TOKEN"`
	PageAccessToken string        `yaml:"page_access_token" env:"PAGE_ACCESS_TOKEN"`
	GraphAPIURL     string        `yaml:"graph_api_url" env:"GRAPH_API_URL" env-default:"https://graph.facebook.com/v18.0"`
	SendTimeout     time.Duration `yaml:"send_timeout" env:"SEND_TIMEOUT" env-default:"10s"`
}

type Sessions struct {
	Backend    string        `yaml:"backend" env:"SESSION_BACKEND" env-default:"memory"`
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"30m"`
	MaxEntries int           `yaml:"max_entries" env:"SESSION_MAX_ENTRIES" env-default:"10000"`
	RedisURL   string        `yaml:"redis_url" env:"REDIS_URL"`
}

type Menu struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"MENU_REFRESH_INTERVAL" env-default:"5m"`
}

type KafkaService struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	OrderTopic   string   `yaml:"order_topic" env:"KAFKA_ORDER_TOPIC" env-default:"order-events"`
	FailureTopic string   `yaml:"failure_topic" env:"KAFKA_FAILURE_TOPIC" env-default:"order-failures"`
	GroupID      string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"foodbot-admin"`
}

type ChangeFeed struct {
	Source string `yaml:"source" env:"CHANGE_FEED_SOURCE" env-default:"postgres"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

type TracingConfig struct {
	Exporter     string `yaml:"exporter" env:"TRACING_EXPORTER" env-default:"none"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"SERVICE_NAME" env-default:"foodbot"`
}

func (k KafkaService) Enabled() bool {
	return len(k.Brokers) > 0
}

// DSN returns the connection string with the API key set as the password.
// Keyword/value DSNs get a password= pair appended.
func (d Database) DSN() string {
	if d.APIKey == "" {
		return d.URL
	}
	if strings.HasPrefix(d.URL, "postgres://") || strings.HasPrefix(d.URL, "postgresql://") {
		u, err := url.Parse(d.URL)
		if err != nil {
			return d.URL
		}
		username := "postgres"
		if u.User != nil && u.User.Username() != "" {
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, d.APIKey)
		return u.String()
	}
	return strings.TrimSpace(d.URL + " password=" + d.APIKey)
}

// Load reads the optional YAML file named by FOODBOT_CONFIG_PATH, then the environment.
func Load() (*FoodbotConfig, error) {
	var cfg FoodbotConfig

	configPath := os.Getenv("FOODBOT_CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *FoodbotConfig) validate() error {
	if c.Database.APIKey == "" {
		return ErrMissingDatabaseKey
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.Sessions.Backend {
	case "memory":
	case "redis":
		if c.Sessions.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Sessions.Backend)
	}
	switch c.ChangeFeed.Source {
	case "postgres":
	case "kafka":
		if !c.KafkaService.Enabled() {
			return errors.New("KAFKA_BROKERS is required for the kafka change feed")
		}
	default:
		return fmt.Errorf("unknown change feed source %q", c.ChangeFeed.Source)
	}
	return nil
}

func MustLoad() *FoodbotConfig {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v\n", err)
	}
	return cfg
}
