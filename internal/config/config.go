// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Submit    RateLimitConfig `koanf:"submit_rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Mail      MailConfig      `koanf:"mail"`
	Export    ExportConfig    `koanf:"export"`
	AWS       AWSConfig       `koanf:"aws"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`
	MinPoolSize    uint64        `koanf:"min_pool_size"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// RedisConfig is optional. An empty URL disables Redis: rate limiting
// falls back to in-process buckets and logout cannot revoke tokens early.
type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	Secret    string `koanf:"secret"`
	ExpiresIn string `koanf:"expires_in"`
	Issuer    string `koanf:"issuer"`
}

// TTL parses ExpiresIn. Besides Go durations it accepts a day suffix
// ("7d") and bare seconds ("3600").
func (j JWTConfig) TTL() (time.Duration, error) {
	return ParseDuration(j.ExpiresIn)
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type MailConfig struct {
	From              string         `koanf:"from"`
	AdminEmail        string         `koanf:"admin_email"`
	NotificationEmail string         `koanf:"notification_email"`
	Timeout           time.Duration  `koanf:"timeout"`
	QueueSize         int            `koanf:"queue_size"`
	Workers           int            `koanf:"workers"`
	SMTP              SMTPConfig     `koanf:"smtp"`
	SendGrid          SendGridConfig `koanf:"sendgrid"`
	Mailgun           MailgunConfig  `koanf:"mailgun"`
	SES               SESConfig      `koanf:"ses"`
}

// Recipients returns the addresses that receive admin notifications.
func (m MailConfig) Recipients() []string {
	if m.NotificationEmail != "" {
		return splitList(m.NotificationEmail)
	}
	if m.AdminEmail != "" {
		return splitList(m.AdminEmail)
	}
	return nil
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	AltPort  int    `koanf:"alt_port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

type SendGridConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

type MailgunConfig struct {
	APIKey  string `koanf:"api_key"`
	Domain  string `koanf:"domain"`
	BaseURL string `koanf:"base_url"`
}

type SESConfig struct {
	Enabled bool `koanf:"enabled"`
}

type ExportConfig struct {
	TmpDir string `koanf:"tmp_dir"`
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`
}

// AWSConfig is shared by SES and the export archive. Without static keys
// the SDK's default credential chain applies.
type AWSConfig struct {
	Region          string `koanf:"region"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Eloska API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             5000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"mongo.database":        "eloska",
		"mongo.max_pool_size":   50,
		"mongo.min_pool_size":   5,
		"mongo.connect_timeout": "10s",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.expires_in": "7d",
		"jwt.issuer":     "eloska-api",

		"rate_limit.requests": 300,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    50,

		"submit_rate_limit.requests": 10,
		"submit_rate_limit.window":   "1m",
		"submit_rate_limit.burst":    5,

		"cors.allowed_origins": []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"mail.from":              "Eloska <no-reply@eloska.com>",
		"mail.timeout":           "10s",
		"mail.queue_size":        256,
		"mail.workers":           2,
		"mail.smtp.port":         587,
		"mail.smtp.alt_port":     465,
		"mail.sendgrid.base_url": "https://api.sendgrid.com/v3",
		"mail.mailgun.base_url":  "https://api.mailgun.net/v3",

		"export.tmp_dir": os.TempDir(),
		"export.prefix":  "exports/",

		"aws.region": "us-east-1",

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "eloska-api",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"MONGODB_URI":                 "mongo.uri",
	"MONGODB_DATABASE":            "mongo.database",
	"REDIS_URL":                   "redis.url",
	"NODE_ENV":                    "app.environment",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_SECRET":                  "jwt.secret",
	"JWT_EXPIRES_IN":              "jwt.expires_in",
	"JWT_ISSUER":                  "jwt.issuer",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"SUBMIT_RATE_LIMIT_REQUESTS":  "submit_rate_limit.requests",
	"SUBMIT_RATE_LIMIT_WINDOW":    "submit_rate_limit.window",
	"SUBMIT_RATE_LIMIT_BURST":     "submit_rate_limit.burst",
	"ALLOWED_ORIGINS":             "cors.allowed_origins",
	"MAIL_FROM":                   "mail.from",
	"ADMIN_EMAIL":                 "mail.admin_email",
	"NOTIFICATION_EMAIL":          "mail.notification_email",
	"NOTIFY_TIMEOUT":              "mail.timeout",
	"NOTIFY_QUEUE_SIZE":           "mail.queue_size",
	"NOTIFY_WORKERS":              "mail.workers",
	"SMTP_HOST":                   "mail.smtp.host",
	"SMTP_PORT":                   "mail.smtp.port",
	"SMTP_ALT_PORT":               "mail.smtp.alt_port",
	"SMTP_USER":                   "mail.smtp.user",
	"SMTP_PASS":                   "mail.smtp.password",
	"SENDGRID_API_KEY":            "mail.sendgrid.api_key",
	"MAILGUN_API_KEY":             "mail.mailgun.api_key",
	"MAILGUN_DOMAIN":              "mail.mailgun.domain",
	"SES_ENABLED":                 "mail.ses.enabled",
	"AWS_REGION":                  "aws.region",
	"AWS_ACCESS_KEY_ID":           "aws.access_key_id",
	"AWS_SECRET_ACCESS_KEY":       "aws.secret_access_key",
	"EXPORT_TMP_DIR":              "export.tmp_dir",
	"EXPORT_BUCKET":               "export.bucket",
	"EXPORT_PREFIX":               "export.prefix",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
}

var listKeys = map[string]struct{}{
	"cors.allowed_origins": {},
}

func envKeyReplacer(key, value string) (string, any) {
	mapped, ok := envKeyMap[key]
	if !ok {
		return "", nil
	}
	if _, isList := listKeys[mapped]; isList {
		return mapped, splitList(value)
	}
	return mapped, value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseDuration accepts time.ParseDuration input, "<n>d" and bare seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

const minProductionSecretLen = 32

func validate(c *Config) error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := c.JWT.TTL()
	if err != nil {
		return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.IsProduction() {
		if len(c.JWT.Secret) < minProductionSecretLen {
			return fmt.Errorf(
				"JWT_SECRET must be at least %d bytes in production",
				minProductionSecretLen,
			)
		}
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if c.Mail.Timeout <= 0 {
		return fmt.Errorf("mail.timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
