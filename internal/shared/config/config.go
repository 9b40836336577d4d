package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// ErrOutOfRange is returned when a numeric setting is outside its allowed range.
var ErrOutOfRange = errors.New("config value out of range")

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys. A double underscore separates nested keys, so
// PORTAL_DATABASE__DSN sets database.dsn.
const EnvPrefix = "PORTAL_"

type Config struct {
	AppEnv   AppEnv         `koanf:"app_env"`
	LogLevel string         `koanf:"log_level"`
	SeedFile string         `koanf:"seed_file"`
	HTTP     HTTPConfig     `koanf:"http"`
	Database DatabaseConfig `koanf:"database"`
	LDB      LDBConfig      `koanf:"ldb"`
	Email    EmailConfig    `koanf:"email"`
	Telegram TelegramConfig `koanf:"telegram"`
	AMQP     AMQPConfig     `koanf:"amqp"`
	Importer ImporterConfig `koanf:"importer"`
	Podcasts PodcastsConfig `koanf:"podcasts"`
}

type HTTPConfig struct {
	Port         string        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

type DatabaseConfig struct {
	Driver  DatabaseDriver `koanf:"driver"`
	DSN     string         `koanf:"dsn"`
	Migrate bool           `koanf:"migrate"`
}

// LDBConfig configures the live departure board SOAP service.
type LDBConfig struct {
	Endpoint    string        `koanf:"endpoint"`
	Token       string        `koanf:"token"`
	MaxServices int           `koanf:"max_services"`
	MaxResults  int           `koanf:"max_results"`
	Timeout     time.Duration `koanf:"timeout"`
}

type EmailConfig struct {
	Host       string   `koanf:"host"`
	Port       int      `koanf:"port"`
	Username   string   `koanf:"username"`
	Password   string   `koanf:"password"`
	From       string   `koanf:"from"`
	Recipients []string `koanf:"recipients"`
}

type TelegramConfig struct {
	BotToken        string  `koanf:"bot_token"`
	APIURL          string  `koanf:"api_url"`
	FeedbackChatIDs []int64 `koanf:"feedback_chat_ids"`
}

type AMQPConfig struct {
	URL        string `koanf:"url"`
	Exchange   string `koanf:"exchange"`
	RoutingKey string `koanf:"routing_key"`
}

type ImporterConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
}

type PodcastsConfig struct {
	TopDownloadsRSSURL string `koanf:"top_downloads_rss_url"`
	ITunesUURL         string `koanf:"itunesu_url"`
}

var defaults = map[string]any{
	"app_env":                        "production",
	"log_level":                      "info",
	"http.port":                      "8080",
	"http.read_timeout":              "15s",
	"http.write_timeout":             "15s",
	"http.idle_timeout":              "60s",
	"database.driver":                "sqlite",
	"database.dsn":                   "file:portal.db?_time_format=sqlite",
	"database.migrate":               true,
	"ldb.endpoint":                   "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb11.asmx",
	"ldb.max_services":               10,
	"ldb.max_results":                1,
	"ldb.timeout":                    "10s",
	"email.port":                     25,
	"email.from":                     "portal@localhost",
	"telegram.api_url":               "https://api.telegram.org",
	"amqp.exchange":                  "portal",
	"amqp.routing_key":               "events",
	"importer.enabled":               true,
	"importer.interval":              "30m",
	"importer.timeout":               "20s",
	"podcasts.top_downloads_rss_url": "http://rss.oucs.ox.ac.uk/oxitems/topdownloads.xml",
	"podcasts.itunesu_url":           "http://deimos.apple.com/WebObjects/Core.woa/Browse/ox-ac-uk-public",
}

// Load reads configuration from path, or from the first config.* file found
// in the working directory when path is empty. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// .env is optional
	_ = godotenv.Load()

	configFile := path
	if configFile == "" {
		configFiles := []string{
			"config.yaml",
			"config.yml",
			"config.json",
			"config.toml",
		}

		configFile, _ = lo.Find(configFiles, func(file string) bool {
			_, err := os.Stat(file)
			return err == nil
		})
	}

	if configFile != "" {
		parser, err := parserFor(configFile)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	// Lists coming from the environment arrive as comma-separated strings
	if v, ok := k.Get("telegram.feedback_chat_ids").(string); ok {
		k.Set("telegram.feedback_chat_ids", ParseChatIDs(v))
	}
	if v, ok := k.Get("email.recipients").(string); ok {
		k.Set("email.recipients", ParseList(v))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	appEnv, err := ParseAppEnv(k.String("app_env"))
	if err != nil {
		appEnv = AppEnvProduction
	}
	cfg.AppEnv = appEnv

	driver, err := ParseDatabaseDriver(k.String("database.driver"))
	if err != nil {
		return nil, oops.With("driver", k.String("database.driver")).Wrap(err)
	}
	cfg.Database.Driver = driver

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.LDB.MaxResults < 0:
		return oops.With("ldb.max_results", c.LDB.MaxResults).Wrap(ErrOutOfRange)
	case c.LDB.MaxServices <= 0:
		return oops.With("ldb.max_services", c.LDB.MaxServices).Wrap(ErrOutOfRange)
	case c.Importer.Interval <= 0:
		return oops.With("importer.interval", c.Importer.Interval).Wrap(ErrOutOfRange)
	}
	return nil
}

func parserFor(configFile string) (koanf.Parser, error) {
	switch ext := filepath.Ext(configFile); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, oops.Errorf("unsupported config file extension: %s", ext)
	}
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// ParseChatIDs parses comma-separated chat IDs string into []int64
func ParseChatIDs(s string) []int64 {
	return lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}

// ParseList splits a comma-separated string, dropping blanks.
func ParseList(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}
