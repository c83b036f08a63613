package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	platformstrings "numcheck/pkg/platform/strings"
)

// ReconnectPolicy decides what the lifecycle controller does after a disconnect.
type ReconnectPolicy string

const (
	// ReconnectAuto re-attempts the connection after ReconnectDelay.
	ReconnectAuto ReconnectPolicy = "auto"
	// ReconnectManual waits for an operator-triggered attempt.
	ReconnectManual ReconnectPolicy = "manual"
)

// ParseReconnectPolicy validates a policy string.
func ParseReconnectPolicy(s string) (ReconnectPolicy, error) {
	switch p := ReconnectPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ReconnectAuto, ReconnectManual:
		return p, nil
	default:
		return "", fmt.Errorf("invalid reconnect policy %q (want auto or manual)", s)
	}
}

// Config is the full process configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Session  Session  `toml:"session"`
	Browser  Browser  `toml:"browser"`
	Database Database `toml:"database"`
	Redis    Redis    `toml:"redis"`
	Kafka    Kafka    `toml:"kafka"`
	Upload   Upload   `toml:"upload"`
	Display  Display  `toml:"display"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string `toml:"addr"`
	LogLevel      string `toml:"log_level"`
	StaticDir     string `toml:"static_dir"`
	SeedOperators bool   `toml:"seed_operators"`
}

// Session configures the lifecycle controller and verification pipeline.
type Session struct {
	ReconnectPolicy ReconnectPolicy `toml:"reconnect_policy"`
	ReconnectDelay  time.Duration   `toml:"reconnect_delay"`
	CheckTimeout    time.Duration   `toml:"check_timeout"`
	// AddressSuffix is appended to every normalized number.
	AddressSuffix string `toml:"address_suffix"`
}

// Browser configures the automated messaging session.
type Browser struct {
	URL          string        `toml:"url"`
	Bin          string        `toml:"bin"`
	Headless     bool          `toml:"headless"`
	UserDataDir  string        `toml:"user_data_dir"`
	PollInterval time.Duration `toml:"poll_interval"`
	// PairingTimeout bounds how long an unpaired attempt may go without
	// showing a fresh pairing code. Zero waits forever.
	PairingTimeout time.Duration `toml:"pairing_timeout"`
}

// Database is empty when results and access logs live in memory.
type Database struct {
	URL string `toml:"url"`
}

// Redis is optional; when URL is empty lifecycle snapshots are not published.
type Redis struct {
	URL          string        `toml:"url"`
	Channel      string        `toml:"channel"`
	PoolSize     int           `toml:"pool_size"`
	MinIdleConns int           `toml:"min_idle_conns"`
	DialTimeout  time.Duration `toml:"dial_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Kafka is optional; when Brokers is empty results are not streamed.
type Kafka struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Upload configures batch file handling.
type Upload struct {
	Dir      string `toml:"dir"`
	MaxBytes int64  `toml:"max_bytes"`
}

// Display configures how stored timestamps are rendered for operators.
type Display struct {
	Timezone string `toml:"timezone"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":1221",
			LogLevel:      "info",
			SeedOperators: true,
		},
		Session: Session{
			ReconnectPolicy: ReconnectAuto,
			ReconnectDelay:  5 * time.Second,
			CheckTimeout:    30 * time.Second,
			AddressSuffix:   "@c.us",
		},
		Browser: Browser{
			URL:            "https://web.whatsapp.com",
			Headless:       false,
			UserDataDir:    ".numcheck/browser",
			PollInterval:   2 * time.Second,
			PairingTimeout: 3 * time.Minute,
		},
		Redis: Redis{
			Channel:      "numcheck:session",
			PoolSize:     10,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Topic: "numcheck.verification-results",
		},
		Upload: Upload{
			Dir:      os.TempDir(),
			MaxBytes: 10 << 20,
		},
		Display: Display{
			Timezone: "Asia/Kolkata",
		},
	}
}

// FromEnv builds a Config from defaults, an optional TOML file named by
// NUMCHECK_CONFIG, and environment overrides, in that order.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv("NUMCHECK_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString(&cfg.Server.Addr, getenv("NUMCHECK_ADDR"))
	setString(&cfg.Server.LogLevel, getenv("LOG_LEVEL"))
	setString(&cfg.Server.StaticDir, getenv("STATIC_DIR"))
	if err := setBool(&cfg.Server.SeedOperators, "SEED_OPERATORS", getenv); err != nil {
		return err
	}

	if v := getenv("RECONNECT_POLICY"); v != "" {
		p, err := ParseReconnectPolicy(v)
		if err != nil {
			return err
		}
		cfg.Session.ReconnectPolicy = p
	}
	if err := setDuration(&cfg.Session.ReconnectDelay, "RECONNECT_DELAY", getenv); err != nil {
		return err
	}
	if err := setDuration(&cfg.Session.CheckTimeout, "CHECK_TIMEOUT", getenv); err != nil {
		return err
	}

	setString(&cfg.Browser.URL, getenv("MESSAGING_WEB_URL"))
	setString(&cfg.Browser.Bin, getenv("BROWSER_BIN"))
	setString(&cfg.Browser.UserDataDir, getenv("BROWSER_USER_DATA_DIR"))
	if err := setBool(&cfg.Browser.Headless, "BROWSER_HEADLESS", getenv); err != nil {
		return err
	}
	if err := setDuration(&cfg.Browser.PollInterval, "SESSION_POLL_INTERVAL", getenv); err != nil {
		return err
	}
	if err := setDuration(&cfg.Browser.PairingTimeout, "PAIRING_TIMEOUT", getenv); err != nil {
		return err
	}

	setString(&cfg.Database.URL, getenv("DATABASE_URL"))
	setString(&cfg.Redis.URL, getenv("REDIS_URL"))
	setString(&cfg.Redis.Channel, getenv("REDIS_SESSION_CHANNEL"))

	if v := getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = platformstrings.DedupeAndTrim(strings.Split(v, ","))
	}
	setString(&cfg.Kafka.Topic, getenv("KAFKA_RESULTS_TOPIC"))

	setString(&cfg.Upload.Dir, getenv("UPLOAD_DIR"))
	if v := getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse UPLOAD_MAX_BYTES: %w", err)
		}
		cfg.Upload.MaxBytes = n
	}

	setString(&cfg.Display.Timezone, getenv("DISPLAY_TIMEZONE"))
	return nil
}

// Validate rejects configurations the process cannot run with.
func (c Config) Validate() error {
	if _, err := ParseReconnectPolicy(string(c.Session.ReconnectPolicy)); err != nil {
		return err
	}
	if c.Session.CheckTimeout <= 0 {
		return fmt.Errorf("check timeout must be positive, got %s", c.Session.CheckTimeout)
	}
	if c.Session.ReconnectDelay < 0 {
		return fmt.Errorf("reconnect delay must not be negative, got %s", c.Session.ReconnectDelay)
	}
	if c.Browser.PairingTimeout < 0 {
		return fmt.Errorf("pairing timeout must not be negative, got %s", c.Browser.PairingTimeout)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("load display timezone %q: %w", c.Display.Timezone, err)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string, getenv func(string) string) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string, getenv func(string) string) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}
