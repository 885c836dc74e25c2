package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paradisian/pkg/logger"
)

type Config struct {
	BackendBaseURL string

	Port string

	CookieAuthSecret string
	CookieSecure     bool

	TemplatesDir string
	StaticDir    string

	RoomsPerPage    int
	BookingsPerPage int

	ErrorNoticeTTL   time.Duration
	SuccessNoticeTTL time.Duration

	BackendTimeout time.Duration
	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		BackendBaseURL: strings.TrimRight(getEnvStr(EnvBackendBaseURL, DefaultBackendBaseURL), "/"),

		Port: getEnvStr(EnvPort, DefaultPort),

		CookieAuthSecret: getEnvStr(EnvCookieAuthSecret, ""),
		CookieSecure:     getEnvBool(EnvCookieSecure, false),

		TemplatesDir: getEnvStr(EnvTemplatesDir, DefaultTemplatesDir),
		StaticDir:    getEnvStr(EnvStaticDir, DefaultStaticDir),

		RoomsPerPage:    getEnvNum(EnvRoomsPerPage, DefaultRoomsPerPage),
		BookingsPerPage: getEnvNum(EnvBookingsPerPage, DefaultBookingsPerPage),

		ErrorNoticeTTL:   getEnvDuration(EnvErrorNoticeTTL, DefaultErrorNoticeTTL),
		SuccessNoticeTTL: getEnvDuration(EnvSuccessNoticeTTL, DefaultSuccessNoticeTTL),

		BackendTimeout: getEnvDuration(EnvBackendTimeout, DefaultBackendTimeout),
		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

var backendURLRegex = regexp.MustCompile(`^https?://`)

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.BackendBaseURL == "" {
		errors = append(errors, "BackendBaseURL cannot be empty")
	} else if !backendURLRegex.MatchString(cfg.BackendBaseURL) {
		errors = append(errors, fmt.Sprintf("BackendBaseURL must start with 'http://' or 'https://', got: %s", cfg.BackendBaseURL))
	}

	if cfg.CookieAuthSecret == "" {
		errors = append(errors, "CookieAuthSecret cannot be empty")
	} else if len(cfg.CookieAuthSecret) < 32 {
		errors = append(errors, fmt.Sprintf("CookieAuthSecret must be at least 32 bytes, got: %d", len(cfg.CookieAuthSecret)))
	}

	if cfg.TemplatesDir == "" {
		errors = append(errors, "TemplatesDir cannot be empty")
	}

	if cfg.RoomsPerPage <= 0 {
		errors = append(errors, fmt.Sprintf("RoomsPerPage must be positive, got: %d", cfg.RoomsPerPage))
	}
	if cfg.BookingsPerPage <= 0 {
		errors = append(errors, fmt.Sprintf("BookingsPerPage must be positive, got: %d", cfg.BookingsPerPage))
	}

	if cfg.ErrorNoticeTTL <= 0 {
		errors = append(errors, fmt.Sprintf("ErrorNoticeTTL must be positive, got: %s", cfg.ErrorNoticeTTL))
	}
	if cfg.SuccessNoticeTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SuccessNoticeTTL must be positive, got: %s", cfg.SuccessNoticeTTL))
	}

	if cfg.BackendTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("BackendTimeout must be positive, got: %s", cfg.BackendTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"backend_base_url", cfg.BackendBaseURL,
		"port", cfg.Port,
		"cookie_secret_set", cfg.CookieAuthSecret != "",
		"cookie_secure", cfg.CookieSecure,
		"templates_dir", cfg.TemplatesDir,
		"static_dir", cfg.StaticDir,
		"rooms_per_page", cfg.RoomsPerPage,
		"bookings_per_page", cfg.BookingsPerPage,
		"error_notice_ttl", cfg.ErrorNoticeTTL,
		"success_notice_ttl", cfg.SuccessNoticeTTL,
		"backend_timeout", cfg.BackendTimeout,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"events_enabled", len(cfg.KafkaBrokers) > 0,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
