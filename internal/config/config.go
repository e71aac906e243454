package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	LogLevel      string
	PublicBaseURL string

	UploadDir        string
	MaxUploadSize    int64
	CloudinaryURL    string
	CloudinaryFolder string

	MailProvider  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	ResendAPIKey  string
	MailFrom      string
	OperatorEmail string
	StoreName     string

	AdminPasswordHash string
	AuthSecret        string
	CORSOrigins       []string

	WorkerPoolSize  int
	TaskQueueSize   int
	TaskTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Mail providers understood by the notification adapter.
const (
	MailProviderLog    = "log"
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
)

const (
	defaultRunAddress       = ":8080"
	defaultUploadDir        = "uploads"
	defaultMaxUploadSize    = 5 << 20
	defaultCloudinaryFolder = "bakery"
	defaultSMTPHost         = "smtp.gmail.com"
	defaultSMTPPort         = 587
	defaultStoreName        = "Bakery"
	defaultAuthSecret       = "change-me-in-production"
	defaultCORSOrigins      = "*"
	defaultLogLevel         = "info"
	defaultWorkerPoolSize   = 4
	defaultTaskQueueSize    = 64
	defaultTaskTimeout      = 30 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	dotenv, err := godotenv.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return load(os.Args[1:], withFallback(os.LookupEnv, dotenv))
}

type envLookup func(string) (string, bool)

// withFallback consults the process environment first and the .env values second.
func withFallback(primary envLookup, fallback map[string]string) envLookup {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", portAddress(lookup)),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PublicBaseURL:     getString(lookup, "PUBLIC_BASE_URL", ""),
		UploadDir:         getString(lookup, "UPLOAD_DIR", defaultUploadDir),
		MaxUploadSize:     int64(getInt(lookup, "MAX_UPLOAD_SIZE", defaultMaxUploadSize)),
		CloudinaryURL:     getString(lookup, "CLOUDINARY_URL", ""),
		CloudinaryFolder:  getString(lookup, "CLOUDINARY_FOLDER", defaultCloudinaryFolder),
		MailProvider:      strings.ToLower(getString(lookup, "MAIL_PROVIDER", "")),
		SMTPHost:          getString(lookup, "SMTP_HOST", defaultSMTPHost),
		SMTPPort:          getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:      getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:      getString(lookup, "SMTP_PASSWORD", ""),
		ResendAPIKey:      getString(lookup, "RESEND_API_KEY", ""),
		MailFrom:          getString(lookup, "MAIL_FROM", ""),
		OperatorEmail:     getString(lookup, "OPERATOR_EMAIL", ""),
		StoreName:         getString(lookup, "STORE_NAME", defaultStoreName),
		AdminPasswordHash: getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		AuthSecret:        getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		TaskQueueSize:     getInt(lookup, "TASK_QUEUE_SIZE", defaultTaskQueueSize),
		TaskTimeout:       getDuration(lookup, "TASK_TIMEOUT", defaultTaskTimeout),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("bakery", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		corsOrigins        = getString(lookup, "CORS_ORIGINS", defaultCORSOrigins)
		taskTimeoutStr     = cfg.TaskTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL or MongoDB connection string")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Absolute base URL the storefront is served from")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for locally stored uploads")
	fs.StringVar(&cfg.MailProvider, "mail-provider", cfg.MailProvider, "E-mail provider: smtp, resend or log")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma-separated list of allowed origins")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of background task workers")
	fs.IntVar(&cfg.TaskQueueSize, "task-queue", cfg.TaskQueueSize, "Background task queue capacity")
	fs.StringVar(&taskTimeoutStr, "task-timeout", taskTimeoutStr, "Timeout for a single background task")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TaskTimeout, err = time.ParseDuration(taskTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid task timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if hashFile, ok := lookup("ADMIN_PASSWORD_HASH_FILE"); ok && hashFile != "" {
		content, err := os.ReadFile(hashFile)
		if err != nil {
			return nil, fmt.Errorf("read admin password hash file: %w", err)
		}
		cfg.AdminPasswordHash = strings.TrimSpace(string(content))
	}

	cfg.CORSOrigins = splitList(corsOrigins)
	cfg.MailProvider = strings.ToLower(strings.TrimSpace(cfg.MailProvider))
	if cfg.MailProvider == "" {
		cfg.MailProvider = detectMailProvider(cfg)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.TaskQueueSize <= 0 {
		cfg.TaskQueueSize = defaultTaskQueueSize
	}

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}

	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = defaultTaskTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PublicBaseURL != "" {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("public base URL must be an absolute http(s) URL, got %q", cfg.PublicBaseURL)
		}
		cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	}

	if cfg.AuthEnabled() && (cfg.AuthSecret == "" || cfg.AuthSecret == defaultAuthSecret) {
		return nil, fmt.Errorf("operator authentication requires AUTH_SECRET to be set")
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}

	switch cfg.MailProvider {
	case MailProviderLog:
	case MailProviderSMTP:
		if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("smtp mail provider requires SMTP_USERNAME and SMTP_PASSWORD")
		}
	case MailProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend mail provider requires RESEND_API_KEY")
		}
		if cfg.MailFrom == "" {
			return nil, fmt.Errorf("resend mail provider requires MAIL_FROM")
		}
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}

	return cfg, nil
}

// AuthEnabled reports whether operator routes are protected.
func (c *Config) AuthEnabled() bool {
	return c.AdminPasswordHash != ""
}

func detectMailProvider(cfg *Config) string {
	switch {
	case cfg.ResendAPIKey != "":
		return MailProviderResend
	case cfg.SMTPUsername != "" && cfg.SMTPPassword != "":
		return MailProviderSMTP
	default:
		return MailProviderLog
	}
}

func portAddress(lookup envLookup) string {
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultRunAddress
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
