package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Ticket      TicketConfig
	Printer     PrinterConfig
	Idempotency IdempotencyConfig
	Admin       AdminConfig
}

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	Debug     bool
	APIPrefix string
	LogLevel  string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
	Debug      bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// TicketConfig controls the plain-text receipt layout
type TicketConfig struct {
	Width       int
	FooterWidth int
	Timezone    string
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
}

type IdempotencyConfig struct {
	TTL             time.Duration
	CleanupSchedule string // cron spec, e.g. "@hourly"
}

// AdminConfig seeds an initial account when both fields are set
type AdminConfig struct {
	Name     string
	Login    string
	Password string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	SetDefaults(viper.GetViper())
	return FromViper(viper.GetViper())
}

// SetDefaults registers the default value of every setting on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "invoice-ticket-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "invoices")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("SQLITE_PATH", "./storage/invoices.sqlite3")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,Idempotency-Key")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("TICKET_WIDTH", 32)
	v.SetDefault("TICKET_FOOTER_WIDTH", 33)
	v.SetDefault("TICKET_TIMEZONE", "UTC")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	v.SetDefault("IDEMPOTENCY_CLEANUP_SCHEDULE", "@hourly")
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_LOGIN", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// FromViper builds a Config from the values held by v
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:      v.GetString("APP_NAME"),
			Env:       v.GetString("APP_ENV"),
			Port:      v.GetString("APP_PORT"),
			Debug:     v.GetBool("APP_DEBUG"),
			APIPrefix: "/" + strings.Trim(v.GetString("API_PREFIX"), "/"),
			LogLevel:  v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			Timezone:   v.GetString("DB_TIMEZONE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			Debug:      v.GetBool("APP_DEBUG"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Ticket: TicketConfig{
			Width:       v.GetInt("TICKET_WIDTH"),
			FooterWidth: v.GetInt("TICKET_FOOTER_WIDTH"),
			Timezone:    v.GetString("TICKET_TIMEZONE"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
		},
		Idempotency: IdempotencyConfig{
			TTL:             time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
			CleanupSchedule: v.GetString("IDEMPOTENCY_CLEANUP_SCHEDULE"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Login:    v.GetString("ADMIN_LOGIN"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the ticket timezone, falling back to UTC
func (c *TicketConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown ticket timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// Level maps LOG_LEVEL to a slog level, defaulting to info
func (c *AppConfig) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
