package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBDebug    bool
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	// empty RedisAddr disables idempotent submissions
	RedisAddr    string
	RedisDB      int
	IdempTTLSecs int

	SMTPEmail    string
	SMTPPassword string
	SMTPHost     string
	SMTPPort     string
	ClinicName   string
	ClinicPhone  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	RabbitMQURL string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads .env (when present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found")
	}

	c := &Config{
		AppPort:    getenv("APP_PORT", getenv("PORT", "5000")),
		DBDriver:   getenv("DB_DRIVER", DriverSQLite),
		DBDebug:    os.Getenv("DB_DEBUG") == "true",
		SQLitePath: getenv("SQLITE_PATH", "appointments.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "clinic"),
		MySQLUser: getenv("MYSQL_USER", "clinic"),
		MySQLPass: getenv("MYSQL_PASS", "clinic"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		IdempTTLSecs: 300,

		SMTPEmail:    os.Getenv("SMTP_EMAIL"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenv("SMTP_PORT", "465"),
		ClinicName:   getenv("CLINIC_NAME", "Nisha Health Clinic"),
		ClinicPhone:  getenv("CLINIC_PHONE", "+977-9800000000"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverMySQL:
		return c.MySQLDSN()
	case DriverPostgres:
		return c.PostgresDSN
	default:
		return c.SQLitePath
	}
}

func (c *Config) IdempotencyEnabled() bool { return c.RedisAddr != "" }

func (c *Config) SMTPAddr() string { return net.JoinHostPort(c.SMTPHost, c.SMTPPort) }
