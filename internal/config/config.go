package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	// approval gating
	MinApproverGradeLevel int

	// provisioning
	DefaultEmailDomain   string
	ServiceToken         string
	DirectoryBaseURL     string // empty = self-contained assignment mode
	DirectoryTimeoutSecs int

	// notifications
	SMTPHost               string
	SMTPPort               int
	SMTPUser               string
	SMTPPass               string
	SMTPFrom               string
	SMTPFromName           string
	AdminEmail             string
	ApproverEmail          string
	NotifyMissingRecipient string // "skip" or "alert"

	// scheduler
	OverdueCronSpec string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "motac_hrms"),
		MySQLUser: getenv("MYSQL_USER", "motac"),
		MySQLPass: getenv("MYSQL_PASS", "motac"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		MinApproverGradeLevel: getenvInt("MIN_APPROVER_GRADE_LEVEL", 41),

		DefaultEmailDomain:   getenv("DEFAULT_EMAIL_DOMAIN", "motac.gov.my"),
		ServiceToken:         os.Getenv("SERVICE_TOKEN"),
		DirectoryBaseURL:     os.Getenv("DIRECTORY_BASE_URL"),
		DirectoryTimeoutSecs: getenvInt("DIRECTORY_TIMEOUT_SECONDS", 30),

		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               getenvInt("SMTP_PORT", 587),
		SMTPUser:               os.Getenv("SMTP_USER"),
		SMTPPass:               os.Getenv("SMTP_PASS"),
		SMTPFrom:               getenv("SMTP_FROM", "noreply@motac.gov.my"),
		SMTPFromName:           getenv("SMTP_FROM_NAME", "MOTAC HRMS"),
		AdminEmail:             os.Getenv("ADMIN_EMAIL"),
		ApproverEmail:          os.Getenv("APPROVER_EMAIL"),
		NotifyMissingRecipient: getenv("NOTIFY_MISSING_RECIPIENT", "skip"),

		OverdueCronSpec: getenv("OVERDUE_CRON_SPEC", "0 8 * * *"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.MinApproverGradeLevel <= 0 {
		return errors.New("MIN_APPROVER_GRADE_LEVEL must be positive")
	}
	if c.NotifyMissingRecipient != "skip" && c.NotifyMissingRecipient != "alert" {
		return fmt.Errorf("NOTIFY_MISSING_RECIPIENT must be skip or alert, got %q", c.NotifyMissingRecipient)
	}
	if c.NotifyMissingRecipient == "alert" && c.AdminEmail == "" {
		return errors.New("NOTIFY_MISSING_RECIPIENT=alert requires ADMIN_EMAIL")
	}
	if c.ServiceToken == "" {
		return errors.New("missing SERVICE_TOKEN (provisioning endpoint must not run unauthenticated)")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
