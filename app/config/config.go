package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Token endpoint authentication methods. Some providers reject credentials in
// the POST body and require HTTP Basic, others the reverse; this is a known
// provider-interop divergence, so the choice is per-deployment configuration.
const (
	TokenAuthBasic = "client_secret_basic"
	TokenAuthPost  = "client_secret_post"
)

// Config holds all configuration for the auth gateway
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseURL      string `yaml:"database_url"`
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Session
	SessionCookieName string        `yaml:"session_cookie_name"`
	SessionSecret     string        `yaml:"session_secret"`
	SessionTimeout    time.Duration `yaml:"session_timeout"`

	// Federated login (OIDC authorization-code flow)
	SSOEnabled         bool          `yaml:"sso_enabled"`
	SSOIssuerURL       string        `yaml:"sso_issuer_url"`
	SSOClientID        string        `yaml:"sso_client_id"`
	SSOClientSecret    string        `yaml:"sso_client_secret"`
	SSOCallbackURL     string        `yaml:"sso_callback_url"`
	SSOScopes          []string      `yaml:"sso_scopes"`
	SSOTokenAuthMethod string        `yaml:"sso_token_auth_method"`
	SSOLogoutURL       string        `yaml:"sso_logout_url"`
	SSOAutoLinkByEmail bool          `yaml:"sso_auto_link_by_email"`
	SSORequestTimeout  time.Duration `yaml:"sso_request_timeout"`

	// Reverse proxy trust
	ProxyAuthEnabled bool   `yaml:"proxy_auth_enabled"`
	ProxyUserHeader  string `yaml:"proxy_user_header"`

	// Frontend
	FrontendURL string `yaml:"frontend_url"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(config, path); err != nil {
			return nil, err
		}
	}

	applyEnv(config)

	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if config.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Port:               "9600",
		Host:               "0.0.0.0",
		LogLevel:           "info",
		DatabaseHost:       "auth-postgres",
		DatabasePort:       "5432",
		DatabaseName:       "auth_db",
		DatabaseUser:       "auth_user",
		DatabaseSSLMode:    "require",
		SessionCookieName:  "ag_session",
		SessionTimeout:     168 * time.Hour,
		SSOScopes:          []string{"openid", "profile", "email"},
		SSOTokenAuthMethod: TokenAuthBasic,
		SSOAutoLinkByEmail: true,
		SSORequestTimeout:  10 * time.Second,
		ProxyUserHeader:    "Remote-User",
		FrontendURL:        "http://localhost:3000",
	}
}

func loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	setString(&config.Port, "PORT")
	setString(&config.Host, "HOST")
	setString(&config.LogLevel, "LOG_LEVEL")

	setString(&config.DatabaseURL, "DATABASE_URL")
	setString(&config.DatabaseHost, "DB_HOST")
	setString(&config.DatabasePort, "DB_PORT")
	setString(&config.DatabaseName, "DB_NAME")
	setString(&config.DatabaseUser, "DB_USER")
	setString(&config.DatabasePassword, "DB_PASSWORD")
	setString(&config.DatabaseSSLMode, "DB_SSL_MODE")

	setString(&config.SessionCookieName, "SESSION_COOKIE_NAME")
	setString(&config.SessionSecret, "SESSION_SECRET")
	setDuration(&config.SessionTimeout, "SESSION_TIMEOUT")

	setBool(&config.SSOEnabled, "SSO_ENABLED")
	setString(&config.SSOIssuerURL, "SSO_ISSUER_URL")
	setString(&config.SSOClientID, "SSO_CLIENT_ID")
	setString(&config.SSOClientSecret, "SSO_CLIENT_SECRET")
	setString(&config.SSOCallbackURL, "SSO_CALLBACK_URL")
	if value := os.Getenv("SSO_SCOPES"); value != "" {
		config.SSOScopes = strings.Fields(value)
	}
	setString(&config.SSOTokenAuthMethod, "SSO_TOKEN_AUTH_METHOD")
	setString(&config.SSOLogoutURL, "SSO_LOGOUT_URL")
	setBool(&config.SSOAutoLinkByEmail, "SSO_AUTO_LINK_BY_EMAIL")
	setDuration(&config.SSORequestTimeout, "SSO_REQUEST_TIMEOUT")

	setBool(&config.ProxyAuthEnabled, "PROXY_AUTH_ENABLED")
	setString(&config.ProxyUserHeader, "PROXY_USER_HEADER")

	setString(&config.FrontendURL, "FRONTEND_URL")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters, got: %d", len(c.SessionSecret))
	}

	if c.SessionTimeout < time.Minute {
		return fmt.Errorf("session timeout must be at least 1 minute, got: %v", c.SessionTimeout)
	}

	if _, err := url.Parse(c.FrontendURL); err != nil || c.FrontendURL == "" {
		return fmt.Errorf("invalid frontend URL: %s", c.FrontendURL)
	}

	if c.SSOEnabled {
		if c.SSOIssuerURL == "" {
			return fmt.Errorf("SSO_ISSUER_URL is required when federated login is enabled")
		}
		if c.SSOClientID == "" || c.SSOClientSecret == "" {
			return fmt.Errorf("SSO_CLIENT_ID and SSO_CLIENT_SECRET are required when federated login is enabled")
		}
		if c.SSOCallbackURL == "" {
			return fmt.Errorf("SSO_CALLBACK_URL is required when federated login is enabled")
		}
		if c.SSOTokenAuthMethod != TokenAuthBasic && c.SSOTokenAuthMethod != TokenAuthPost {
			return fmt.Errorf("invalid SSO_TOKEN_AUTH_METHOD: %s (must be %s or %s)",
				c.SSOTokenAuthMethod, TokenAuthBasic, TokenAuthPost)
		}
		if c.SSORequestTimeout <= 0 {
			return fmt.Errorf("SSO request timeout must be positive, got: %v", c.SSORequestTimeout)
		}
	}

	if c.ProxyAuthEnabled && c.ProxyUserHeader == "" {
		return fmt.Errorf("PROXY_USER_HEADER is required when proxy auth is enabled")
	}

	return nil
}

// Helper functions

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setBool(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			*dst = parsed
		}
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
