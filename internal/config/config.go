package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool

	// Content
	ContentFile  string
	ContentWatch bool

	// Site Meta
	// SiteName, when set, replaces the brand name from the content file.
	SiteName        string
	SiteDescription string
	SiteURL         string
	PitchEmail      string
	ApplyEmail      string
}

func New() *Config {
	environment := getEnv("ENVIRONMENT", "development")

	c := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: environment,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Content
		ContentFile:  strings.TrimSpace(getEnv("CONTENT_FILE", "")),
		ContentWatch: getEnvAsBool("CONTENT_WATCH", environment == "development"),

		// Site Meta
		SiteName:        strings.TrimSpace(getEnv("SITE_NAME", "")),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Pre-seed capital for founders using AI and data to solve real problems."),
		SiteURL:         strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		PitchEmail:      getEnv("PITCH_EMAIL", ""),
		ApplyEmail:      getEnv("APPLY_EMAIL", ""),
	}

	return c
}

// Validate reports settings that would keep the server from starting.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	parsed, err := url.Parse(c.SiteURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid SITE_URL %q", c.SiteURL)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
