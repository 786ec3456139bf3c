// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Language capabilities
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Messaging
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Assistant behavior
	AssistantName     string
	GenerativeInquiry bool
	VisualInquiry     bool

	// Media hosting for chart replies
	MediaDir     string
	MediaBaseURL string

	// Operations
	CORSAllowOrigins string
	EnablePprof      bool
}

func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "./data/friday.db"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),

		AssistantName:     getEnv("ASSISTANT_NAME", "Friday"),
		GenerativeInquiry: getEnvBool("GENERATIVE_INQUIRY", false),
		VisualInquiry:     getEnvBool("VISUAL_INQUIRY", false),

		MediaDir:     getEnv("MEDIA_DIR", "./data/media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", ""),

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	if c.TwilioFromNumber != "" && !strings.HasPrefix(c.TwilioFromNumber, "+") {
		errors = append(errors, fmt.Sprintf("invalid Twilio from number '%s': must be in E.164 format", c.TwilioFromNumber))
	}

	if c.VisualInquiry {
		if c.MediaBaseURL == "" {
			errors = append(errors, "MEDIA_BASE_URL is required when VISUAL_INQUIRY is enabled")
		} else if parsed, err := url.Parse(c.MediaBaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errors = append(errors, fmt.Sprintf("invalid media base URL '%s': must be an absolute URL", c.MediaBaseURL))
		}

		if c.MediaDir == "" {
			errors = append(errors, "MEDIA_DIR cannot be empty when VISUAL_INQUIRY is enabled")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
