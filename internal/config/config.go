package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alfredjoe/Online-Quiz/internal/ocr"
	"github.com/alfredjoe/Online-Quiz/internal/question"

	"github.com/joho/godotenv"
)

// Config represents runtime configuration for the service.
type Config struct {
	Port     string
	Mode     string
	LogLevel string

	Mathpix ocr.Credentials
	// MathpixBaseURL points the OCR client at a different API host.
	MathpixBaseURL string

	MaxUploadBytes int64
	MaxPages       int
	Boundary       question.Boundary
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv reads .env into the environment if the file exists. Variables
// already set win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load collects configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:     GetEnv("PORT", "5000"),
		Mode:     GetEnv("MODE", ""),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		Mathpix: ocr.Credentials{
			AppID:  os.Getenv("MATHPIX_APP_ID"),
			AppKey: os.Getenv("MATHPIX_APP_KEY"),
		},
		MathpixBaseURL: GetEnv("MATHPIX_API_BASE", ocr.DefaultBaseURL),
	}

	uploadMB, err := intEnv("MAX_UPLOAD_MB", 100)
	if err != nil {
		return Config{}, err
	}
	if uploadMB <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", uploadMB)
	}
	cfg.MaxUploadBytes = int64(uploadMB) << 20

	if cfg.MaxPages, err = intEnv("MAX_PAGES", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxPages < 0 {
		return Config{}, fmt.Errorf("MAX_PAGES must not be negative, got %d", cfg.MaxPages)
	}

	if cfg.Boundary, err = question.ParseBoundary(GetEnv("QUESTION_BOUNDARY", "anywhere")); err != nil {
		return Config{}, fmt.Errorf("QUESTION_BOUNDARY: %w", err)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
