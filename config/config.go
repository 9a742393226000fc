package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultAPIURL      = "http://localhost:8200/api"
	defaultHTTPTimeout = 30 * time.Second
	defaultLogLevel    = "info"
	defaultChartWidth  = 800
	defaultChartHeight = 400

	minChartSide = 100
	maxChartSide = 8192
)

// Config captures runtime settings for the pulse CLI.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	LogLevel    log.Level
	ChartWidth  int
	ChartHeight int
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		APIURL:      defaultAPIURL,
		HTTPTimeout: defaultHTTPTimeout,
		LogLevel:    log.InfoLevel,
		ChartWidth:  defaultChartWidth,
		ChartHeight: defaultChartHeight,
	}
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	apiURL, err := readURL("PULSE_API_URL", defaultAPIURL)
	if err != nil {
		return Config{}, err
	}

	timeout, err := readDuration("PULSE_HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return Config{}, err
	}

	level, err := readLevel("PULSE_LOG_LEVEL", defaultLogLevel)
	if err != nil {
		return Config{}, err
	}

	width, err := readInt("PULSE_CHART_WIDTH", defaultChartWidth, minChartSide, maxChartSide)
	if err != nil {
		return Config{}, err
	}

	height, err := readInt("PULSE_CHART_HEIGHT", defaultChartHeight, minChartSide, maxChartSide)
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIURL:      apiURL,
		HTTPTimeout: timeout,
		LogLevel:    level,
		ChartWidth:  width,
		ChartHeight: height,
	}, nil
}

// ValidateChartSize reports whether a width/height pair is drawable.
func ValidateChartSize(width, height int) error {
	if width < minChartSide || width > maxChartSide || height < minChartSide || height > maxChartSide {
		return fmt.Errorf("chart size must be between %d and %d px per side, got %dx%d",
			minChartSide, maxChartSide, width, height)
	}
	return nil
}

func readURL(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if raw == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s must be a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%s must use http or https", key)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%s must include a host", key)
	}

	return raw, nil
}

func readLevel(key, fallback string) (log.Level, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		raw = fallback
	}

	level, err := log.ParseLevel(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be one of debug, info, warn, error: %w", key, err)
	}

	return level, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}
