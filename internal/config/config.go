// Package config loads huepick settings from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/image"
	"github.com/jmylchreest/huepick/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HUEPICK_"

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr         string
	MaxUploadSizeBytes int64
	MaxPixels          int64
	FetchTimeout       time.Duration
	AllowPrivateURLs   bool
	CacheDir           string
	LogLevel           string
	LogJSON            bool

	Sampler     colour.Options
	MaxDistance float64
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ListenAddr:         ":8080",
		MaxUploadSizeBytes: 10 << 20,
		MaxPixels:          image.DefaultMaxPixels,
		FetchTimeout:       10 * time.Second,
		LogLevel:           "info",
		Sampler:            colour.DefaultOptions(),
		MaxDistance:        colour.DefaultMaxDistance,
	}
}

// Load reads an optional .env file from the working directory, then the
// HUEPICK_* environment variables, and validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// LoadFile is Load with an explicit .env path. A missing file is an error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only. A variable
// that is set but malformed is an error.
func FromEnv() (Config, error) {
	def := Default()
	env := &envReader{}
	cfg := Config{
		ListenAddr:         env.String("LISTEN_ADDR", def.ListenAddr),
		MaxUploadSizeBytes: env.Int64("MAX_UPLOAD_SIZE_BYTES", def.MaxUploadSizeBytes),
		MaxPixels:          env.Int64("MAX_PIXELS", def.MaxPixels),
		FetchTimeout:       env.Duration("FETCH_TIMEOUT", def.FetchTimeout),
		AllowPrivateURLs:   env.Bool("ALLOW_PRIVATE_URLS", def.AllowPrivateURLs),
		CacheDir:           env.String("CACHE_DIR", def.CacheDir),
		LogLevel:           env.String("LOG_LEVEL", def.LogLevel),
		LogJSON:            env.Bool("LOG_JSON", def.LogJSON),
		Sampler: colour.Options{
			MaxSwatches:        env.Int("MAX_SWATCHES", def.Sampler.MaxSwatches),
			QuantisationStep:   env.Int("QUANTISATION_STEP", def.Sampler.QuantisationStep),
			SampleStride:       env.Int("SAMPLE_STRIDE", def.Sampler.SampleStride),
			AlphaThreshold:     env.Int("ALPHA_THRESHOLD", def.Sampler.AlphaThreshold),
			ExcludeNearWhite:   env.Bool("EXCLUDE_NEAR_WHITE", def.Sampler.ExcludeNearWhite),
			NearWhiteThreshold: env.Int("NEAR_WHITE_THRESHOLD", def.Sampler.NearWhiteThreshold),
			MaxDimension:       env.Int("MAX_DIMENSION", def.Sampler.MaxDimension),
		},
		MaxDistance: def.MaxDistance,
	}

	if v := env.String("MAX_DISTANCE", ""); v != "" {
		d, err := ParseMaxDistance(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sMAX_DISTANCE: %w", EnvPrefix, err)
		}
		cfg.MaxDistance = d
	}
	if env.err != nil {
		return Config{}, env.err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen addr must not be empty")
	}
	if c.MaxUploadSizeBytes <= 0 {
		return errors.New("max upload size must be > 0")
	}
	if c.MaxPixels <= 0 {
		return errors.New("max pixels must be > 0")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be > 0")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Sampler.Validate(); err != nil {
		return err
	}
	return c.NamerConfig().Validate()
}

// NamerConfig returns the namer settings carried by c.
func (c Config) NamerConfig() colour.NamerConfig {
	return colour.NamerConfig{MaxDistance: c.MaxDistance}
}

// ParseMaxDistance parses a non-negative distance limit. "none", "off" and
// "inf" disable the limit.
func ParseMaxDistance(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "off", "inf", "unbounded":
		return colour.Unbounded, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid distance %q: expected a number or \"none\"", s)
	}
	if d < 0 || math.IsNaN(d) {
		return 0, fmt.Errorf("invalid distance %q: must not be negative", s)
	}
	return d, nil
}

// FormatMaxDistance is the inverse of ParseMaxDistance.
func FormatMaxDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "none"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// envReader reads typed HUEPICK_* variables and keeps the first parse error.
type envReader struct {
	err error
}

func (e *envReader) String(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if v == "" {
		return fallback
	}
	return v
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, v, err)
	}
}

func (e *envReader) Int(key string, fallback int) int {
	v := e.String(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return n
}

func (e *envReader) Int64(key string, fallback int64) int64 {
	v := e.String(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return n
}

func (e *envReader) Bool(key string, fallback bool) bool {
	v := e.String(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return b
}

func (e *envReader) Duration(key string, fallback time.Duration) time.Duration {
	v := e.String(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return d
}
