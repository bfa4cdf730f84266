package shared

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	GoogleKey       string
	GeminiModel     string
	GeminiBase      string
	WeatherKey      string
	WeatherBase     string
	OutboundRPS     int
	CacheTTL        time.Duration
	DefaultCurrency string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "prod")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9100")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("OPENWEATHERMAP_API_KEY", "")
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("OUTBOUND_RPS", 5)
	v.SetDefault("CACHE_TTL_SECONDS", 900)
	v.SetDefault("DEFAULT_CURRENCY", "USD")
}

// Load reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be read")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	c := Config{
		AppEnv:          v.GetString("APP_ENV"),
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		MetricsAddr:     v.GetString("METRICS_ADDR"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPass:       v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		GoogleKey:       v.GetString("GOOGLE_API_KEY"),
		GeminiModel:     v.GetString("GEMINI_MODEL"),
		GeminiBase:      v.GetString("GEMINI_BASE_URL"),
		WeatherKey:      v.GetString("OPENWEATHERMAP_API_KEY"),
		WeatherBase:     v.GetString("OPENWEATHER_BASE_URL"),
		OutboundRPS:     v.GetInt("OUTBOUND_RPS"),
		CacheTTL:        time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		DefaultCurrency: strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
	}
	if c.OutboundRPS <= 0 {
		c.OutboundRPS = 5
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY is empty")
	}
	if c.WeatherKey == "" {
		log.Info().Msg("OPENWEATHERMAP_API_KEY is empty, weather lookups will report a missing key")
	}
	return c
}
