package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	MovieAPI MovieAPIConfig
	View     ViewConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
	// CORSOrigins lists the browser origins allowed to call the JSON API.
	// "*" allows any origin without credentials.
	CORSOrigins []string
}

// MovieAPIConfig describes the upstream random-movie endpoint.
// A zero Timeout leaves the request bounded only by the network stack.
type MovieAPIConfig struct {
	URL     string
	Timeout time.Duration
}

// ViewConfig bounds the per-visitor views. Once MaxViews are mounted the
// least recently seen view is dropped for each new one; zero means no cap.
type ViewConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	MaxViews      int
}

const DefaultMovieAPIURL = "https://jsonfakery.com/movies/random/1"

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads an optional env-format file, then lets the process
// environment override it.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-comments")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("MOVIE_API_URL", DefaultMovieAPIURL)
	v.SetDefault("MOVIE_API_TIMEOUT", "0s")
	v.SetDefault("VIEW_IDLE_TTL", "30m")
	v.SetDefault("VIEW_SWEEP_INTERVAL", "1m")
	v.SetDefault("VIEW_MAX", 1000)
	v.SetDefault("CORS_ORIGINS", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		},
		MovieAPI: MovieAPIConfig{
			URL:     v.GetString("MOVIE_API_URL"),
			Timeout: v.GetDuration("MOVIE_API_TIMEOUT"),
		},
		View: ViewConfig{
			IdleTTL:       v.GetDuration("VIEW_IDLE_TTL"),
			SweepInterval: v.GetDuration("VIEW_SWEEP_INTERVAL"),
			MaxViews:      v.GetInt("VIEW_MAX"),
		},
	}

	return config, nil
}

// splitList parses a comma separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
