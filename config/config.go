package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings of the client. In
// development the API is reached on a local origin; in a deployed build the
// relative /api and /media paths are served from the same origin behind the
// reverse proxy.
type Config struct {
	APIBaseURL   string
	MediaBaseURL string
	Timeout      time.Duration
}

const (
	defaultAPIBaseURL   = "http://localhost:8000/api"
	defaultMediaBaseURL = "http://localhost:8000/media"
	defaultTimeout      = 10 * time.Second
)

// Load reads configuration from the environment, first merging a .env file
// if one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		APIBaseURL:   defaultAPIBaseURL,
		MediaBaseURL: defaultMediaBaseURL,
		Timeout:      defaultTimeout,
	}

	if v := os.Getenv("ORAGH_API_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ORAGH_MEDIA_URL"); v != "" {
		cfg.MediaBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ORAGH_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			log.Printf("Invalid ORAGH_TIMEOUT_SECONDS %q, keeping %s", v, cfg.Timeout)
		} else {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

// APIURL joins an endpoint path onto the API base URL.
func (c Config) APIURL(endpoint string) string {
	return c.APIBaseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// MediaURL builds the full URL of a media file. Path segments are
// percent-encoded so file names with spaces or diacritics stay valid.
func (c Config) MediaURL(path string) string {
	clean := strings.TrimLeft(path, "/")
	segments := strings.Split(clean, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return c.MediaBaseURL + "/" + strings.Join(segments, "/")
}
