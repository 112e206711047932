package config

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/konstantinfoerster/deck-diff-go/internal/web"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  Logging  `yaml:"logging"`
	HTTP     HTTP     `yaml:"http"`
	Catalog  Catalog  `yaml:"catalog"`
	Scryfall Scryfall `yaml:"scryfall"`
	Mtgjson  Mtgjson  `yaml:"mtgjson"`
	Storage  Storage  `yaml:"storage"`
	Database Database `yaml:"database"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

func (l Logging) LevelOrDefault() string {
	level := strings.TrimSpace(l.Level)
	if level == "" {
		level = "INFO"
	}

	return strings.ToLower(level)
}

const (
	DefaultAddress      = "127.0.0.1:5678"
	DefaultMaxBodyBytes = 1 << 20 // 1 MiB
)

type HTTP struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	RateLimit       float64       `yaml:"rateLimit"` // requests per second, 0 disables the limit
	RateBurst       int           `yaml:"rateBurst"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

func (h HTTP) AddressOrDefault() string {
	if strings.TrimSpace(h.Address) == "" {
		return DefaultAddress
	}

	return h.Address
}

func (h HTTP) MaxBodyBytesOrDefault() int64 {
	if h.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}

	return h.MaxBodyBytes
}

func (h HTTP) ReadTimeoutOrDefault() time.Duration {
	return durationOrDefault(h.ReadTimeout, 15*time.Second)
}

func (h HTTP) WriteTimeoutOrDefault() time.Duration {
	return durationOrDefault(h.WriteTimeout, 60*time.Second)
}

func (h HTTP) RequestTimeoutOrDefault() time.Duration {
	return durationOrDefault(h.RequestTimeout, 30*time.Second)
}

func (h HTTP) ShutdownTimeoutOrDefault() time.Duration {
	return durationOrDefault(h.ShutdownTimeout, 10*time.Second)
}

func (h HTTP) AllowedOriginsOrDefault() []string {
	if len(h.AllowedOrigins) == 0 {
		return []string{"*"}
	}

	return h.AllowedOrigins
}

func durationOrDefault(d time.Duration, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}

const (
	SourceScryfall = "scryfall"
	SourceMtgjson  = "mtgjson"
	SourcePostgres = "postgres"
)

type Catalog struct {
	Source       string `yaml:"source"`
	File         string `yaml:"file"`
	DownloadURL  string `yaml:"downloadUrl"`
	BulkType     string `yaml:"bulkType"`
	Lang         string `yaml:"lang"`
	ImageBaseURL string `yaml:"imageBaseUrl"`
}

func (c Catalog) SourceOrDefault() string {
	source := strings.ToLower(strings.TrimSpace(c.Source))
	if source == "" {
		return SourceScryfall
	}

	return source
}

// HasExplicitSource reports whether a catalog file or a download url is configured.
func (c Catalog) HasExplicitSource() bool {
	return strings.TrimSpace(c.File) != "" || strings.TrimSpace(c.DownloadURL) != ""
}

func (c Catalog) BulkTypeOrDefault() string {
	if strings.TrimSpace(c.BulkType) == "" {
		return "oracle_cards"
	}

	return c.BulkType
}

func (c Catalog) LangOrDefault() string {
	if strings.TrimSpace(c.Lang) == "" {
		return "eng"
	}

	return c.Lang
}

type Scryfall struct {
	BaseURL string     `yaml:"baseUrl"`
	Client  web.Config `yaml:"client"`
}

// EnsureBaseURL prefixes relative urls with the configured base url. Absolute urls are returned unchanged.
func (s Scryfall) EnsureBaseURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	base, err := url.Parse(strings.TrimSuffix(s.BaseURL, "/") + "/")
	if err != nil {
		return "", err
	}

	return base.ResolveReference(&url.URL{
		Path:     strings.TrimPrefix(u.Path, "/"),
		RawQuery: u.RawQuery,
	}).String(), nil
}

type Mtgjson struct {
	Client web.Config `yaml:"client"`
}

const (
	REPLACE = "REPLACE"
	CREATE  = "CREATE"
)

type Storage struct {
	Location string `yaml:"location"`
	Mode     string `yaml:"mode"`
}

func (s Storage) LocationOrDefault() string {
	if strings.TrimSpace(s.Location) == "" {
		return "data"
	}

	return s.Location
}

type Database struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int32  `yaml:"maxConnections"`
}

func (d Database) ConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s", d.Username, d.Password, net.JoinHostPort(d.Host, d.Port), d.Database)
}

func (d Database) MaxConnectionsOrDefault() int32 {
	if d.MaxConnections == 0 {
		defaultSize := int32(4)
		numCPU := runtime.NumCPU()
		if numCPU <= 0 || numCPU > math.MaxInt32 {
			panic("unsupported cpu count > maxInt32 or cpu count <= 0")
		}
		// #nosec G115 checked above
		nCPU := int32(numCPU)
		if nCPU > defaultSize {
			return nCPU
		}

		return defaultSize
	}

	return d.MaxConnections
}

func Load(path string) (*Config, error) {
	s, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if s.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory, not a regular file", path)
	}

	return buildConfig(path)
}

func buildConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("config unmarshal failed with: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Catalog.SourceOrDefault() {
	case SourceScryfall, SourceMtgjson, SourcePostgres:
	default:
		return fmt.Errorf("unsupported catalog source %s", c.Catalog.Source)
	}

	if c.Catalog.SourceOrDefault() == SourcePostgres && c.Catalog.HasExplicitSource() {
		return fmt.Errorf("catalog file and download url are not supported by the postgres source")
	}

	switch c.Storage.Mode {
	case "", CREATE, REPLACE:
	default:
		return fmt.Errorf("unsupported storage mode %s", c.Storage.Mode)
	}

	return nil
}
