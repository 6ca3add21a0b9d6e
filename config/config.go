package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// EnvConfig 는 배포 환경마다 달라지는 값이다. 모두 환경 변수(.env 포함)에서 읽는다.
type EnvConfig struct {
	BFFAddr            string   `env:"BFF_ADDR" envDefault:":8080"`
	APIBaseURL         string   `env:"API_BASE_URL" envDefault:"http://localhost:3001/api"`
	BFFBaseURL         string   `env:"BFF_BASE_URL" envDefault:"http://localhost:8080/api/bff"`
	RedisAddr          string   `env:"REDIS_ADDR"`
	MongoURI           string   `env:"MONGO_URI"`
	MongoDBName        string   `env:"MONGO_DB_NAME" envDefault:"orion_console"`
	MicrofrontendURL   string   `env:"MICROFRONTEND_URL" envDefault:"http://localhost:4200"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimit          string   `env:"RATE_LIMIT" envDefault:"600-M"`
	LogLevel           string   `env:"LOG_LEVEL"`
	ServiceName        string   `env:"SERVICE_NAME" envDefault:"orion-bff"`
}

// AppConfig 는 config.yaml 의 내용이다. 파일이 없으면 기본값을 사용한다.
type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Pagination PaginationConfig `yaml:"pagination"`
	Cache      CacheConfig      `yaml:"cache"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Events     EventsConfig     `yaml:"events"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PaginationConfig 는 목록 화면의 페이지 크기 정책이다.
type PaginationConfig struct {
	DefaultPageSize int   `yaml:"default_page_size"`
	MaxPageSize     int   `yaml:"max_page_size"`
	PageSizeOptions []int `yaml:"page_size_options"`
}

// CacheConfig 는 BFF 참조 목록(positions, teams) 캐시 설정이다.
// ReferenceTTL 이 0 이면 캐시를 사용하지 않는다.
type CacheConfig struct {
	ReferenceTTL time.Duration `yaml:"reference_ttl"`
}

type UpstreamConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// EventsConfig 는 마이크로프론트엔드 이벤트 감사 로그 조회 설정이다.
type EventsConfig struct {
	RecentLimit int `yaml:"recent_limit"`
}

type Config struct {
	Env EnvConfig
	App AppConfig
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Pagination: PaginationConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			PageSizeOptions: []int{5, 10, 20, 50},
		},
		Cache:    CacheConfig{ReferenceTTL: 5 * time.Minute},
		Upstream: UpstreamConfig{Timeout: 10 * time.Second},
		Events:   EventsConfig{RecentLimit: 50},
	}
}

// Load 는 basePath 의 .env 와 config.yaml 을 읽고 환경 변수를 파싱한다.
// 두 파일 모두 없어도 된다.
func Load(basePath string) (*Config, error) {
	// .env 가 없으면 프로세스 환경 변수만 사용한다.
	_ = godotenv.Load(filepath.Join(basePath, ENV_FILE))

	cfg := &Config{App: defaultAppConfig()}
	if err := env.Parse(&cfg.Env); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(basePath, CONFIG_FILE))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	default:
		if err := yaml.Unmarshal(data, &cfg.App); err != nil {
			return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	}

	if cfg.Env.LogLevel == "" {
		cfg.Env.LogLevel = cfg.App.Logging.Level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 서로 의존하는 값들의 일관성을 검사한다.
func (c *Config) Validate() error {
	p := c.App.Pagination
	if p.MaxPageSize < 1 {
		return fmt.Errorf("pagination.max_page_size must be positive, got %d", p.MaxPageSize)
	}
	if p.DefaultPageSize < 1 || p.DefaultPageSize > p.MaxPageSize {
		return fmt.Errorf("pagination.default_page_size must be within 1..%d, got %d", p.MaxPageSize, p.DefaultPageSize)
	}
	for _, n := range p.PageSizeOptions {
		if n < 1 || n > p.MaxPageSize {
			return fmt.Errorf("pagination.page_size_options: %d is outside 1..%d", n, p.MaxPageSize)
		}
	}
	if c.App.Cache.ReferenceTTL < 0 {
		return errors.New("cache.reference_ttl must not be negative")
	}
	if c.App.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	for name, raw := range map[string]string{
		"API_BASE_URL":      c.Env.APIBaseURL,
		"MICROFRONTEND_URL": c.Env.MicrofrontendURL,
	} {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	return nil
}

var (
	config     *Config
	configOnce sync.Once
)

// InitApp 은 GetBasePath 기준으로 설정을 읽는다. 실패하면 panic 한다.
func InitApp() {
	cfg, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = cfg
}

func GetConfig() Config {
	configOnce.Do(func() {
		if config == nil {
			InitApp()
		}
	})
	return *config
}

// GetBasePath 는 현재 디렉터리부터 위로 올라가며 config.yaml 이 있는 디렉터리를 찾는다.
// 찾지 못하면 현재 디렉터리를 반환한다.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
