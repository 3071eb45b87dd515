package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	// DefaultMaxProducts caps the catalog size when no explicit limit is configured.
	DefaultMaxProducts = 20

	defaultCurrency = "usd"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Store selects the persistence backend: "postgres" or "jsonfile".
	Store StoreConfig `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	Payment PaymentConfig `json:"payment" yaml:"payment"`

	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`

	Admin AdminConfig `json:"admin" yaml:"admin"`

	Content ContentConfig `json:"content" yaml:"content"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	Driver  string `json:"driver" yaml:"driver"`
	DataDir string `json:"dataDir" yaml:"dataDir"`
}

// CatalogConfig holds catalog policy knobs.
type CatalogConfig struct {
	MaxProducts int    `json:"maxProducts" yaml:"maxProducts"`
	Currency    string `json:"currency" yaml:"currency"`
}

// PaymentConfig holds the hosted payment provider credentials. When SecretKey
// is empty the service runs in degraded mode with deterministic mock
// identifiers and checkout disabled.
type PaymentConfig struct {
	SecretKey     string `json:"secretKey" yaml:"secretKey"`
	WebhookSecret string `json:"webhookSecret" yaml:"webhookSecret"`
	APIBaseURL    string `json:"apiBaseUrl" yaml:"apiBaseUrl"`
	// BaseURL is the public storefront URL used to build checkout redirect targets.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// AssistantConfig holds the hosted LLM credentials for the chat widget. When
// APIKey is empty the local keyword responder answers every question.
type AssistantConfig struct {
	APIKey          string `json:"apiKey" yaml:"apiKey"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Model           string `json:"model" yaml:"model"`
	MaxOutputTokens int    `json:"maxOutputTokens" yaml:"maxOutputTokens"`
}

// AdminConfig holds the dashboard login credentials and token signing secret.
type AdminConfig struct {
	Email        string `json:"email" yaml:"email"`
	PasswordHash string `json:"passwordHash" yaml:"passwordHash"`
	TokenSecret  string `json:"tokenSecret" yaml:"tokenSecret"`
}

// ContentConfig holds storefront copy served by the content endpoint.
type ContentConfig struct {
	Banner string `json:"banner" yaml:"banner"`
}

// LoadWithEnv loads .yaml files through koanf with environment overrides.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	// Environment variables override file values, e.g. PAYMENT_SECRETKEY
	// maps to payment.secretKey (matching is case-insensitive below).
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.MaxProducts <= 0 {
		cfg.Catalog.MaxProducts = DefaultMaxProducts
	}
	if strings.TrimSpace(cfg.Catalog.Currency) == "" {
		cfg.Catalog.Currency = defaultCurrency
	}
	if strings.TrimSpace(cfg.Store.Driver) == "" {
		cfg.Store.Driver = "jsonfile"
	}
	if strings.TrimSpace(cfg.Store.DataDir) == "" {
		cfg.Store.DataDir = "data"
	}

	return cfg, nil
}
