package config

import (
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	LookupKubectl = "kubectl"
	LookupAPI     = "api"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var strategyNames = []interface{}{"fqdn", "namespaced-dns", "cluster-ip", "pod-ip"}

type ServerConfig struct {
	Address     string `mapstructure:"address" yaml:"address"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type LookupConfig struct {
	Mode        string `mapstructure:"mode" yaml:"mode"`
	KubectlPath string `mapstructure:"kubectl_path" yaml:"kubectl_path"`
	Kubeconfig  string `mapstructure:"kubeconfig" yaml:"kubeconfig"`
}

type BreakerConfig struct {
	Threshold    int    `mapstructure:"threshold" yaml:"threshold"`
	ResetTimeout string `mapstructure:"reset_timeout" yaml:"reset_timeout"`
}

type FetcherConfig struct {
	Namespace      string        `mapstructure:"namespace" yaml:"namespace"`
	Service        string        `mapstructure:"service" yaml:"service"`
	LabelSelector  string        `mapstructure:"label_selector" yaml:"label_selector"`
	ServicePort    int           `mapstructure:"service_port" yaml:"service_port"`
	Path           string        `mapstructure:"path" yaml:"path"`
	Field          string        `mapstructure:"field" yaml:"field"`
	Strategies     []string      `mapstructure:"strategies" yaml:"strategies"`
	AttemptTimeout string        `mapstructure:"attempt_timeout" yaml:"attempt_timeout"`
	ChainBudget    string        `mapstructure:"chain_budget" yaml:"chain_budget"`
	PreferLastGood bool          `mapstructure:"prefer_last_good" yaml:"prefer_last_good"`
	Lookup         LookupConfig  `mapstructure:"lookup" yaml:"lookup"`
	Breaker        BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

type PingPongConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
}

type GeneratorConfig struct {
	File     string `mapstructure:"file" yaml:"file"`
	Interval string `mapstructure:"interval" yaml:"interval"`
}

type RedisConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	Key     string `mapstructure:"key" yaml:"key"`
}

type TodoConfig struct {
	Address string      `mapstructure:"address" yaml:"address"`
	Store   string      `mapstructure:"store" yaml:"store"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type MetricsConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher" yaml:"fetcher"`
	PingPong  PingPongConfig  `mapstructure:"pingpong" yaml:"pingpong"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Todo      TodoConfig      `mapstructure:"todo" yaml:"todo"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// Load reads configuration from path, or from config.yaml in ./config or
// the working directory when path is empty. A missing file is not an
// error: defaults and environment variables (FETCHER_NAMESPACE, ...) apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", LogLevelInfo)

	v.SetDefault("fetcher.namespace", currentNamespace())
	v.SetDefault("fetcher.service", "ping-pong-svc")
	v.SetDefault("fetcher.label_selector", "app=ping-pong")
	v.SetDefault("fetcher.service_port", 1234)
	v.SetDefault("fetcher.path", "/pongs")
	v.SetDefault("fetcher.field", "pongs")
	v.SetDefault("fetcher.strategies", []string{"fqdn", "namespaced-dns", "cluster-ip", "pod-ip"})
	v.SetDefault("fetcher.attempt_timeout", "5s")
	v.SetDefault("fetcher.chain_budget", "")
	v.SetDefault("fetcher.prefer_last_good", false)
	v.SetDefault("fetcher.lookup.mode", LookupKubectl)
	v.SetDefault("fetcher.lookup.kubectl_path", "kubectl")
	v.SetDefault("fetcher.lookup.kubeconfig", "")
	v.SetDefault("fetcher.breaker.threshold", 0)
	v.SetDefault("fetcher.breaker.reset_timeout", "30s")

	v.SetDefault("pingpong.address", ":8002")

	v.SetDefault("generator.file", "/app/shared/status.txt")
	v.SetDefault("generator.interval", "5s")

	v.SetDefault("todo.address", ":8000")
	v.SetDefault("todo.store", StoreMemory)
	v.SetDefault("todo.redis.address", "localhost:6379")
	v.SetDefault("todo.redis.key", "todos")

	v.SetDefault("metrics.buffer_size", 1000)
}

// AttemptTimeoutDuration returns the per-strategy timeout. Validate
// guarantees it parses.
func (f FetcherConfig) AttemptTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(f.AttemptTimeout)
	return d
}

// ChainBudgetDuration returns the chain budget, zero when unset.
func (f FetcherConfig) ChainBudgetDuration() time.Duration {
	if f.ChainBudget == "" {
		return 0
	}
	d, _ := time.ParseDuration(f.ChainBudget)
	return d
}

func (b BreakerConfig) ResetTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(b.ResetTimeout)
	return d
}

func (g GeneratorConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(g.Interval)
	return d
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Fetcher,
			validation.Required,
			validation.By(validateFetcherConfig),
		),
		validation.Field(&c.PingPong,
			validation.By(func(value interface{}) error {
				pc, ok := value.(PingPongConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a PingPongConfig")
				}
				return validation.ValidateStruct(&pc,
					validation.Field(&pc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Generator,
			validation.By(func(value interface{}) error {
				gc, ok := value.(GeneratorConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a GeneratorConfig")
				}
				return validation.ValidateStruct(&gc,
					validation.Field(&gc.File, validation.Required),
					validation.Field(&gc.Interval,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Todo,
			validation.By(validateTodoConfig),
		),
		validation.Field(&c.Metrics,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MetricsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MetricsConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.BufferSize, validation.Required, validation.Min(1)),
				)
			}),
		),
	)
}

func validateFetcherConfig(value interface{}) error {
	fc, ok := value.(FetcherConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a FetcherConfig")
	}

	return validation.ValidateStruct(&fc,
		validation.Field(&fc.Namespace, validation.Required, is.DNSName),
		validation.Field(&fc.Service, validation.Required, is.DNSName),
		validation.Field(&fc.ServicePort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&fc.Path,
			validation.Required,
			validation.By(func(value interface{}) error {
				if p, _ := value.(string); !strings.HasPrefix(p, "/") {
					return validation.NewError("validation_invalid_path", "must start with /")
				}
				return nil
			}),
		),
		validation.Field(&fc.Field, validation.Required),
		validation.Field(&fc.Strategies,
			validation.Required,
			validation.Each(validation.In(strategyNames...)),
		),
		validation.Field(&fc.AttemptTimeout,
			validation.Required,
			validation.By(validateDuration),
		),
		validation.Field(&fc.ChainBudget,
			validation.By(validateDuration),
		),
		validation.Field(&fc.Lookup,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LookupConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LookupConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Mode,
						validation.Required,
						validation.In(LookupKubectl, LookupAPI),
					),
					validation.Field(&lc.KubectlPath,
						validation.When(lc.Mode == LookupKubectl, validation.Required),
					),
				)
			}),
		),
		validation.Field(&fc.Breaker,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BreakerConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.Threshold, validation.Min(0)),
					validation.Field(&bc.ResetTimeout,
						validation.When(bc.Threshold > 0, validation.Required),
						validation.By(validateDuration),
					),
				)
			}),
		),
	)
}

func validateTodoConfig(value interface{}) error {
	tc, ok := value.(TodoConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a TodoConfig")
	}

	return validation.ValidateStruct(&tc,
		validation.Field(&tc.Address,
			validation.Required,
			validation.By(validateHostPort),
		),
		validation.Field(&tc.Store,
			validation.Required,
			validation.In(StoreMemory, StoreRedis),
		),
		validation.Field(&tc.Redis,
			validation.When(tc.Store == StoreRedis,
				validation.By(func(value interface{}) error {
					rc, ok := value.(RedisConfig)
					if !ok {
						return validation.NewError("validation_invalid_type", "must be a RedisConfig")
					}
					return validation.ValidateStruct(&rc,
						validation.Field(&rc.Address,
							validation.Required,
							validation.By(validateHostPort),
						),
						validation.Field(&rc.Key, validation.Required),
					)
				}),
			),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if durationStr == "" {
		return nil
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be positive")
	}

	return nil
}
