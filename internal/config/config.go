// Package config lê a configuração do gateway de variáveis de ambiente
// (nomes em maiúsculas, sem prefixo) e, se existir, de um config.yaml no
// diretório atual.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

const (
	RateFixedWindow = "fixed-window"
	RateTokenBucket = "token-bucket"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ListenAddr string
	LogLevel   string

	UpstreamURL            string
	UpstreamTimeout        time.Duration
	UpstreamRetries        int
	UpstreamRetryBase      time.Duration
	UpstreamMaxInflight    int
	UpstreamAcquireTimeout time.Duration

	RateAlgorithm string
	RateMaxCalls  int
	RateWindow    time.Duration

	CacheBackend    string
	CacheTTL        time.Duration
	CacheMaxEntries uint64
	CachePrefix     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StatsEnabled bool
	StatsBackend string
	StatsPrefix  string
	StatsTTL     time.Duration

	KnownOrgs []string
	SeedData  bool

	ClientRateEnabled bool
	ClientRateRPS     float64
	ClientRateBurst   int
	ClientKeyHeader   string
	ClientKeyByOrg    bool
	TrustXFF          bool
	RetryAfter        time.Duration

	ConcurrencyMax     int
	ConcurrencyTimeout time.Duration
}

// New devolve um viper com os defaults do gateway já registrados.
// Os comandos fazem bind das flags nele antes de chamar Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("upstream_url", "https://vpic.nhtsa.dot.gov/api/vehicles")
	v.SetDefault("upstream_timeout", 10*time.Second)
	v.SetDefault("upstream_retries", 0)
	v.SetDefault("upstream_retry_base", 200*time.Millisecond)
	v.SetDefault("upstream_max_inflight", 0)
	v.SetDefault("upstream_acquire_timeout", 0)

	v.SetDefault("rate_algorithm", RateFixedWindow)
	v.SetDefault("rate_max_calls", 5)
	v.SetDefault("rate_window", 60*time.Second)

	v.SetDefault("cache_backend", BackendMemory)
	v.SetDefault("cache_ttl", 0)
	v.SetDefault("cache_max_entries", 0)
	v.SetDefault("cache_prefix", "vin:decode")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("stats_enabled", true)
	v.SetDefault("stats_backend", BackendMemory)
	v.SetDefault("stats_prefix", "vin:stats")
	v.SetDefault("stats_ttl", 24*time.Hour)

	v.SetDefault("known_orgs", "Hondaorg,civichonda")
	v.SetDefault("seed_data", true)

	v.SetDefault("client_rate_enabled", false)
	v.SetDefault("client_rate_rps", 10)
	// client_rate_burst fica sem default: depende do RPS (ver Load).
	v.SetDefault("client_key_header", "")
	v.SetDefault("client_key_by_org", false)
	v.SetDefault("trust_xff", false)
	v.SetDefault("retry_after", time.Second)

	v.SetDefault("concurrency_max", 100)
	v.SetDefault("concurrency_timeout", 0)
	return v
}

// Load lê o config.yaml opcional, aplica env e flags e valida o resultado.
// Todos os problemas de validação voltam juntos num *multierror.Error.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		ListenAddr: v.GetString("listen_addr"),
		LogLevel:   strings.ToLower(v.GetString("log_level")),

		UpstreamURL:            strings.TrimRight(v.GetString("upstream_url"), "/"),
		UpstreamTimeout:        v.GetDuration("upstream_timeout"),
		UpstreamRetries:        v.GetInt("upstream_retries"),
		UpstreamRetryBase:      v.GetDuration("upstream_retry_base"),
		UpstreamMaxInflight:    v.GetInt("upstream_max_inflight"),
		UpstreamAcquireTimeout: v.GetDuration("upstream_acquire_timeout"),

		RateAlgorithm: strings.ToLower(v.GetString("rate_algorithm")),
		RateMaxCalls:  v.GetInt("rate_max_calls"),
		RateWindow:    v.GetDuration("rate_window"),

		CacheBackend:    strings.ToLower(v.GetString("cache_backend")),
		CacheTTL:        v.GetDuration("cache_ttl"),
		CacheMaxEntries: v.GetUint64("cache_max_entries"),
		CachePrefix:     v.GetString("cache_prefix"),

		RedisAddr:     strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		StatsEnabled: v.GetBool("stats_enabled"),
		StatsBackend: strings.ToLower(v.GetString("stats_backend")),
		StatsPrefix:  v.GetString("stats_prefix"),
		StatsTTL:     v.GetDuration("stats_ttl"),

		KnownOrgs: splitList(v.GetString("known_orgs")),
		SeedData:  v.GetBool("seed_data"),

		ClientRateEnabled: v.GetBool("client_rate_enabled"),
		ClientRateRPS:     v.GetFloat64("client_rate_rps"),
		ClientKeyHeader:   v.GetString("client_key_header"),
		ClientKeyByOrg:    v.GetBool("client_key_by_org"),
		TrustXFF:          v.GetBool("trust_xff"),
		RetryAfter:        v.GetDuration("retry_after"),

		ConcurrencyMax:     v.GetInt("concurrency_max"),
		ConcurrencyTimeout: v.GetDuration("concurrency_timeout"),
	}

	// IMPORTANTE: o burst permite uma rajada inicial. Com RPS abaixo de 1
	// o padrão 20 deixa passar as ~20 primeiras e parece que nada limita.
	if v.IsSet("client_rate_burst") {
		cfg.ClientRateBurst = v.GetInt("client_rate_burst")
	} else {
		cfg.ClientRateBurst = 20
		if cfg.ClientRateRPS > 0 && cfg.ClientRateRPS < 1 {
			cfg.ClientRateBurst = 1
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.UpstreamURL == "" {
		errs = multierror.Append(errs, errors.New("UPSTREAM_URL is required"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = multierror.Append(errs, errors.New("UPSTREAM_TIMEOUT must be > 0"))
	}
	if c.UpstreamRetries < 0 {
		errs = multierror.Append(errs, errors.New("UPSTREAM_RETRIES must be >= 0"))
	}
	if c.UpstreamMaxInflight < 0 {
		errs = multierror.Append(errs, errors.New("UPSTREAM_MAX_INFLIGHT must be >= 0"))
	}

	switch c.RateAlgorithm {
	case RateFixedWindow, RateTokenBucket:
	default:
		errs = multierror.Append(errs, fmt.Errorf("RATE_ALGORITHM must be %q or %q, got %q", RateFixedWindow, RateTokenBucket, c.RateAlgorithm))
	}
	if c.RateMaxCalls <= 0 {
		errs = multierror.Append(errs, errors.New("RATE_MAX_CALLS must be > 0"))
	}
	if c.RateWindow <= 0 {
		errs = multierror.Append(errs, errors.New("RATE_WINDOW must be > 0"))
	}

	if !validBackend(c.CacheBackend) {
		errs = multierror.Append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.CacheBackend))
	}
	if c.CacheTTL < 0 {
		errs = multierror.Append(errs, errors.New("CACHE_TTL must be >= 0"))
	}
	if c.StatsEnabled && !validBackend(c.StatsBackend) {
		errs = multierror.Append(errs, fmt.Errorf("STATS_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.StatsBackend))
	}
	if c.NeedsRedis() && c.RedisAddr == "" {
		errs = multierror.Append(errs, errors.New("REDIS_ADDR is required when a redis backend is selected"))
	}

	if len(c.KnownOrgs) == 0 {
		errs = multierror.Append(errs, errors.New("KNOWN_ORGS must list at least one organization"))
	}

	if c.ClientRateEnabled {
		if c.ClientRateRPS <= 0 {
			errs = multierror.Append(errs, errors.New("CLIENT_RATE_RPS must be > 0"))
		}
		if c.ClientRateBurst <= 0 {
			errs = multierror.Append(errs, errors.New("CLIENT_RATE_BURST must be > 0"))
		}
	}
	if c.ConcurrencyMax < 0 {
		errs = multierror.Append(errs, errors.New("CONCURRENCY_MAX must be >= 0"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = multierror.Append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	return errs.ErrorOrNil()
}

// NeedsRedis diz se algum backend escolhido usa Redis.
func (c *Config) NeedsRedis() bool {
	return c.CacheBackend == BackendRedis || (c.StatsEnabled && c.StatsBackend == BackendRedis)
}

func validBackend(b string) bool {
	return b == BackendMemory || b == BackendRedis
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
