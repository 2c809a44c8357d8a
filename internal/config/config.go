// Package config holds the daemon configuration. Values come from defaults,
// then an optional JSON file, then command line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/iudanet/gamebeacon/pkg/api"
)

const (
	defaultA2SAddress       = "127.0.0.1:7071"
	defaultPollInterval     = time.Second
	defaultQueryTimeout     = time.Second
	defaultBackendTimeout   = 4 * time.Second
	defaultHeartbeatMargin  = 5 * time.Second
	defaultNullRefresh      = 60 * time.Second
	defaultBackendRate      = 2.0
	defaultBackendBurst     = 4
	defaultLeaseDBPath      = "gamebeacon-lease.db"
	defaultHistoryDBPath    = "gamebeacon-history.db"
	defaultHistoryRetention = 7 * 24 * time.Hour
	defaultLogLevel         = "info"
	defaultLogFormat        = "auto"
)

// Config - конфигурация демона
type Config struct {
	Server api.StaticServerInfo `json:"server"`

	A2SAddress string `json:"a2s_address"`
	// BackendURL включает префикс API; пустой - работа без бэкенда
	BackendURL string `json:"backend_url"`
	// LocalIP определяется по сетевым интерфейсам, если пустой
	LocalIP string `json:"local_ip"`
	// StatusAddr - адрес status-сервера; пустой отключает его
	StatusAddr    string `json:"status_addr"`
	LeaseDBPath   string `json:"lease_db_path"`
	HistoryDBPath string `json:"history_db_path"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`

	PollInterval     Duration `json:"poll_interval"`
	QueryTimeout     Duration `json:"query_timeout"`
	BackendTimeout   Duration `json:"backend_timeout"`
	HeartbeatMargin  Duration `json:"heartbeat_margin"`
	NullRefresh      Duration `json:"null_refresh"`
	HistoryRetention Duration `json:"history_retention"`

	// BackendRate - лимит запросов в секунду; 0 отключает ограничение
	BackendRate  float64 `json:"backend_rate"`
	BackendBurst int     `json:"backend_burst"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		A2SAddress:       defaultA2SAddress,
		LeaseDBPath:      defaultLeaseDBPath,
		HistoryDBPath:    defaultHistoryDBPath,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
		PollInterval:     Duration(defaultPollInterval),
		QueryTimeout:     Duration(defaultQueryTimeout),
		BackendTimeout:   Duration(defaultBackendTimeout),
		HeartbeatMargin:  Duration(defaultHeartbeatMargin),
		NullRefresh:      Duration(defaultNullRefresh),
		HistoryRetention: Duration(defaultHistoryRetention),
		BackendRate:      defaultBackendRate,
		BackendBurst:     defaultBackendBurst,
	}
}

// Load читает JSON файл поверх значений по умолчанию.
// Пустой path возвращает значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate проверяет все поля и возвращает все ошибки сразу
func (c *Config) Validate() error {
	var errs []error

	if _, _, err := net.SplitHostPort(c.A2SAddress); err != nil {
		errs = append(errs, fmt.Errorf("a2s_address must be host:port: %w", err))
	}
	if c.BackendURL != "" {
		if u, err := url.ParseRequestURI(c.BackendURL); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("backend_url %q is not an absolute URL", c.BackendURL))
		}
	}
	if c.LocalIP != "" && net.ParseIP(c.LocalIP) == nil {
		errs = append(errs, fmt.Errorf("local_ip %q is not an IP address", c.LocalIP))
	}
	if c.StatusAddr != "" {
		if _, _, err := net.SplitHostPort(c.StatusAddr); err != nil {
			errs = append(errs, fmt.Errorf("status_addr must be host:port: %w", err))
		}
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be positive"))
	}
	if c.QueryTimeout <= 0 {
		errs = append(errs, errors.New("query_timeout must be positive"))
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, errors.New("backend_timeout must be positive"))
	}
	if c.HeartbeatMargin < 0 {
		errs = append(errs, errors.New("heartbeat_margin must not be negative"))
	}
	if c.NullRefresh <= 0 {
		errs = append(errs, errors.New("null_refresh must be positive"))
	}
	if c.BackendRate < 0 {
		errs = append(errs, errors.New("backend_rate must not be negative"))
	}
	if c.BackendRate > 0 && c.BackendBurst < 1 {
		errs = append(errs, errors.New("backend_burst must be at least 1"))
	}

	return errors.Join(errs...)
}

// Duration is a time.Duration written as a Go duration string in JSON,
// e.g. "1s" or "500ms".
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// String implements fmt.Stringer and pflag.Value
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Set implements pflag.Value
func (d *Duration) Set(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Type implements pflag.Value
func (d *Duration) Type() string {
	return "duration"
}

// Std возвращает значение как time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
