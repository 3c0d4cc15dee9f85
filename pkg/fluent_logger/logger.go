package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config хранит конфигурацию для подключения к Fluent Bit.
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // 24224
	TagPrefix string // общий префикс тегов сервиса
	Timeout   time.Duration
	// Async не блокирует запись лога при недоступном Fluent Bit
	Async bool
}

// NewClient создает клиента Fluent Bit. Соединение проверяется только при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	fc, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := fluent.New(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return logger, nil
}

func clientConfig(cfg Config) (fluent.Config, error) {
	if cfg.TagPrefix == "" {
		return fluent.Config{}, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fluent.Config{}, fmt.Errorf("fluentd port %d is out of range", cfg.Port)
	}
	return fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Timeout:    cfg.Timeout,
		Async:      cfg.Async,
	}, nil
}
