package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix - префикс переменных окружения по умолчанию (BRIDGE_KAFKA_BROKERS и т.д.).
const Prefix = "BRIDGE"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"75s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"15s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
	StaticDir         string        `default:"./web" envconfig:"STATIC_DIR"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"kafkabridge" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Kafka - подключение к брокеру и параметры сессии потребления.
type Kafka struct {
	Brokers            []string      `default:"localhost:9092" envconfig:"BROKERS"`
	Topic              string        `default:"rust" envconfig:"TOPIC"`
	GroupID            string        `default:"test3" envconfig:"GROUP_ID"`
	ClientID           string        `default:"kafkabridge" envconfig:"CLIENT_ID"`
	StartOffset        string        `default:"first" envconfig:"START_OFFSET"`
	AutoCommit         bool          `default:"true" envconfig:"AUTO_COMMIT"`
	AutoCommitInterval time.Duration `default:"5s" envconfig:"AUTO_COMMIT_INTERVAL"`
	SessionTimeout     time.Duration `default:"45s" envconfig:"SESSION_TIMEOUT"`
	ReceiveTimeout     time.Duration `default:"1s" envconfig:"RECEIVE_TIMEOUT"`
	MetadataTimeout    time.Duration `default:"60s" envconfig:"METADATA_TIMEOUT"`
	RetryMax           time.Duration `default:"1s" envconfig:"RETRY_MAX"`
	LogLevel           string        `default:"info" envconfig:"LOG_LEVEL"`
}

type Producer struct {
	Async        bool          `default:"true" envconfig:"ASYNC"`
	BatchSize    int           `default:"100" envconfig:"BATCH_SIZE"`
	BatchTimeout time.Duration `default:"10ms" envconfig:"BATCH_TIMEOUT"`
	MaxAttempts  int           `default:"10" envconfig:"MAX_ATTEMPTS"`
	RequiredAcks string        `default:"all" envconfig:"REQUIRED_ACKS"`
	SendTimeout  time.Duration `default:"10s" envconfig:"SEND_TIMEOUT"`
}

type SSE struct {
	ClientBuffer   int           `default:"256" envconfig:"CLIENT_BUFFER"`
	KeepAlive      time.Duration `default:"30s" envconfig:"KEEP_ALIVE"`
	ReplayCapacity int           `default:"100" envconfig:"REPLAY_CAPACITY"`
	ReplayTTL      time.Duration `default:"10m" envconfig:"REPLAY_TTL"`
}

type Logger struct {
	IsProd bool   `default:"false" envconfig:"IS_PROD"`
	Level  string `default:"info" envconfig:"LEVEL"`
}

type Config struct {
	HTTP     HTTP
	Metrics  Metrics
	Tracing  Tracing
	Kafka    Kafka
	Producer Producer
	SSE      SSE
	Logger   Logger
}

// Load - конфигурация из окружения с префиксом BRIDGE.
func Load() (*Config, error) {
	return LoadWithPrefix(Prefix)
}

// LoadWithPrefix - то же, что Load, но с произвольным префиксом (удобно в тестах).
func LoadWithPrefix(prefix string) (*Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
