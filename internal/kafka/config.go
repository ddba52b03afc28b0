package kafka

import (
	"slices"
	"strings"
	"time"

	"github.com/Gunvolt24/kafkabridge/pkg/validate"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	StartOffsetFirst = "first"
	StartOffsetLast  = "last"

	defaultCommitInterval = 5 * time.Second
	defaultSessionTimeout = 45 * time.Second
)

// BrokerOptions - входные параметры подключения (обычно из config.Kafka).
type BrokerOptions struct {
	Brokers            []string `validate:"required,min=1,dive,hostname_port"`
	GroupID            string   `validate:"required"`
	ClientID           string
	StartOffset        string // first|last, для групп без закоммиченных оффсетов
	AutoCommit         bool
	AutoCommitInterval time.Duration
	SessionTimeout     time.Duration
	LogLevel           string // debug|info|warn|error|none
}

// BrokerConfig - проверенные и неизменяемые параметры подключения.
// Создаётся только через NewBrokerConfig.
type BrokerConfig struct {
	brokers        []string
	groupID        string
	clientID       string
	startOffset    string
	autoCommit     bool
	commitInterval time.Duration
	sessionTimeout time.Duration
	logLevel       kgo.LogLevel
}

// NewBrokerConfig нормализует и валидирует параметры.
// Пустой или некорректный список брокеров, пустая группа → ErrConfig.
func NewBrokerConfig(opts BrokerOptions) (BrokerConfig, error) {
	opts.Brokers = normalizeBrokers(opts.Brokers)
	opts.GroupID = strings.TrimSpace(opts.GroupID)

	if err := validate.Struct(opts); err != nil {
		return BrokerConfig{}, newError("config", ErrConfig, err)
	}

	cfg := BrokerConfig{
		brokers:        opts.Brokers,
		groupID:        opts.GroupID,
		clientID:       strings.TrimSpace(opts.ClientID),
		startOffset:    normalizeStartOffset(opts.StartOffset),
		autoCommit:     opts.AutoCommit,
		commitInterval: opts.AutoCommitInterval,
		sessionTimeout: opts.SessionTimeout,
		logLevel:       parseLogLevel(opts.LogLevel),
	}
	if cfg.clientID == "" {
		cfg.clientID = "kafkabridge"
	}
	if cfg.commitInterval <= 0 {
		cfg.commitInterval = defaultCommitInterval
	}
	if cfg.sessionTimeout <= 0 {
		cfg.sessionTimeout = defaultSessionTimeout
	}
	return cfg, nil
}

func (c BrokerConfig) Brokers() []string             { return slices.Clone(c.brokers) }
func (c BrokerConfig) GroupID() string               { return c.groupID }
func (c BrokerConfig) ClientID() string              { return c.clientID }
func (c BrokerConfig) StartOffset() string           { return c.startOffset }
func (c BrokerConfig) AutoCommit() bool              { return c.autoCommit }
func (c BrokerConfig) CommitInterval() time.Duration { return c.commitInterval }
func (c BrokerConfig) LogLevel() kgo.LogLevel        { return c.logLevel }

// consumerOpts - опции kgo для клиента группы. Топики не задаются:
// подписка управляется через Subscribe/Unsubscribe.
func (c BrokerConfig) consumerOpts() []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(c.brokers...),
		kgo.ClientID(c.clientID),
		kgo.ConsumerGroup(c.groupID),
		kgo.SessionTimeout(c.sessionTimeout),
		kgo.ConsumeResetOffset(c.resetOffset()),
	}
	if c.autoCommit {
		opts = append(opts, kgo.AutoCommitInterval(c.commitInterval))
	} else {
		opts = append(opts, kgo.DisableAutoCommit())
	}
	return opts
}

func (c BrokerConfig) resetOffset() kgo.Offset {
	if c.startOffset == StartOffsetLast {
		return kgo.NewOffset().AtEnd()
	}
	return kgo.NewOffset().AtStart()
}

// normalizeBrokers: "PLAINTEXT://h:p" → "h:p", "a:1,b:2" → [a:1 b:2].
func normalizeBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		for _, b := range strings.Split(raw, ",") {
			b = strings.TrimSpace(b)
			if _, after, ok := strings.Cut(b, "://"); ok {
				b = after
			}
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeStartOffset(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), StartOffsetLast) {
		return StartOffsetLast
	}
	return StartOffsetFirst
}

func parseLogLevel(s string) kgo.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return kgo.LogLevelDebug
	case "warn", "warning":
		return kgo.LogLevelWarn
	case "error":
		return kgo.LogLevelError
	case "none", "off":
		return kgo.LogLevelNone
	default:
		return kgo.LogLevelInfo
	}
}
