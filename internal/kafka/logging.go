package kafka

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kzap"
	"go.uber.org/zap"
)

// WithZapLogger - логи клиента kgo в zap с уровнем из BrokerConfig.
func WithZapLogger(zl *zap.Logger, level kgo.LogLevel) kgo.Opt {
	return kgo.WithLogger(kzap.New(zl.Named("kgo"), kzap.Level(level)))
}
