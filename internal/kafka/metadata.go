package kafka

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
)

var _ ports.TopicCatalog = (*Catalog)(nil)

type requester interface {
	Request(ctx context.Context, req kmsg.Request) (kmsg.Response, error)
}

// Catalog - отдельное от потребителя соединение только для метаданных,
// не участвует в группе и не мешает циклу чтения.
type Catalog struct {
	client interface {
		requester
		Close()
	}
	log ports.Logger
}

func NewCatalog(cfg BrokerConfig, log ports.Logger, opts ...kgo.Opt) (*Catalog, error) {
	kopts := append([]kgo.Opt{
		kgo.SeedBrokers(cfg.brokers...),
		kgo.ClientID(cfg.clientID + "-metadata"),
	}, opts...)

	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return nil, newError("init", ErrConfig, err)
	}
	return &Catalog{client: client, log: log}, nil
}

func (c *Catalog) FetchTopicMetadata(ctx context.Context, timeout time.Duration) ([]string, error) {
	return fetchTopicMetadata(ctx, c.client, c.log, timeout)
}

func (c *Catalog) Close() {
	c.client.Close()
}

// FetchTopicMetadata через соединение группы. Можно вызывать параллельно с ReceiveOne.
func (c *Consumer) FetchTopicMetadata(ctx context.Context, timeout time.Duration) ([]string, error) {
	return fetchTopicMetadata(ctx, c.client, c.log, timeout)
}

// fetchTopicMetadata - имена пользовательских топиков кластера, по алфавиту.
// Служебные топики (IsInternal, "__*") не возвращаются.
func fetchTopicMetadata(ctx context.Context, client requester, log ports.Logger, timeout time.Duration) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Topics == nil - метаданные по всем топикам.
	req := kmsg.NewPtrMetadataRequest()
	resp, err := req.RequestWith(ctx, client)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, newError("metadata", ErrMetadataTimeout, err)
		}
		return nil, newError("metadata", ErrMetadataTransport, err)
	}

	names := make([]string, 0, len(resp.Topics))
	for _, t := range resp.Topics {
		if t.Topic == nil || t.IsInternal || strings.HasPrefix(*t.Topic, "__") {
			continue
		}
		if tErr := kerr.ErrorForCode(t.ErrorCode); tErr != nil {
			log.Warnf(ctx, "metadata: skip topic=%s: %v", *t.Topic, tErr)
			continue
		}
		names = append(names, *t.Topic)
	}
	sort.Strings(names)
	return names, nil
}
