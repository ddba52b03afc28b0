package kafka_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	mykafka "github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/pkg/validate"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNewBrokerConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := mykafka.NewBrokerConfig(mykafka.BrokerOptions{
		Brokers:     []string{"PLAINTEXT://localhost:9092", " k1:9092,k2:9093 "},
		GroupID:     " test3 ",
		StartOffset: "first",
		AutoCommit:  true,
		LogLevel:    "debug",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"localhost:9092", "k1:9092", "k2:9093"}; !slices.Equal(cfg.Brokers(), want) {
		t.Fatalf("Brokers: want %v, got %v", want, cfg.Brokers())
	}
	if cfg.GroupID() != "test3" || cfg.ClientID() != "kafkabridge" {
		t.Fatalf("group/client id wrong: %q %q", cfg.GroupID(), cfg.ClientID())
	}
	if !cfg.AutoCommit() || cfg.CommitInterval() != 5*time.Second {
		t.Fatalf("commit policy wrong: auto=%v interval=%v", cfg.AutoCommit(), cfg.CommitInterval())
	}
	if cfg.LogLevel() != kgo.LogLevelDebug {
		t.Fatalf("LogLevel: want debug, got %v", cfg.LogLevel())
	}

	// Конфигурация неизменяема: изменение возвращённого среза её не затрагивает.
	b := cfg.Brokers()
	b[0] = "mutated:1"
	if cfg.Brokers()[0] != "localhost:9092" {
		t.Fatalf("Brokers() must return a copy")
	}
}

func TestNewBrokerConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts mykafka.BrokerOptions
	}{
		{"no brokers", mykafka.BrokerOptions{GroupID: "g"}},
		{"empty broker", mykafka.BrokerOptions{Brokers: []string{""}, GroupID: "g"}},
		{"missing port", mykafka.BrokerOptions{Brokers: []string{"localhost"}, GroupID: "g"}},
		{"non numeric port", mykafka.BrokerOptions{Brokers: []string{"localhost:kafka"}, GroupID: "g"}},
		{"one bad of many", mykafka.BrokerOptions{Brokers: []string{"k1:9092", "k2"}, GroupID: "g"}},
		{"empty group", mykafka.BrokerOptions{Brokers: []string{"localhost:9092"}, GroupID: "  "}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mykafka.NewBrokerConfig(tt.opts)
			if !errors.Is(err, mykafka.ErrConfig) {
				t.Fatalf("want ErrConfig, got %v", err)
			}
			if !errors.Is(err, validate.ErrInvalid) {
				t.Fatalf("cause must be validation error, got %v", err)
			}
			var kerr *mykafka.Error
			if !errors.As(err, &kerr) || kerr.Op != "config" {
				t.Fatalf("want *kafka.Error with op=config, got %#v", err)
			}
		})
	}
}

func TestNewBrokerConfig_StartOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"first", mykafka.StartOffsetFirst},
		{" FIRST ", mykafka.StartOffsetFirst},
		{"", mykafka.StartOffsetFirst},
		{"unknown", mykafka.StartOffsetFirst},
		{"last", mykafka.StartOffsetLast},
		{"\tLaSt\n", mykafka.StartOffsetLast},
	}

	for _, tt := range tests {
		cfg, err := mykafka.NewBrokerConfig(mykafka.BrokerOptions{
			Brokers: []string{"localhost:9092"}, GroupID: "g", StartOffset: tt.in,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.StartOffset() != tt.want {
			t.Fatalf("StartOffset(%q): want %s, got %s", tt.in, tt.want, cfg.StartOffset())
		}
	}
}
