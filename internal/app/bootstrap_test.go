package app_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/kafkabridge/config"
	"github.com/Gunvolt24/kafkabridge/internal/app"
	"github.com/Gunvolt24/kafkabridge/internal/kafka"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый сервис: считает остановки потребления
type fakeService struct {
	stopCalls int32
}

func (f *fakeService) Send(context.Context, int) (string, error)      { return "", nil }
func (f *fakeService) StartConsuming(context.Context) (string, error) { return "", nil }
func (f *fakeService) ListTopics(context.Context) ([]string, error)   { return nil, nil }
func (f *fakeService) StopConsuming(context.Context) error {
	atomic.AddInt32(&f.stopCalls, 1)
	return nil
}

type fakeEvents struct{ closeCalls int32 }

func (f *fakeEvents) Close() { atomic.AddInt32(&f.closeCalls, 1) }

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	svc := &fakeService{}
	ev := &fakeEvents{}
	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: srv,
		Service:    svc,
		Events:     ev,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&svc.stopCalls) != 1 {
		t.Fatalf("StopConsuming should be called once on shutdown")
	}
	if atomic.LoadInt32(&ev.closeCalls) != 1 {
		t.Fatalf("event hub should be closed on shutdown")
	}
}

func TestAppRun_ListenError(t *testing.T) {
	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: "bad-addr:-1", Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := a.Run(ctx); err == nil {
		t.Fatalf("Run should return listen error")
	}
}

func TestBootstrap_InvalidBrokersIsFatal(t *testing.T) {
	t.Setenv("BRIDGE_KAFKA_BROKERS", "not a broker")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	_, cleanup, err := app.Bootstrap(context.Background(), cfg)
	defer cleanup()
	if !errors.Is(err, kafka.ErrConfig) {
		t.Fatalf("want ErrConfig, got %v", err)
	}
}
