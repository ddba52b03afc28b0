package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/kafkabridge/config"
	"github.com/Gunvolt24/kafkabridge/internal/bridge"
	cachemem "github.com/Gunvolt24/kafkabridge/internal/cache/memory"
	"github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/ports"
	rest "github.com/Gunvolt24/kafkabridge/internal/transport/http"
	"github.com/Gunvolt24/kafkabridge/internal/transport/sse"
	"github.com/Gunvolt24/kafkabridge/internal/usecase"
	"github.com/Gunvolt24/kafkabridge/pkg/logger"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/Gunvolt24/kafkabridge/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// App - собранный HTTP-сервис моста.
type App struct {
	Logger          ports.Logger         // логгер
	HTTPServer      *http.Server         // HTTP-сервер
	Service         ports.BridgeService  // команды моста; при остановке гасим сессию потребления
	Events          interface{ Close() } // SSE-хаб; закрывается до Shutdown, иначе потоки его держат
	gracefulTimeout time.Duration        // время ожидания завершения HTTP-сервера
}

// Cleanup - функция освобождения ресурсов.
type Cleanup func()

// Components - долгоживущие объекты брокера, общие для HTTP и CLI.
// Создаются один раз при старте процесса.
type Components struct {
	Logger   *logger.ZapLogger
	Producer *kafka.Producer
	Consumer *kafka.Consumer
	Catalog  *kafka.Catalog
	Bridge   *bridge.Bridge
}

// applyGinMode - устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// BuildComponents - логгер, метрики и клиенты брокера. Ошибка конфигурации
// брокера фатальна: без соединения мост ничего не умеет.
func BuildComponents(ctx context.Context, cfg *config.Config) (*Components, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, cfg.Logger.Level)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	brokerCfg, err := kafka.NewBrokerConfig(kafka.BrokerOptions{
		Brokers:            cfg.Kafka.Brokers,
		GroupID:            cfg.Kafka.GroupID,
		ClientID:           cfg.Kafka.ClientID,
		StartOffset:        cfg.Kafka.StartOffset,
		AutoCommit:         cfg.Kafka.AutoCommit,
		AutoCommitInterval: cfg.Kafka.AutoCommitInterval,
		SessionTimeout:     cfg.Kafka.SessionTimeout,
		LogLevel:           cfg.Kafka.LogLevel,
	})
	if err != nil {
		logg.Errorf(ctx, "invalid kafka config: %v", err)
		closeLogger()
		return nil, func() {}, err
	}

	kgoLogger := kafka.WithZapLogger(logg.Base(), brokerCfg.LogLevel())

	consumer, err := kafka.NewConsumer(brokerCfg, kafka.NewLoggingObserver(logg), logg, kgoLogger)
	if err != nil {
		logg.Errorf(ctx, "create kafka consumer: %v", err)
		closeLogger()
		return nil, func() {}, err
	}

	catalog, err := kafka.NewCatalog(brokerCfg, logg, kgoLogger)
	if err != nil {
		logg.Errorf(ctx, "create kafka metadata client: %v", err)
		_ = consumer.Close()
		closeLogger()
		return nil, func() {}, err
	}

	producer := kafka.NewProducer(brokerCfg, kafka.ProducerOptions{
		Async:        cfg.Producer.Async,
		BatchSize:    cfg.Producer.BatchSize,
		BatchTimeout: cfg.Producer.BatchTimeout,
		MaxAttempts:  cfg.Producer.MaxAttempts,
		RequiredAcks: cfg.Producer.RequiredAcks,
		SendTimeout:  cfg.Producer.SendTimeout,
	}, logg)

	br := bridge.New(consumer, logg, bridge.Options{
		ReceiveTimeout: cfg.Kafka.ReceiveTimeout,
		RetryMax:       cfg.Kafka.RetryMax,
	})

	logg.Infof(ctx, "kafka brokers=%v group=%s topic=%s start_offset=%s auto_commit=%t",
		brokerCfg.Brokers(), brokerCfg.GroupID(), cfg.Kafka.Topic, brokerCfg.StartOffset(), brokerCfg.AutoCommit())

	comps := &Components{
		Logger:   logg,
		Producer: producer,
		Consumer: consumer,
		Catalog:  catalog,
		Bridge:   br,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if err := producer.Close(); err != nil {
			logg.Warnf(ctx, "kafka producer close error: %v", err)
		}
		catalog.Close()
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
		closeLogger()
	}

	return comps, cleanup, nil
}

// NewService - команды моста поверх компонентов с заданным подписчиком.
func (c *Components) NewService(cfg *config.Config, sub ports.Subscriber) *usecase.BridgeService {
	return usecase.NewBridgeService(c.Producer, c.Catalog, c.Bridge, sub, c.Logger, usecase.Options{
		Topic:           cfg.Kafka.Topic,
		MetadataTimeout: cfg.Kafka.MetadataTimeout,
	})
}

// Bootstrap - собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	comps, cleanupComps, err := BuildComponents(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	logg := comps.Logger

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию - no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Подписчик: браузеры по SSE с буфером повторов.
	replay := cachemem.NewRecentEvents(cfg.SSE.ReplayCapacity, cfg.SSE.ReplayTTL)
	hub := sse.NewHub(logg, replay, sse.Options{
		ClientBuffer: cfg.SSE.ClientBuffer,
		KeepAlive:    cfg.SSE.KeepAlive,
	})
	service := comps.NewService(cfg, hub)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(service, hub, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Service:         service,
		Events:          hub,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		cleanupComps()
	}

	return app, cleanup, nil
}

// Run - запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает сервис.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	// Остановка сессии потребления: цикл сам отпишется.
	if a.Service != nil {
		if err := a.Service.StopConsuming(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "stop consuming: %v", err)
		}
	}

	if a.Events != nil {
		a.Events.Close()
	}

	// Корректная остановка HTTP-сервера.
	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
