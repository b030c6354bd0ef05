package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-orders/internal/cache"
	"storefront-orders/internal/config"
	"storefront-orders/internal/db"
	"storefront-orders/internal/handlers"
	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/kafka"
	"storefront-orders/internal/logger"
	"storefront-orders/internal/middleware"
	"storefront-orders/internal/netstatus"
	"storefront-orders/internal/sheets"
	"storefront-orders/internal/submission"
	"storefront-orders/internal/tracing"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(cfg.LogLevel)
	logCfg.Format = cfg.LogFormat
	logCfg.Component = cfg.ServiceName
	log := logger.New(logCfg)
	defer log.Close()

	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		log.Fatal("failed to init tracer", "error", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("tracer shutdown failed", "error", err)
		}
	}()

	// локальное хранилище резервных копий
	conn, err := db.Open(cfg.BackupDriver, cfg.BackupDSN)
	if err != nil {
		log.Fatal("failed to open backup store", "driver", cfg.BackupDriver, "error", err)
	}
	if err := db.Migrate(conn, cfg.BackupDriver); err != nil {
		log.Fatal("failed to migrate backup store", "error", err)
	}
	sqlStore := db.NewBackupStore(conn, cfg.BackupDriver)
	defer sqlStore.Close()

	backups := db.Tee{sqlStore}

	var dlqWriter kafka.MessageWriter
	if cfg.KafkaEnabled() {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.DLQTopic)
		defer func() {
			if err := dlqWriter.Close(); err != nil {
				log.Error("failed to close DLQ writer", "error", err)
			}
		}()
		backups = append(backups, kafka.NewDLQBackupStore(dlqWriter))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := netstatus.NewMonitor(cfg.ProbeURL, cfg.ProbeInterval, log)
	go monitor.Run(ctx)

	history := cache.New(cfg.HistoryTTL, cfg.HistorySize)
	defer history.Close()

	var tokens sheets.TokenSource = sheets.StaticToken(cfg.SheetsToken)
	if cfg.SheetsTokenFile != "" {
		tokens = sheets.FileToken{Path: cfg.SheetsTokenFile}
	}
	orderLog := sheets.NewClient(cfg.SheetsBaseURL, cfg.SheetID, cfg.SheetRange, tokens,
		sheets.WithHTTPClient(&http.Client{Timeout: cfg.SheetsTimeout}),
		sheets.WithTracer(tracing.GetTracer("sheets")),
	)

	keys := db.NewKeyGenerator()
	newOrchestrator := func(source string) *submission.Orchestrator {
		return submission.NewOrchestrator(orderLog,
			submission.WithBackupStore(backups),
			submission.WithBackupKeys(keys.Next),
			submission.WithNetworkStatus(monitor),
			submission.WithHistory(history),
			submission.WithRetryOptions(cfg.Retry),
			submission.WithSource(source),
			submission.WithLogger(log),
			submission.WithTracer(tracing.GetTracer("submission")),
		)
	}

	if cfg.KafkaEnabled() {
		// у консюмера свой оркестратор, чтобы не мешать HTTP-отправкам
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.IntakeTopic, cfg.IntakeGroup,
			dlqWriter, newOrchestrator("kafka"), log, tracing.GetTracer("kafka"),
			kafka.WithMirroredBackups())
		defer consumer.Close()
		go consumer.Run(ctx)
		log.Info("kafka intake started", "topic", cfg.IntakeTopic, "brokers", cfg.KafkaBrokers)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	defer limiter.Close()

	// у каждой сессии оформления свой оркестратор
	newSessionSubmitter := func() interfaces.Submitter { return newOrchestrator("api") }
	handler := handlers.NewHandler(newSessionSubmitter, cfg.SessionTTL, history, monitor, tracing.GetTracer("http"), log)
	router := handlers.NewRouter(handler, limiter, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctxTimeout, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()
	if err := srv.Shutdown(ctxTimeout); err != nil {
		log.Error("forced server shutdown", "error", err)
	}
}
