package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"topichat/internal/config"
	"topichat/internal/httpserver"
	"topichat/internal/notify"
	"topichat/internal/service"
	"topichat/internal/store/memory"
	"topichat/internal/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogging(cfg)

	// In-memory data layer
	topicStore := memory.NewTopicStore()
	reportLog := memory.NewReportLog()
	stats := memory.NewStats(topicStore)

	// Notification collaborator
	var notifier notify.Notifier
	if cfg.MailEnabled() {
		notifier = notify.NewMailer(notify.MailerConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			AdminEmail: cfg.AdminEmail,
			AppName:    cfg.AppName,
		}, log.Logger)
	} else {
		log.Warn().Msg("SMTP not configured, notifications go to the log")
		notifier = notify.NewLogNotifier(log.Logger)
	}

	// Room broadcaster and services
	hub := ws.NewHub(topicStore, stats, log.Logger)
	topicSvc := service.NewTopicService(topicStore, stats, hub, log.Logger)
	reportSvc := service.NewReportService(reportLog, stats, notifier, log.Logger)
	summarySvc := service.NewSummaryService(stats, notifier, log.Logger)

	router := httpserver.NewRouter(cfg, topicSvc, reportSvc, summarySvc, stats, hub, log.Logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Periodic summary trigger
	schedCtx, cancelSched := context.WithCancel(context.Background())
	defer cancelSched()
	if cfg.SummaryInterval > 0 {
		go summarySvc.Run(schedCtx, cfg.SummaryInterval)
	}

	// Start server in background
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server")
	cancelSched()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.Logger.Level(level).With().Timestamp().Logger()
}
