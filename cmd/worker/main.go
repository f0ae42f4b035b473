package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kartikrao/legal-issue-search/internal/bootstrap"
	"github.com/kartikrao/legal-issue-search/internal/config"
	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/observability/logging"
	"github.com/kartikrao/legal-issue-search/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.Setup("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics()
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux(workerMetrics),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeScrapedJudgments(ctx, func(handlerCtx context.Context, payload []byte) error {
		start := time.Now()

		var scraped domain.ScrapedJudgment
		if err := json.Unmarshal(payload, &scraped); err != nil {
			workerMetrics.RecordIngest("worker", "malformed", time.Since(start))
			return fmt.Errorf("decode scraped judgment: %w", err)
		}

		ingestCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()

		rec, err := app.IngestUC.IngestScraped(ingestCtx, scraped)
		if err != nil {
			workerMetrics.RecordIngest("worker", "error", time.Since(start))
			return err
		}

		workerMetrics.RecordIngest("worker", "ok", time.Since(start))
		logger.Info("judgment ingested", "id", rec.ID, "case_title", rec.CaseTitle)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

func metricsMux(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}
