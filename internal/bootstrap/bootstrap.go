package bootstrap

import (
	"context"
	"fmt"

	"github.com/kartikrao/legal-issue-search/internal/config"
	"github.com/kartikrao/legal-issue-search/internal/core/ports"
	"github.com/kartikrao/legal-issue-search/internal/core/usecase"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/catalog"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/externalindex/kanoon"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/extractor/pdftext"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/queue/nats"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/repository/postgres"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Queue *nats.Queue

	SearchUC ports.IssueSearchService
	RecordUC ports.RecordHydrator
	IngestUC ports.JudgmentIngestor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	legislationRepo := postgres.NewLegislationRepository(db)
	if err := legislationRepo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure legislation schema: %w", err)
	}
	judgmentRepo := postgres.NewJudgmentRepository(db)
	if err := judgmentRepo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure judgments schema: %w", err)
	}

	topicCatalog, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load topic catalog: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	externalIndex := kanoon.New(cfg.ExternalIndexURL, cfg.ExternalIndexAPIKey, kanoon.Options{
		Timeout:            cfg.ExternalIndexTimeout,
		ResilienceExecutor: executor,
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	searchUC := usecase.NewSearchIssueUseCase(
		legislationRepo,
		judgmentRepo,
		externalIndex,
		topicCatalog,
		cfg.SourceTimeout,
	)
	recordUC := usecase.NewRecordTextUseCase(judgmentRepo, topicCatalog)
	ingestUC := usecase.NewIngestJudgmentUseCase(judgmentRepo, pdftext.NewExtractor())

	return &App{
		Config: cfg,
		Queue:  queue,

		SearchUC: searchUC,
		RecordUC: recordUC,
		IngestUC: ingestUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
