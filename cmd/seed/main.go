package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kartikrao/legal-issue-search/internal/config"
	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/repository/postgres"
	"github.com/kartikrao/legal-issue-search/internal/observability/logging"
)

type legislationSeed struct {
	Legislation []struct {
		ID           string   `yaml:"id"`
		ActName      string   `yaml:"act_name"`
		SectionTitle string   `yaml:"section_title"`
		SectionText  string   `yaml:"section_text"`
		Description  string   `yaml:"description"`
		Relevance    int      `yaml:"relevance"`
		Tags         []string `yaml:"tags"`
		Keywords     []string `yaml:"keywords"`
	} `yaml:"legislation"`
}

type judgmentSeed struct {
	Judgments []struct {
		ID        string   `yaml:"id"`
		CaseTitle string   `yaml:"case_title"`
		Court     string   `yaml:"court"`
		Date      string   `yaml:"date"`
		Citation  string   `yaml:"citation"`
		Summary   string   `yaml:"summary"`
		Text      string   `yaml:"text"`
		Issues    []string `yaml:"issues"`
		Tags      []string `yaml:"tags"`
		Judges    []string `yaml:"judges"`
		SourceURL string   `yaml:"source_url"`
		Score     int      `yaml:"score"`
	} `yaml:"judgments"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.Setup("seed", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	legislationRepo := postgres.NewLegislationRepository(db)
	if err := legislationRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure legislation schema: %v", err)
	}
	judgmentRepo := postgres.NewJudgmentRepository(db)
	if err := judgmentRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure judgments schema: %v", err)
	}

	legCount, err := seedLegislation(ctx, legislationRepo, cfg.SeedLegislationPath)
	if err != nil {
		log.Fatalf("seed legislation: %v", err)
	}
	judCount, err := seedJudgments(ctx, judgmentRepo, cfg.SeedJudgmentsPath)
	if err != nil {
		log.Fatalf("seed judgments: %v", err)
	}

	logger.Info("seed complete", "legislation", legCount, "judgments", judCount)
}

func seedLegislation(ctx context.Context, repo *postgres.LegislationRepository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	var seed legislationSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, entry := range seed.Legislation {
		if entry.ID == "" || entry.ActName == "" {
			return i, fmt.Errorf("legislation entry %d: id and act_name are required", i)
		}
		rec := &domain.LegislationRecord{
			ID:           entry.ID,
			ActName:      entry.ActName,
			SectionTitle: entry.SectionTitle,
			SectionText:  entry.SectionText,
			Description:  entry.Description,
			Relevance:    entry.Relevance,
			Tags:         entry.Tags,
			Keywords:     entry.Keywords,
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			return i, fmt.Errorf("upsert legislation %s: %w", entry.ID, err)
		}
	}
	return len(seed.Legislation), nil
}

func seedJudgments(ctx context.Context, repo *postgres.JudgmentRepository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	var seed judgmentSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, entry := range seed.Judgments {
		if entry.ID == "" || entry.CaseTitle == "" {
			return i, fmt.Errorf("judgment entry %d: id and case_title are required", i)
		}
		rec := &domain.JudgmentRecord{
			ID:        entry.ID,
			CaseTitle: entry.CaseTitle,
			Court:     entry.Court,
			Date:      entry.Date,
			Citation:  entry.Citation,
			Summary:   entry.Summary,
			Text:      entry.Text,
			Issues:    entry.Issues,
			Tags:      entry.Tags,
			Judges:    entry.Judges,
			SourceURL: entry.SourceURL,
			Score:     entry.Score,
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			return i, fmt.Errorf("upsert judgment %s: %w", entry.ID, err)
		}
	}
	return len(seed.Judgments), nil
}
