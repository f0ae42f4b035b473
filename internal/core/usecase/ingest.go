package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/core/ports"
)

// IngestJudgmentUseCase turns a scraped-judgment payload into a stored
// judgment record: extracts missing full text from the downloaded PDF
// and upserts by id. Records already in the store are overwritten, which
// lets re-scrapes refresh truncated texts.
type IngestJudgmentUseCase struct {
	writer    ports.JudgmentWriter
	extractor ports.TextExtractor
}

func NewIngestJudgmentUseCase(writer ports.JudgmentWriter, extractor ports.TextExtractor) *IngestJudgmentUseCase {
	return &IngestJudgmentUseCase{
		writer:    writer,
		extractor: extractor,
	}
}

func (uc *IngestJudgmentUseCase) IngestScraped(ctx context.Context, scraped domain.ScrapedJudgment) (*domain.JudgmentRecord, error) {
	if strings.TrimSpace(scraped.CaseTitle) == "" {
		return nil, domain.WrapError(domain.ErrInvalidRecord, "ingest judgment", errors.New("case_title is required"))
	}

	text := scraped.Text
	if strings.TrimSpace(text) == "" && scraped.PDFPath != "" {
		extracted, err := uc.extractor.Extract(ctx, scraped.PDFPath)
		if err != nil {
			return nil, fmt.Errorf("extract judgment pdf: %w", err)
		}
		text = extracted
	}

	id := strings.TrimSpace(scraped.ID)
	if id == "" {
		id = uuid.NewString()
	}

	rec := &domain.JudgmentRecord{
		ID:        id,
		CaseTitle: scraped.CaseTitle,
		Court:     scraped.Court,
		Date:      scraped.Date,
		Citation:  scraped.Citation,
		Summary:   scraped.Summary,
		Text:      text,
		Issues:    scraped.Issues,
		Tags:      scraped.Tags,
		Judges:    scraped.Judges,
		SourceURL: scraped.SourceURL,
		Score:     scraped.Score,
	}
	if err := uc.writer.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert judgment: %w", err)
	}
	return rec, nil
}
