package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/core/ports"
)

// RecordTextUseCase hydrates a single search result into its full text:
// the judgment store first, then the catalog's canned fallback templates
// for well-known ids the store may not carry yet.
type RecordTextUseCase struct {
	judgments ports.JudgmentStore
	catalog   ports.TopicCatalog
}

func NewRecordTextUseCase(judgments ports.JudgmentStore, catalog ports.TopicCatalog) *RecordTextUseCase {
	return &RecordTextUseCase{
		judgments: judgments,
		catalog:   catalog,
	}
}

func (uc *RecordTextUseCase) FullRecordText(ctx context.Context, id, source string) (*domain.FullRecordText, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.WrapError(domain.ErrRecordNotFound, "full record text", errors.New("record id is empty"))
	}

	rec, err := uc.judgments.GetByID(ctx, id)
	switch {
	case err == nil:
		return recordTextFromJudgment(rec), nil
	case domain.IsKind(err, domain.ErrRecordNotFound):
		if fallback, ok := uc.catalog.FallbackFullText(id); ok {
			return fallback, nil
		}
		return nil, err
	default:
		return nil, domain.WrapError(domain.ErrTemporary, "full record text", err)
	}
}

func recordTextFromJudgment(rec *domain.JudgmentRecord) *domain.FullRecordText {
	text := rec.Text
	if strings.TrimSpace(text) == "" {
		text = rec.Summary
	}
	return &domain.FullRecordText{
		ID:        rec.ID,
		Title:     rec.CaseTitle,
		Court:     rec.Court,
		Date:      rec.Date,
		Citation:  rec.Citation,
		FullText:  text,
		Judges:    rec.Judges,
		SourceURL: rec.SourceURL,
	}
}
