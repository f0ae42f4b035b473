package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

type fakeJudgmentWriter struct {
	upserted []*domain.JudgmentRecord
	err      error
}

func (f *fakeJudgmentWriter) Upsert(_ context.Context, rec *domain.JudgmentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, rec)
	return nil
}

type fakeTextExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeTextExtractor) Extract(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestIngestScrapedRequiresCaseTitle(t *testing.T) {
	uc := NewIngestJudgmentUseCase(&fakeJudgmentWriter{}, &fakeTextExtractor{})

	_, err := uc.IngestScraped(context.Background(), domain.ScrapedJudgment{Court: "Delhi High Court"})
	if !domain.IsKind(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected invalid record error, got %v", err)
	}
}

func TestIngestScrapedExtractsPDFWhenTextMissing(t *testing.T) {
	writer := &fakeJudgmentWriter{}
	extractor := &fakeTextExtractor{text: "extracted judgment body"}
	uc := NewIngestJudgmentUseCase(writer, extractor)

	rec, err := uc.IngestScraped(context.Background(), domain.ScrapedJudgment{
		ID:        "sibbia-1980",
		CaseTitle: "Gurbaksh Singh Sibbia v. State of Punjab",
		PDFPath:   "/data/pdfs/sibbia.pdf",
		SourceURL: "https://indiankanoon.org/doc/1308540/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("expected one extraction call, got %d", extractor.calls)
	}
	if rec.Text != "extracted judgment body" {
		t.Fatalf("expected extracted text on the record, got %q", rec.Text)
	}
	if rec.SourceURL != "https://indiankanoon.org/doc/1308540/" {
		t.Fatalf("expected source url carried onto the record, got %q", rec.SourceURL)
	}
	if len(writer.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(writer.upserted))
	}
}

func TestIngestScrapedSkipsExtractionWhenTextPresent(t *testing.T) {
	extractor := &fakeTextExtractor{text: "should not be used"}
	uc := NewIngestJudgmentUseCase(&fakeJudgmentWriter{}, extractor)

	rec, err := uc.IngestScraped(context.Background(), domain.ScrapedJudgment{
		CaseTitle: "X v. Y",
		Text:      "scraped inline text",
		PDFPath:   "/data/pdfs/x.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extraction must be skipped when text is present")
	}
	if rec.Text != "scraped inline text" {
		t.Fatalf("expected inline text preserved, got %q", rec.Text)
	}
}

func TestIngestScrapedGeneratesID(t *testing.T) {
	writer := &fakeJudgmentWriter{}
	uc := NewIngestJudgmentUseCase(writer, &fakeTextExtractor{})

	rec, err := uc.IngestScraped(context.Background(), domain.ScrapedJudgment{
		CaseTitle: "X v. Y",
		Text:      "body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected a generated id for a record without one")
	}
}

func TestIngestScrapedExtractionFailure(t *testing.T) {
	extractor := &fakeTextExtractor{err: errors.New("corrupt pdf")}
	uc := NewIngestJudgmentUseCase(&fakeJudgmentWriter{}, extractor)

	_, err := uc.IngestScraped(context.Background(), domain.ScrapedJudgment{
		CaseTitle: "X v. Y",
		PDFPath:   "/data/pdfs/broken.pdf",
	})
	if err == nil {
		t.Fatalf("expected extraction failure to surface")
	}
}
