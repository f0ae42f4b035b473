package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

type JudgmentRepository struct {
	db *sql.DB
}

func NewJudgmentRepository(db *sql.DB) *JudgmentRepository {
	return &JudgmentRepository{db: db}
}

func (r *JudgmentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082302)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS judgments (
	id TEXT PRIMARY KEY,
	case_title TEXT NOT NULL,
	court TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	citation TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL DEFAULT '',
	issues JSONB NOT NULL DEFAULT '[]'::jsonb,
	tags JSONB NOT NULL DEFAULT '[]'::jsonb,
	judges JSONB NOT NULL DEFAULT '[]'::jsonb,
	source_url TEXT NOT NULL DEFAULT '',
	score INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_judgments_court ON judgments(court);
CREATE INDEX IF NOT EXISTS idx_judgments_date ON judgments(date);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// SearchByKeyword matches the term case-insensitively against case
// title, summary, issues and tags. Rows come back by base score
// descending, id ascending; query-dependent ranking is the scorer's job.
func (r *JudgmentRepository) SearchByKeyword(ctx context.Context, term string) ([]domain.JudgmentRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, case_title, court, date, citation, summary, text, issues, tags, judges, source_url, score
FROM judgments
WHERE case_title ILIKE '%' || $1 || '%'
   OR summary ILIKE '%' || $1 || '%'
   OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(issues) i(v) WHERE i.v ILIKE '%' || $1 || '%')
   OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) t(v) WHERE t.v ILIKE '%' || $1 || '%')
ORDER BY score DESC, id ASC
`, term)
	if err != nil {
		return nil, fmt.Errorf("query judgments: %w", err)
	}
	defer rows.Close()

	var out []domain.JudgmentRecord
	for rows.Next() {
		rec, err := scanJudgment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate judgment rows: %w", err)
	}
	return out, nil
}

func (r *JudgmentRepository) GetByID(ctx context.Context, id string) (*domain.JudgmentRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, case_title, court, date, citation, summary, text, issues, tags, judges, source_url, score
FROM judgments
WHERE id = $1
`, id)

	rec, err := scanJudgment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrRecordNotFound, "get judgment", fmt.Errorf("id=%s", id))
		}
		return nil, err
	}
	return rec, nil
}

func (r *JudgmentRepository) Upsert(ctx context.Context, rec *domain.JudgmentRecord) error {
	issuesJSON, err := json.Marshal(emptyIfNil(rec.Issues))
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	tagsJSON, err := json.Marshal(emptyIfNil(rec.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	judgesJSON, err := json.Marshal(emptyIfNil(rec.Judges))
	if err != nil {
		return fmt.Errorf("marshal judges: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO judgments (id, case_title, court, date, citation, summary, text, issues, tags, judges, source_url, score)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
	case_title = EXCLUDED.case_title,
	court = EXCLUDED.court,
	date = EXCLUDED.date,
	citation = EXCLUDED.citation,
	summary = EXCLUDED.summary,
	text = EXCLUDED.text,
	issues = EXCLUDED.issues,
	tags = EXCLUDED.tags,
	judges = EXCLUDED.judges,
	source_url = EXCLUDED.source_url,
	score = EXCLUDED.score
`, rec.ID, rec.CaseTitle, rec.Court, rec.Date, rec.Citation, rec.Summary, rec.Text, issuesJSON, tagsJSON, judgesJSON, rec.SourceURL, rec.Score)
	if err != nil {
		return fmt.Errorf("upsert judgment: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJudgment(row rowScanner) (*domain.JudgmentRecord, error) {
	var rec domain.JudgmentRecord
	var issuesRaw, tagsRaw, judgesRaw []byte

	err := row.Scan(
		&rec.ID, &rec.CaseTitle, &rec.Court, &rec.Date, &rec.Citation,
		&rec.Summary, &rec.Text, &issuesRaw, &tagsRaw, &judgesRaw, &rec.SourceURL, &rec.Score,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan judgment: %w", err)
	}

	if err := json.Unmarshal(issuesRaw, &rec.Issues); err != nil {
		return nil, fmt.Errorf("unmarshal judgment issues: %w", err)
	}
	if err := json.Unmarshal(tagsRaw, &rec.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal judgment tags: %w", err)
	}
	if err := json.Unmarshal(judgesRaw, &rec.Judges); err != nil {
		return nil, fmt.Errorf("unmarshal judgment judges: %w", err)
	}
	return &rec, nil
}
