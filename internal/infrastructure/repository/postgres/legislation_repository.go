package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

type LegislationRepository struct {
	db *sql.DB
}

func NewLegislationRepository(db *sql.DB) *LegislationRepository {
	return &LegislationRepository{db: db}
}

func (r *LegislationRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker/seed startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082301)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS legislation (
	id TEXT PRIMARY KEY,
	act_name TEXT NOT NULL,
	section_title TEXT NOT NULL,
	section_text TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	relevance INTEGER NOT NULL DEFAULT 1,
	tags JSONB NOT NULL DEFAULT '[]'::jsonb,
	keywords JSONB NOT NULL DEFAULT '[]'::jsonb
);

CREATE INDEX IF NOT EXISTS idx_legislation_act_name ON legislation(act_name);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// SearchByKeyword matches the term case-insensitively against act name,
// section title, section text, description, tags and keywords. A blank
// term short-circuits to an empty list without touching the database.
func (r *LegislationRepository) SearchByKeyword(ctx context.Context, term string) ([]domain.LegislationRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, act_name, section_title, section_text, description, relevance, tags, keywords
FROM legislation
WHERE act_name ILIKE '%' || $1 || '%'
   OR section_title ILIKE '%' || $1 || '%'
   OR section_text ILIKE '%' || $1 || '%'
   OR description ILIKE '%' || $1 || '%'
   OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) t(v) WHERE t.v ILIKE '%' || $1 || '%')
   OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(keywords) k(v) WHERE k.v ILIKE '%' || $1 || '%')
ORDER BY relevance DESC, id ASC
`, term)
	if err != nil {
		return nil, fmt.Errorf("query legislation: %w", err)
	}
	defer rows.Close()

	var out []domain.LegislationRecord
	for rows.Next() {
		var rec domain.LegislationRecord
		var tagsRaw, keywordsRaw []byte
		if err := rows.Scan(
			&rec.ID, &rec.ActName, &rec.SectionTitle, &rec.SectionText,
			&rec.Description, &rec.Relevance, &tagsRaw, &keywordsRaw,
		); err != nil {
			return nil, fmt.Errorf("scan legislation: %w", err)
		}
		if err := json.Unmarshal(tagsRaw, &rec.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal legislation tags: %w", err)
		}
		if err := json.Unmarshal(keywordsRaw, &rec.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal legislation keywords: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legislation rows: %w", err)
	}
	return out, nil
}

func (r *LegislationRepository) Upsert(ctx context.Context, rec *domain.LegislationRecord) error {
	tagsJSON, err := json.Marshal(emptyIfNil(rec.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	keywordsJSON, err := json.Marshal(emptyIfNil(rec.Keywords))
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO legislation (id, act_name, section_title, section_text, description, relevance, tags, keywords)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
	act_name = EXCLUDED.act_name,
	section_title = EXCLUDED.section_title,
	section_text = EXCLUDED.section_text,
	description = EXCLUDED.description,
	relevance = EXCLUDED.relevance,
	tags = EXCLUDED.tags,
	keywords = EXCLUDED.keywords
`, rec.ID, rec.ActName, rec.SectionTitle, rec.SectionText, rec.Description, rec.Relevance, tagsJSON, keywordsJSON)
	if err != nil {
		return fmt.Errorf("upsert legislation: %w", err)
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
