package db

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"kwtaxonomy/internal/models"
)

// FetchKeywordRecords returns all raw keyword records stored for a project,
// in insertion order. Returns ErrProjectNotFound for an unknown project.
func (d *DB) FetchKeywordRecords(ctx context.Context, projectID uuid.UUID) ([]models.KeywordRecord, error) {
	var exists bool
	if err := d.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, projectID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, keyword, search_volume, cpc::text, competition, source, category, attributes
		FROM keyword_records
		WHERE project_id = $1
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.KeywordRecord{}
	for rows.Next() {
		r, err := scanKeywordRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanKeywordRecord(row pgx.Row) (models.KeywordRecord, error) {
	var (
		r     models.KeywordRecord
		id    int64
		cpc   *string
		attrs []byte
	)
	if err := row.Scan(&id, &r.Keyword, &r.SearchVolume, &cpc, &r.Competition, &r.Source, &r.Category, &attrs); err != nil {
		return r, err
	}
	r.ID = &id

	if cpc != nil {
		d, err := decimal.NewFromString(*cpc)
		if err != nil {
			return r, fmt.Errorf("record %d: invalid cpc %q: %w", id, *cpc, err)
		}
		r.CPC = decimal.NewNullDecimal(d)
	}

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &r.Attributes); err != nil {
			return r, fmt.Errorf("record %d: invalid attributes: %w", id, err)
		}
	}
	return r, nil
}

// InsertKeywordRecords stores records for a project in a single transaction and
// marks the project as updated. Returns the number of rows inserted.
func (d *DB) InsertKeywordRecords(ctx context.Context, projectID uuid.UUID, records []models.KeywordRecord) (int, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrProjectNotFound
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		var cpc *string
		if r.CPC.Valid {
			s := r.CPC.Decimal.String()
			cpc = &s
		}

		var attrs []byte
		if len(r.Attributes) > 0 {
			if attrs, err = json.Marshal(r.Attributes); err != nil {
				return 0, fmt.Errorf("failed to encode attributes for %q: %w", r.Keyword, err)
			}
		}

		batch.Queue(`
			INSERT INTO keyword_records (project_id, keyword, search_volume, cpc, competition, source, category, attributes)
			VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8::text::jsonb)
		`, projectID, r.Keyword, r.SearchVolume, cpc, r.Competition, r.Source, r.Category, nullableText(attrs))
	}

	results := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}

func nullableText(b []byte) *string {
	if b == nil {
		return nil
	}
	s := string(b)
	return &s
}
