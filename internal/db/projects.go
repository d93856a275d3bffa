package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"kwtaxonomy/internal/models"
)

const projectColumns = `id, name, created_at, updated_at`

// scanProject scans a row into a Project struct.
func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a new project.
func (d *DB) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	return scanProject(d.Pool.QueryRow(ctx, `
		INSERT INTO projects (name)
		VALUES ($1)
		RETURNING `+projectColumns, name))
}

// GetProject retrieves a project by ID.
func (d *DB) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return scanProject(d.Pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// ListProjects returns all projects, newest first.
func (d *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// ListProjectsUpdatedSince returns projects whose records changed after since.
func (d *DB) ListProjectsUpdatedSince(ctx context.Context, since time.Time) ([]models.Project, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE updated_at > $1
		ORDER BY updated_at
	`, since)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

func scanProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ProjectKeywordCounts returns the number of stored records per project for metrics export.
func (d *DB) ProjectKeywordCounts(ctx context.Context) ([]models.ProjectKeywordCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT p.id, p.name, COUNT(k.id)
		FROM projects p
		LEFT JOIN keyword_records k ON k.project_id = p.id
		GROUP BY p.id, p.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.ProjectKeywordCount
	for rows.Next() {
		var c models.ProjectKeywordCount
		if err := rows.Scan(&c.ProjectID, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ProjectVersion returns the project's updated_at. Every import moves it forward
// in the same transaction as the inserted records.
func (d *DB) ProjectVersion(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var updatedAt time.Time
	err := d.Pool.QueryRow(ctx, `SELECT updated_at FROM projects WHERE id = $1`, id).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, ErrProjectNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return updatedAt, nil
}
