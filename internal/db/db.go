package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kwtaxonomy/internal/models"
	"kwtaxonomy/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	return RunMigrations(connString)
}

// RunMigrations applies the embedded migrations without holding a pool.
func RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevProject creates a demo project with a handful of records for development.
// Does nothing if a project with the same name already exists.
func (d *DB) SeedDevProject(ctx context.Context) (*models.Project, error) {
	const name = "demo"

	var exists bool
	if err := d.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE name = $1)`, name).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check demo project: %w", err)
	}
	if exists {
		return nil, nil
	}

	project, err := d.CreateProject(ctx, name)
	if err != nil {
		return nil, err
	}

	seed := []struct {
		keyword string
		volume  int64
		cpc     string
	}{
		{"petlas 205/55 r16 fiyat", 1200, "1.85"},
		{"michelin lastik", 900, "2.10"},
		{"kış lastiği nedir", 400, "0.35"},
		{"kis lastigi nedir", 150, "0.40"},
		{"lassa vs petlas", 300, "0.90"},
		{"oto lastik", 2500, "1.20"},
	}

	records := make([]models.KeywordRecord, 0, len(seed))
	for _, s := range seed {
		volume := s.volume
		records = append(records, models.KeywordRecord{
			Keyword:      s.keyword,
			SearchVolume: &volume,
			CPC:          decimal.NewNullDecimal(decimal.RequireFromString(s.cpc)),
			Source:       "seed",
		})
	}

	if _, err := d.InsertKeywordRecords(ctx, project.ID, records); err != nil {
		return nil, fmt.Errorf("failed to seed demo records: %w", err)
	}

	return project, nil
}
