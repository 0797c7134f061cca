package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// schema is applied at startup. The roster lives in a jsonb column so each
// contest row is a self-contained document.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS contests (
		id              TEXT PRIMARY KEY,
		event_id        TEXT NOT NULL,
		cost_per_square DOUBLE PRECISION NOT NULL,
		names           JSONB,
		status          TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS winners (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the contests and winners tables if they do not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ContestRepository is the Postgres-backed ContestStore.
type ContestRepository struct {
	db *pgxpool.Pool
}

// NewContestRepository constructs a ContestRepository.
func NewContestRepository(db *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{db: db}
}

// Create inserts a new contest and assigns it a generated UUID.
func (r *ContestRepository) Create(ctx context.Context, contest *model.Contest) error {
	contest.ID = uuid.New().String()

	names, err := marshalNames(contest.Names)
	if err != nil {
		return fmt.Errorf("encode names: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO contests (id, event_id, cost_per_square, names, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contest.ID, contest.EventID, contest.CostPerSquare, names,
		string(contest.Status), contest.CreatedAt, contest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}
	return nil
}

// Get returns a single contest or ErrNotFound.
func (r *ContestRepository) Get(ctx context.Context, id string) (*model.Contest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, event_id, cost_per_square, names, status, created_at, updated_at
		 FROM contests WHERE id = $1`,
		id,
	)
	contest, err := scanContest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contest: %w", err)
	}
	return contest, nil
}

// List returns all contests ordered by creation time descending.
func (r *ContestRepository) List(ctx context.Context) ([]model.Contest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, cost_per_square, names, status, created_at, updated_at
		 FROM contests
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	defer rows.Close()

	var contests []model.Contest
	for rows.Next() {
		contest, err := scanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contest: %w", err)
		}
		contests = append(contests, *contest)
	}
	return contests, rows.Err()
}

// Update overwrites the stored document for contest.ID, or ErrNotFound.
func (r *ContestRepository) Update(ctx context.Context, contest *model.Contest) error {
	names, err := marshalNames(contest.Names)
	if err != nil {
		return fmt.Errorf("encode names: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE contests
		 SET event_id = $2, cost_per_square = $3, names = $4, status = $5, updated_at = $6
		 WHERE id = $1`,
		contest.ID, contest.EventID, contest.CostPerSquare, names,
		string(contest.Status), contest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// WinnerRepository is the Postgres-backed WinnerStore.
type WinnerRepository struct {
	db *pgxpool.Pool
}

// NewWinnerRepository constructs a WinnerRepository.
func NewWinnerRepository(db *pgxpool.Pool) *WinnerRepository {
	return &WinnerRepository{db: db}
}

// Create inserts the winner record with a generated UUID.
func (r *WinnerRepository) Create(ctx context.Context, record *model.WinnerRecord) error {
	record.ID = uuid.New().String()

	_, err := r.db.Exec(ctx,
		`INSERT INTO winners (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		record.ID, record.Name, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert winner: %w", err)
	}
	return nil
}

// First returns the earliest winner record, or ErrNotFound when the
// collection is empty.
func (r *WinnerRepository) First(ctx context.Context) (*model.WinnerRecord, error) {
	var rec model.WinnerRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at
		 FROM winners
		 ORDER BY created_at ASC
		 LIMIT 1`,
	).Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get winner: %w", err)
	}
	return &rec, nil
}

// marshalNames encodes a roster for the jsonb column. A nil roster maps to
// SQL NULL so "no names yet" round-trips as absence, not an empty array.
func marshalNames(names []string) ([]byte, error) {
	if names == nil {
		return nil, nil
	}
	return json.Marshal(names)
}

func scanContest(row pgx.Row) (*model.Contest, error) {
	var (
		c         model.Contest
		status    string
		namesJSON []byte
	)
	if err := row.Scan(&c.ID, &c.EventID, &c.CostPerSquare, &namesJSON, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = model.Status(status)
	if len(namesJSON) > 0 {
		if err := json.Unmarshal(namesJSON, &c.Names); err != nil {
			return nil, fmt.Errorf("decode names: %w", err)
		}
	}
	return &c, nil
}
