package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmavani25/teammatch-system/models"
)

var ErrRunNotFound = errors.New("match run not found")

type MatchRunRepository interface {
	Create(ctx context.Context, run *models.MatchRun) error
	Update(ctx context.Context, run *models.MatchRun) error
	GetByID(ctx context.Context, id int) (*models.MatchRun, error)
	List(ctx context.Context) ([]*models.MatchRun, error)
}

type postgresMatchRunRepository struct {
	db *sql.DB
}

func NewPostgresMatchRunRepository(db *sql.DB) MatchRunRepository {
	return &postgresMatchRunRepository{db: db}
}

func (r *postgresMatchRunRepository) Create(ctx context.Context, run *models.MatchRun) error {
	query := `
		INSERT INTO match_runs (mode, team_size, interest_weight, status, participant_count, team_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		run.Mode,
		run.TeamSize,
		run.InterestWeight,
		string(run.Status),
		run.ParticipantCount,
		run.TeamCount,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match run: %w", err)
	}
	return nil
}

func (r *postgresMatchRunRepository) Update(ctx context.Context, run *models.MatchRun) error {
	query := `
		UPDATE match_runs
		SET status = $1, participant_count = $2, team_count = $3,
		    export_key = $4, export_url = $5, error = $6, completed_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		string(run.Status),
		run.ParticipantCount,
		run.TeamCount,
		run.ExportKey,
		run.ExportURL,
		run.Error,
		run.CompletedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match run %d: %w", run.ID, err)
	}
	return checkAffectedRows(result, ErrRunNotFound)
}

func (r *postgresMatchRunRepository) GetByID(ctx context.Context, id int) (*models.MatchRun, error) {
	query := `
		SELECT id, mode, team_size, interest_weight, status, participant_count, team_count,
		       export_key, export_url, error, created_at, completed_at
		FROM match_runs
		WHERE id = $1`

	run, err := scanMatchRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to find match run %d: %w", id, err)
	}
	return run, nil
}

func (r *postgresMatchRunRepository) List(ctx context.Context) ([]*models.MatchRun, error) {
	query := `
		SELECT id, mode, team_size, interest_weight, status, participant_count, team_count,
		       export_key, export_url, error, created_at, completed_at
		FROM match_runs
		ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list match runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.MatchRun
	for rows.Next() {
		run, err := scanMatchRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match runs: %w", err)
	}
	return runs, nil
}

func scanMatchRun(row rowScanner) (*models.MatchRun, error) {
	run := &models.MatchRun{}
	var status string
	err := row.Scan(
		&run.ID,
		&run.Mode,
		&run.TeamSize,
		&run.InterestWeight,
		&status,
		&run.ParticipantCount,
		&run.TeamCount,
		&run.ExportKey,
		&run.ExportURL,
		&run.Error,
		&run.CreatedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = models.MatchRunStatus(status)
	return run, nil
}
