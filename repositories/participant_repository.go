package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrParticipantEmailConflict = errors.New("participant with this email already exists")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	CreateBatch(ctx context.Context, participants []*models.Participant) error
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	// List returns all participants in insertion order. The matching engine
	// depends on this ordering for its deterministic tie-breaking.
	List(ctx context.Context) ([]*models.Participant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `id, name, email, majors, role, interests, goals, add_info, idea, skills, experience_level, timezone, availability, created_at`

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	availability, err := marshalAvailability(p.Availability)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO participants (name, email, majors, role, interests, goals, add_info, idea, skills, experience_level, timezone, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		p.Name,
		p.Email,
		p.Majors,
		string(p.Role),
		pq.Array(p.Interests),
		pq.Array(p.Goals),
		p.AddInfo,
		p.Idea,
		pq.Array(p.Skills),
		p.ExperienceLevel,
		p.Timezone,
		availability,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrParticipantEmailConflict
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) CreateBatch(ctx context.Context, participants []*models.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO participants (name, email, majors, role, interests, goals, add_info, idea, skills, experience_level, timezone, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	for _, p := range participants {
		availability, err := marshalAvailability(p.Availability)
		if err != nil {
			return err
		}
		err = tx.QueryRowContext(ctx, query,
			p.Name,
			p.Email,
			p.Majors,
			string(p.Role),
			pq.Array(p.Interests),
			pq.Array(p.Goals),
			p.AddInfo,
			p.Idea,
			pq.Array(p.Skills),
			p.ExperienceLevel,
			p.Timezone,
			availability,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrParticipantEmailConflict
			}
			return fmt.Errorf("failed to create participant %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participant batch: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	p, err := scanParticipant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) List(ctx context.Context) ([]*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

func (r *postgresParticipantRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	p := &models.Participant{}
	var role string
	var interests, goals, skills pq.StringArray
	var availability []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Majors,
		&role,
		&interests,
		&goals,
		&p.AddInfo,
		&p.Idea,
		&skills,
		&p.ExperienceLevel,
		&p.Timezone,
		&availability,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Role = models.Role(role)
	p.Interests = interests
	p.Goals = goals
	p.Skills = skills
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &p.Availability); err != nil {
			return nil, fmt.Errorf("failed to decode availability for participant %d: %w", p.ID, err)
		}
	}
	return p, nil
}

func marshalAvailability(availability map[string][]string) ([]byte, error) {
	if availability == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(availability)
	if err != nil {
		return nil, fmt.Errorf("failed to encode availability: %w", err)
	}
	return data, nil
}
