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

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// CreateForRun persists the teams of one run, with their membership, in a
	// single transaction. Team and member ordering is preserved.
	CreateForRun(ctx context.Context, runID int, teams []*models.Team) error
	ListByRun(ctx context.Context, runID int) ([]*models.Team, error)
	DeleteByRun(ctx context.Context, runID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) CreateForRun(ctx context.Context, runID int, teams []*models.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	teamQuery := `
		INSERT INTO teams (run_id, position, compatibility_score, skills_coverage, timezone_span)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	memberQuery := `
		INSERT INTO team_members (team_id, participant_id, position)
		VALUES ($1, $2, $3)`

	for position, team := range teams {
		coverage, err := json.Marshal(team.SkillsCoverage)
		if err != nil {
			return fmt.Errorf("failed to encode skills coverage: %w", err)
		}

		err = tx.QueryRowContext(ctx, teamQuery,
			runID,
			position,
			team.CompatibilityScore,
			coverage,
			pq.Array(team.TimezoneSpan),
		).Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create team %d for run %d: %w", position, runID, err)
		}
		team.RunID = runID
		team.Position = position

		for memberPos, member := range team.Members {
			if _, err := tx.ExecContext(ctx, memberQuery, team.ID, member.ID, memberPos); err != nil {
				return fmt.Errorf("failed to add participant %d to team %d: %w", member.ID, team.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit teams for run %d: %w", runID, err)
	}
	return nil
}

func (r *postgresTeamRepository) ListByRun(ctx context.Context, runID int) ([]*models.Team, error) {
	teamQuery := `
		SELECT id, run_id, position, compatibility_score, skills_coverage, timezone_span, created_at
		FROM teams
		WHERE run_id = $1
		ORDER BY position`
	rows, err := r.db.QueryContext(ctx, teamQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for run %d: %w", runID, err)
	}
	defer rows.Close()

	var teams []*models.Team
	byID := make(map[int]*models.Team)
	for rows.Next() {
		team := &models.Team{}
		var coverage []byte
		var span pq.StringArray
		err := rows.Scan(
			&team.ID,
			&team.RunID,
			&team.Position,
			&team.CompatibilityScore,
			&coverage,
			&span,
			&team.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		if len(coverage) > 0 {
			if err := json.Unmarshal(coverage, &team.SkillsCoverage); err != nil {
				return nil, fmt.Errorf("failed to decode skills coverage for team %d: %w", team.ID, err)
			}
		}
		team.TimezoneSpan = span
		teams = append(teams, team)
		byID[team.ID] = team
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	memberQuery := `
		SELECT tm.team_id, ` + prefixedParticipantColumns("p") + `
		FROM team_members tm
		JOIN participants p ON p.id = tm.participant_id
		JOIN teams t ON t.id = tm.team_id
		WHERE t.run_id = $1
		ORDER BY tm.team_id, tm.position`
	memberRows, err := r.db.QueryContext(ctx, memberQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members for run %d: %w", runID, err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var teamID int
		p, err := scanTeamMember(memberRows, &teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		if team, ok := byID[teamID]; ok {
			team.Members = append(team.Members, p)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) DeleteByRun(ctx context.Context, runID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete teams for run %d: %w", runID, err)
	}
	return nil
}

func prefixedParticipantColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.email, ` + alias + `.majors, ` + alias + `.role, ` +
		alias + `.interests, ` + alias + `.goals, ` + alias + `.add_info, ` + alias + `.idea, ` +
		alias + `.skills, ` + alias + `.experience_level, ` + alias + `.timezone, ` + alias + `.availability, ` + alias + `.created_at`
}

func scanTeamMember(rows *sql.Rows, teamID *int) (*models.Participant, error) {
	p := &models.Participant{}
	var role string
	var interests, goals, skills pq.StringArray
	var availability []byte

	err := rows.Scan(
		teamID,
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
