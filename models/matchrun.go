package models

import "time"

type MatchRunStatus string

const (
	RunStatusPending   MatchRunStatus = "pending"
	RunStatusRunning   MatchRunStatus = "running"
	RunStatusCompleted MatchRunStatus = "completed"
	RunStatusFailed    MatchRunStatus = "failed"
)

// Formation modes supported by a match run.
const (
	ModeTriplet  = "triplet"  // fixed business/engineer/finance teams of three
	ModeFlexible = "flexible" // configurable team size, weighted four-factor score
)

type MatchRun struct {
	ID             int     `json:"id"`
	Mode           string  `json:"mode"`
	TeamSize       int     `json:"team_size"`
	InterestWeight float64 `json:"interest_weight"`

	Status           MatchRunStatus `json:"status"`
	ParticipantCount int            `json:"participant_count"`
	TeamCount        int            `json:"team_count"`

	ExportKey *string `json:"export_key,omitempty"`
	ExportURL *string `json:"export_url,omitempty"`
	Error     *string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
