package models

import "time"

// Team is a persisted team produced by a match run. Members are ordered the
// way the formation engine emitted them. The summary fields
// (CompatibilityScore, SkillsCoverage, TimezoneSpan) are derived from the
// members at formation time and stored for display only.
type Team struct {
	ID       int `json:"id"`
	RunID    int `json:"run_id"`
	Position int `json:"position"`

	CompatibilityScore float64        `json:"compatibility_score"`
	SkillsCoverage     map[string]int `json:"skills_coverage,omitempty"`
	TimezoneSpan       []string       `json:"timezone_span,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Members []*Participant `json:"members,omitempty"`
}
