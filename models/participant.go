package models

import "time"

type Role string

const (
	RoleBusiness Role = "business"
	RoleEngineer Role = "engineer"
	RoleFinance  Role = "finance"
	RoleOther    Role = "other"
)

// Survey vocabularies. Ingestion matches free-form answers against these
// closed sets; anything outside them is dropped before a participant is
// stored, so the scoring code never sees an unknown label.
var (
	InterestVocabulary = []string{
		"arts",
		"education",
		"finance",
		"healthcare",
		"sustainability",
		"social impact",
		"technology",
	}

	GoalVocabulary = []string{
		"learn about entrepreneurship and startups",
		"build relationships",
		"test my current idea",
		"solve world problems",
		"win lab support",
	}
)

type Participant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Majors string `json:"majors"`
	Role   Role   `json:"role"`

	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`

	AddInfo string `json:"add_info,omitempty"`
	Idea    string `json:"idea,omitempty"`

	// Extended profile fields used by the weighted scorer.
	Skills          []string            `json:"skills,omitempty"`
	ExperienceLevel int                 `json:"experience_level,omitempty"`
	Timezone        string              `json:"timezone,omitempty"`
	Availability    map[string][]string `json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InterestSet returns the participant's interests as a lookup set.
func (p *Participant) InterestSet() map[string]bool {
	return labelSet(p.Interests)
}

// GoalSet returns the participant's goals as a lookup set.
func (p *Participant) GoalSet() map[string]bool {
	return labelSet(p.Goals)
}

// SkillSet returns the participant's skills as a lookup set.
func (p *Participant) SkillSet() map[string]bool {
	return labelSet(p.Skills)
}

func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}
