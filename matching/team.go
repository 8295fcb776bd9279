package matching

import (
	"sort"

	"github.com/dmavani25/teammatch-system/models"
)

// Team is one formed team: an ordered list of participant references plus
// summary attributes derived from the members and the score matrix.
type Team struct {
	Members            []*models.Participant `json:"members"`
	CompatibilityScore float64               `json:"compatibility_score"`
	SkillsCoverage     map[string]int        `json:"skills_coverage,omitempty"`
	TimezoneSpan       []string              `json:"timezone_span,omitempty"`
}

// newTeam materializes a team from participant indices and recomputes its
// derived attributes.
func newTeam(matrix ScoreMatrix, participants []*models.Participant, indices []int) *Team {
	members := make([]*models.Participant, len(indices))
	for i, idx := range indices {
		members[i] = participants[idx]
	}
	return &Team{
		Members:            members,
		CompatibilityScore: teamCompatibility(matrix, indices),
		SkillsCoverage:     skillsCoverage(members),
		TimezoneSpan:       timezoneSpan(members),
	}
}

// teamCompatibility is the mean of all pairwise scores among the members,
// rounded to two decimals. Teams with fewer than two members score 0.
func teamCompatibility(matrix ScoreMatrix, indices []int) float64 {
	if len(indices) < 2 {
		return 0
	}
	var sum float64
	pairs := 0
	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			sum += matrix.At(indices[i], indices[j])
			pairs++
		}
	}
	return round2(sum / float64(pairs))
}

// skillsCoverage counts how many members bring each skill.
func skillsCoverage(members []*models.Participant) map[string]int {
	coverage := make(map[string]int)
	for _, member := range members {
		for _, skill := range member.Skills {
			coverage[skill]++
		}
	}
	return coverage
}

// timezoneSpan lists the distinct member timezones in sorted order.
func timezoneSpan(members []*models.Participant) []string {
	seen := make(map[string]bool)
	span := make([]string, 0, len(members))
	for _, member := range members {
		if member.Timezone == "" || seen[member.Timezone] {
			continue
		}
		seen[member.Timezone] = true
		span = append(span, member.Timezone)
	}
	sort.Strings(span)
	return span
}
