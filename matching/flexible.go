package matching

import (
	"fmt"

	"github.com/dmavani25/teammatch-system/models"
)

// DefaultTeamSize is the flexible-mode target team size.
const DefaultTeamSize = 4

// FlexibleFormer builds teams of a configurable target size. Each team is
// seeded with the strongest engineer/finance pair still available and then
// grown greedily with whichever unassigned participant fits the current
// members best. Ties always resolve to the earliest participant in input
// order.
type FlexibleFormer struct {
	TeamSize int
	Reporter ProgressReporter
}

func NewFlexibleFormer(teamSize int) *FlexibleFormer {
	if teamSize < 2 {
		teamSize = DefaultTeamSize
	}
	return &FlexibleFormer{TeamSize: teamSize, Reporter: NopReporter{}}
}

// Form partitions the participants into teams of roughly TeamSize members.
// After the main loop, each leftover participant is offered to the existing
// team whose recomputed compatibility with them is highest and joins it only
// if that does not lower the team's score; everyone still unassigned forms
// one final partial team.
func (f *FlexibleFormer) Form(participants []*models.Participant, matrix ScoreMatrix) []*Team {
	n := len(participants)
	if n == 0 {
		return []*Team{}
	}

	unassigned := make([]int, n)
	for i := range unassigned {
		unassigned[i] = i
	}

	var teams []*Team
	var teamIndices [][]int

	for len(unassigned) >= f.TeamSize {
		eng, fin := bestRolePair(matrix, participants, unassigned)
		if eng < 0 {
			break
		}

		team := []int{eng, fin}
		unassigned = remove(unassigned, eng)
		unassigned = remove(unassigned, fin)

		for len(team) < f.TeamSize && len(unassigned) > 0 {
			next := bestFit(matrix, team, unassigned)
			team = append(team, next)
			unassigned = remove(unassigned, next)
		}

		teamIndices = append(teamIndices, team)
		teams = append(teams, newTeam(matrix, participants, team))
		f.reporter().Report(ProgressEvent{
			Stage:   StageSeeding,
			Message: fmt.Sprintf("formed team of %d", len(team)),
			Teams:   len(teams),
		})
	}

	var remaining []int
	for _, u := range unassigned {
		placed := false
		if len(teams) > 0 {
			best, bestScore := -1, 0.0
			for t, indices := range teamIndices {
				score := teamCompatibility(matrix, append(indices[:len(indices):len(indices)], u))
				if best == -1 || score > bestScore {
					best, bestScore = t, score
				}
			}
			if bestScore >= teams[best].CompatibilityScore {
				teamIndices[best] = append(teamIndices[best], u)
				teams[best] = newTeam(matrix, participants, teamIndices[best])
				placed = true
			}
		}
		if !placed {
			remaining = append(remaining, u)
		}
	}

	if len(remaining) > 0 {
		// A final partial team, even below the target size.
		teams = append(teams, newTeam(matrix, participants, remaining))
	}

	f.reporter().Report(ProgressEvent{
		Stage:   StageComplete,
		Message: fmt.Sprintf("formed %d teams", len(teams)),
		Teams:   len(teams),
	})
	return teams
}

// bestRolePair finds the unassigned engineer×finance pair with the highest
// pairwise score. Returns (-1, -1) when either role is absent, which stops
// new-team formation.
func bestRolePair(matrix ScoreMatrix, participants []*models.Participant, unassigned []int) (int, int) {
	var engineers, finance []int
	for _, i := range unassigned {
		switch participants[i].Role {
		case models.RoleEngineer:
			engineers = append(engineers, i)
		case models.RoleFinance:
			finance = append(finance, i)
		}
	}
	if len(engineers) == 0 || len(finance) == 0 {
		return -1, -1
	}

	bestEng, bestFin := -1, -1
	for _, e := range engineers {
		for _, fi := range finance {
			if bestEng == -1 || matrix.At(e, fi) > matrix.At(bestEng, bestFin) {
				bestEng, bestFin = e, fi
			}
		}
	}
	return bestEng, bestFin
}

// bestFit picks the unassigned participant whose summed score against all
// current team members is highest.
func bestFit(matrix ScoreMatrix, team []int, unassigned []int) int {
	best := -1
	var bestSum float64
	for _, u := range unassigned {
		var sum float64
		for _, member := range team {
			sum += matrix.At(u, member)
		}
		if best == -1 || sum > bestSum {
			best, bestSum = u, sum
		}
	}
	return best
}

func remove(indices []int, value int) []int {
	out := indices[:0]
	for _, v := range indices {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func (f *FlexibleFormer) reporter() ProgressReporter {
	if f.Reporter == nil {
		return NopReporter{}
	}
	return f.Reporter
}
