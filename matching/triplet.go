package matching

import (
	"fmt"

	"github.com/dmavani25/teammatch-system/models"
)

// TripletFormer builds business/engineer/finance teams of target size three.
//
// Every greedy choice breaks ties by first occurrence in the original
// participant order, which makes the whole partition deterministic for a
// fixed input ordering.
type TripletFormer struct {
	Reporter ProgressReporter
}

func NewTripletFormer() *TripletFormer {
	return &TripletFormer{Reporter: NopReporter{}}
}

// Form partitions the participants into teams using the score matrix built
// over the same ordered participant list. The stages are:
//
//  1. Seeding: each business participant, in input order, anchors a team and
//     pulls in the highest-scoring unused engineer and finance participant.
//  2. Leftover chunking: everyone still unused is grouped into consecutive
//     threes; a single trailing participant joins the last team in the list,
//     a trailing pair becomes its own team.
//  3. Singleton repair: size-1 teams are merged pairwise; a final lone
//     singleton joins the first team of two if any exists, otherwise the
//     first multi-member team.
func (f *TripletFormer) Form(participants []*models.Participant, matrix ScoreMatrix) []*Team {
	n := len(participants)
	if n == 0 {
		return []*Team{}
	}

	used := make([]bool, n)
	var business, engineers, finance []int
	for i, p := range participants {
		switch p.Role {
		case models.RoleBusiness:
			business = append(business, i)
		case models.RoleEngineer:
			engineers = append(engineers, i)
		case models.RoleFinance:
			finance = append(finance, i)
		}
	}

	var teams [][]int
	for _, b := range business {
		if used[b] {
			continue
		}
		team := []int{b}
		used[b] = true

		if e := bestUnusedMatch(matrix, b, engineers, used); e >= 0 {
			team = append(team, e)
			used[e] = true
		}
		if fi := bestUnusedMatch(matrix, b, finance, used); fi >= 0 {
			team = append(team, fi)
			used[fi] = true
		}
		teams = append(teams, team)
	}
	f.reporter().Report(ProgressEvent{
		Stage:   StageSeeding,
		Message: fmt.Sprintf("seeded %d teams from %d business participants", len(teams), len(business)),
		Teams:   len(teams),
	})

	var leftovers []int
	for i := 0; i < n; i++ {
		if !used[i] {
			leftovers = append(leftovers, i)
		}
	}
	for len(leftovers) >= 3 {
		teams = append(teams, leftovers[:3:3])
		leftovers = leftovers[3:]
	}
	switch len(leftovers) {
	case 1:
		if len(teams) == 0 {
			// Degenerate single-participant input: a lone team is the only
			// possible partition.
			teams = append(teams, leftovers)
		} else {
			// The last team in the list is the last leftover chunk when one
			// exists, and the last seeded team otherwise.
			last := len(teams) - 1
			teams[last] = append(teams[last], leftovers[0])
		}
	case 2:
		teams = append(teams, leftovers)
	}
	f.reporter().Report(ProgressEvent{
		Stage:   StageLeftovers,
		Message: "leftover participants chunked",
		Teams:   len(teams),
	})

	teams = repairSingletons(teams)
	f.reporter().Report(ProgressEvent{
		Stage:   StageComplete,
		Message: fmt.Sprintf("formed %d teams", len(teams)),
		Teams:   len(teams),
	})

	result := make([]*Team, len(teams))
	for i, indices := range teams {
		result[i] = newTeam(matrix, participants, indices)
	}
	return result
}

// bestUnusedMatch returns the unused candidate with the highest score against
// the anchor, preferring the earliest candidate on ties. Returns -1 when no
// candidate is available.
func bestUnusedMatch(matrix ScoreMatrix, anchor int, candidates []int, used []bool) int {
	best := -1
	for _, c := range candidates {
		if used[c] {
			continue
		}
		if best == -1 || matrix.At(anchor, c) > matrix.At(anchor, best) {
			best = c
		}
	}
	return best
}

// repairSingletons enforces the minimum team size of two. Singletons are
// merged with each other two at a time; if one remains it is attached to the
// first team of exactly two members, or failing that to the first
// multi-member team. Merged teams are appended after the surviving
// multi-member teams, preserving their relative order.
func repairSingletons(teams [][]int) [][]int {
	var singles, multis [][]int
	for _, team := range teams {
		if len(team) == 1 {
			singles = append(singles, team)
		} else {
			multis = append(multis, team)
		}
	}

	for len(singles) > 0 {
		if len(singles) >= 2 {
			merged := append(singles[0], singles[1]...)
			singles = singles[2:]
			multis = append(multis, merged)
			continue
		}

		lone := singles[0][0]
		singles = nil
		attached := false
		for i, team := range multis {
			if len(team) == 2 {
				multis[i] = append(team, lone)
				attached = true
				break
			}
		}
		if !attached {
			if len(multis) > 0 {
				multis[0] = append(multis[0], lone)
			} else {
				// Nothing to merge with; the singleton survives.
				multis = append(multis, []int{lone})
			}
		}
	}
	return multis
}

func (f *TripletFormer) reporter() ProgressReporter {
	if f.Reporter == nil {
		return NopReporter{}
	}
	return f.Reporter
}
