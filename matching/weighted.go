package matching

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dmavani25/teammatch-system/models"
)

const (
	// timezoneDefaultScore is returned when an offset cannot be parsed.
	// A malformed timezone should dampen the pair, not fail the run.
	timezoneDefaultScore = 0.5

	// maxTimezoneSpreadHours is the spread at which timezone compatibility
	// bottoms out at zero.
	maxTimezoneSpreadHours = 12

	// maxExperienceSpan is the assumed maximum experience-level distance.
	maxExperienceSpan = 5
)

// FactorWeights holds the relative weights of the four components of the
// weighted score. They are expected to sum to 1 so the result stays in [0, 1].
type FactorWeights struct {
	Skills         float64 `json:"skills"`
	InterestsGoals float64 `json:"interests_goals"`
	Timezone       float64 `json:"timezone"`
	Experience     float64 `json:"experience"`
}

func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		Skills:         0.3,
		InterestsGoals: 0.3,
		Timezone:       0.2,
		Experience:     0.2,
	}
}

// WeightedScorer is the extended compatibility score used by flexible-size
// formation: a weighted sum of skill-vector cosine similarity, interest/goal
// overlap, timezone compatibility and experience balance. Every component is
// normalized to [0, 1] before weighting and the final score is rounded to two
// decimal places.
type WeightedScorer struct {
	Weights FactorWeights
}

func NewWeightedScorer(weights FactorWeights) *WeightedScorer {
	return &WeightedScorer{Weights: weights}
}

func (s *WeightedScorer) Name() string {
	return "weighted"
}

func (s *WeightedScorer) Score(a, b *models.Participant) float64 {
	score := s.Weights.Skills*skillCosine(a, b) +
		s.Weights.InterestsGoals*interestsGoalsOverlap(a, b) +
		s.Weights.Timezone*TimezoneCompatibility(a.Timezone, b.Timezone) +
		s.Weights.Experience*ExperienceBalance(a.ExperienceLevel, b.ExperienceLevel)
	return round2(score)
}

// skillCosine is the cosine similarity of the participants' binary skill
// vectors over the union of their skills. Empty skill sets score 0.
func skillCosine(a, b *models.Participant) float64 {
	sa := a.SkillSet()
	sb := b.SkillSet()
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	shared := 0
	for skill := range sa {
		if sb[skill] {
			shared++
		}
	}
	return round2(float64(shared) / (math.Sqrt(float64(len(sa))) * math.Sqrt(float64(len(sb)))))
}

// interestsGoalsOverlap averages the shared-over-larger-set ratios of the two
// label groups. Unlike the categorical scorer it ignores labels neither
// participant selected.
func interestsGoalsOverlap(a, b *models.Participant) float64 {
	sharedInterests := sharedCount(a.InterestSet(), b.InterestSet())
	sharedGoals := sharedCount(a.GoalSet(), b.GoalSet())

	maxInterests := max(len(a.Interests), len(b.Interests))
	maxGoals := max(len(a.Goals), len(b.Goals))

	if maxInterests == 0 && maxGoals == 0 {
		return 0
	}

	var interestsScore, goalsScore float64
	if maxInterests > 0 {
		interestsScore = float64(sharedInterests) / float64(maxInterests)
	}
	if maxGoals > 0 {
		goalsScore = float64(sharedGoals) / float64(maxGoals)
	}
	return round2((interestsScore + goalsScore) / 2)
}

// TimezoneCompatibility scores two timezone strings. Identical strings score
// 1.0. Otherwise both must parse as signed UTC hour offsets ("UTC+5",
// "UTC-3", "+2", "0"); the score decays linearly with the hour difference and
// reaches zero at maxTimezoneSpreadHours apart. If either side fails to
// parse, the pair gets timezoneDefaultScore.
func TimezoneCompatibility(tz1, tz2 string) float64 {
	if tz1 == tz2 {
		return 1.0
	}
	h1, err1 := parseUTCOffset(tz1)
	h2, err2 := parseUTCOffset(tz2)
	if err1 != nil || err2 != nil {
		return timezoneDefaultScore
	}
	diff := math.Abs(float64(h1 - h2))
	return math.Max(0, 1-diff/maxTimezoneSpreadHours)
}

func parseUTCOffset(tz string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(tz))
	s = strings.TrimPrefix(s, "UTC")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, errors.New("empty timezone offset")
	}
	return strconv.Atoi(s)
}

// ExperienceBalance scores how close two experience levels are, reaching zero
// once they are maxExperienceSpan or more apart.
func ExperienceBalance(level1, level2 int) float64 {
	diff := math.Abs(float64(level1 - level2))
	return math.Max(0, 1-diff/maxExperienceSpan)
}

func sharedCount(a, b map[string]bool) int {
	shared := 0
	for label := range a {
		if b[label] {
			shared++
		}
	}
	return shared
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
