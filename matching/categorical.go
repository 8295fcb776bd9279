package matching

import (
	"github.com/dmavani25/teammatch-system/models"
)

// DefaultInterestWeight scales the interest sub-score relative to the goal
// sub-score in the categorical comparison.
const DefaultInterestWeight = 0.5

// CategoricalScorer compares two participants over the closed interest and
// goal vocabularies. For each vocabulary label the participants either agree
// (both have it or both lack it) or disagree; the sub-score is the fraction
// of labels they agree on. The combined score is
//
//	goalScore + InterestWeight*interestScore
//
// which makes 1+InterestWeight the maximum for identical attribute sets.
type CategoricalScorer struct {
	InterestWeight float64
}

func NewCategoricalScorer(interestWeight float64) *CategoricalScorer {
	return &CategoricalScorer{InterestWeight: interestWeight}
}

func (s *CategoricalScorer) Name() string {
	return "categorical"
}

func (s *CategoricalScorer) Score(a, b *models.Participant) float64 {
	interestScore := vocabularyAgreement(models.InterestVocabulary, a.InterestSet(), b.InterestSet())
	goalScore := vocabularyAgreement(models.GoalVocabulary, a.GoalSet(), b.GoalSet())
	return goalScore + s.InterestWeight*interestScore
}

// vocabularyAgreement counts per-label equality of the two sets across the
// whole vocabulary. Both participants lacking a label counts as agreement.
func vocabularyAgreement(vocabulary []string, a, b map[string]bool) float64 {
	if len(vocabulary) == 0 {
		return 0
	}
	matches := 0
	for _, label := range vocabulary {
		if a[label] == b[label] {
			matches++
		}
	}
	return float64(matches) / float64(len(vocabulary))
}
