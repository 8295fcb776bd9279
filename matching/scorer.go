package matching

import (
	"github.com/dmavani25/teammatch-system/models"
)

// PairScorer computes one compatibility component between two participants.
// Implementations must be symmetric: Score(a, b) == Score(b, a).
type PairScorer interface {
	Score(a, b *models.Participant) float64

	Name() string
}
