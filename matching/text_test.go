package matching

import (
	"testing"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/stretchr/testify/assert"
)

func textParticipant(id int, majors, addInfo, idea string) *models.Participant {
	return &models.Participant{ID: id, Majors: majors, AddInfo: addInfo, Idea: idea}
}

func TestTextScorerIdenticalDocuments(t *testing.T) {
	participants := []*models.Participant{
		textParticipant(1, "computer science", "loves robotics", "campus delivery robots"),
		textParticipant(2, "computer science", "loves robotics", "campus delivery robots"),
		textParticipant(3, "art history", "", "mural restoration archive"),
	}
	scorer := NewTextScorer(participants)

	assert.InDelta(t, 1.0, scorer.Score(participants[0], participants[1]), 1e-9)
}

func TestTextScorerDisjointDocuments(t *testing.T) {
	participants := []*models.Participant{
		textParticipant(1, "mathematics", "", ""),
		textParticipant(2, "sculpture", "", ""),
	}
	scorer := NewTextScorer(participants)

	assert.Zero(t, scorer.Score(participants[0], participants[1]))
}

func TestTextScorerEmptyDocumentScoresZero(t *testing.T) {
	participants := []*models.Participant{
		textParticipant(1, "", "", ""),
		textParticipant(2, "economics", "enjoys modeling markets", ""),
	}
	scorer := NewTextScorer(participants)

	assert.Zero(t, scorer.Score(participants[0], participants[1]))
	assert.Zero(t, scorer.Score(participants[0], participants[0]))
}

func TestTextScorerSymmetryAndBounds(t *testing.T) {
	participants := []*models.Participant{
		textParticipant(1, "computer science, statistics", "builds ml pipelines", "tutoring marketplace"),
		textParticipant(2, "statistics", "data visualization fan", "tutoring platform for stats"),
		textParticipant(3, "philosophy", "debate club", "ethics reading group"),
	}
	scorer := NewTextScorer(participants)

	for _, a := range participants {
		for _, b := range participants {
			got := scorer.Score(a, b)
			assert.Equal(t, got, scorer.Score(b, a))
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}

	// Overlapping vocabulary should beat unrelated vocabulary.
	related := scorer.Score(participants[0], participants[1])
	unrelated := scorer.Score(participants[0], participants[2])
	assert.Greater(t, related, unrelated)
}

func TestTextScorerUnknownParticipantScoresZero(t *testing.T) {
	participants := []*models.Participant{
		textParticipant(1, "biology", "", ""),
		textParticipant(2, "biology", "", ""),
	}
	scorer := NewTextScorer(participants)

	outsider := textParticipant(99, "biology", "", "")
	assert.Zero(t, scorer.Score(participants[0], outsider))
}

func TestTermCountsTokenization(t *testing.T) {
	counts := termCounts("Go, go, GO! x y2 data-driven")
	assert.Equal(t, 3, counts["go"])
	assert.Equal(t, 1, counts["y2"])
	assert.Equal(t, 1, counts["data"])
	assert.Equal(t, 1, counts["driven"])
	// Single-character tokens are dropped.
	assert.NotContains(t, counts, "x")
}
