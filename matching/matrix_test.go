package matching

import (
	"context"
	"testing"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScorers(participants []*models.Participant) []PairScorer {
	return []PairScorer{
		NewCategoricalScorer(DefaultInterestWeight),
		NewTextScorer(participants),
	}
}

func sampleParticipants() []*models.Participant {
	return []*models.Participant{
		{ID: 1, Role: models.RoleBusiness, Majors: "economics", Interests: []string{"finance", "technology"}, Goals: []string{"build relationships"}, Idea: "budgeting app for students"},
		{ID: 2, Role: models.RoleEngineer, Majors: "computer science", Interests: []string{"technology"}, Goals: []string{"build relationships", "solve world problems"}, Idea: "budgeting tools"},
		{ID: 3, Role: models.RoleFinance, Majors: "mathematics", Interests: []string{"finance"}, Goals: []string{"test my current idea"}, AddInfo: "worked at a hedge fund"},
		{ID: 4, Role: models.RoleEngineer, Majors: "physics", Interests: []string{"sustainability"}, Goals: []string{"solve world problems"}, Idea: "solar panel monitoring"},
	}
}

func TestMatrixBuilderSymmetryAndZeroDiagonal(t *testing.T) {
	participants := sampleParticipants()
	builder := NewMatrixBuilder(baseScorers(participants)...)

	matrix, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)
	require.Equal(t, len(participants), matrix.Size())

	for i := 0; i < matrix.Size(); i++ {
		assert.Zero(t, matrix.At(i, i))
		for j := 0; j < matrix.Size(); j++ {
			assert.InDelta(t, matrix.At(i, j), matrix.At(j, i), 1e-9)
			assert.GreaterOrEqual(t, matrix.At(i, j), 0.0)
			// Base mode bound: categorical max 1+w plus text max 1.
			assert.LessOrEqual(t, matrix.At(i, j), 1+DefaultInterestWeight+1)
		}
	}
}

func TestMatrixBuilderDeterministicAcrossWorkerCounts(t *testing.T) {
	participants := sampleParticipants()

	var matrices []ScoreMatrix
	for _, workers := range []int{1, 2, 8} {
		builder := NewMatrixBuilder(baseScorers(participants)...)
		builder.Workers = workers
		matrix, err := builder.Build(context.Background(), participants)
		require.NoError(t, err)
		matrices = append(matrices, matrix)
	}

	for i := 0; i < matrices[0].Size(); i++ {
		for j := 0; j < matrices[0].Size(); j++ {
			assert.Equal(t, matrices[0].At(i, j), matrices[1].At(i, j))
			assert.Equal(t, matrices[0].At(i, j), matrices[2].At(i, j))
		}
	}
}

func TestMatrixBuilderIdempotent(t *testing.T) {
	participants := sampleParticipants()
	builder := NewMatrixBuilder(baseScorers(participants)...)

	first, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)
	second, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)

	assert.Equal(t, first.Cells(), second.Cells())
}

func TestMatrixBuilderEmptyInput(t *testing.T) {
	builder := NewMatrixBuilder(NewCategoricalScorer(0.5))
	matrix, err := builder.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, matrix.Size())
}

func TestMatrixBuilderCancelledContext(t *testing.T) {
	participants := sampleParticipants()
	builder := NewMatrixBuilder(baseScorers(participants)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.Build(ctx, participants)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatrixBuilderReportsProgress(t *testing.T) {
	participants := sampleParticipants()
	var events []ProgressEvent
	builder := NewMatrixBuilder(baseScorers(participants)...)
	builder.Reporter = ReporterFunc(func(e ProgressEvent) { events = append(events, e) })

	_, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, StageScoring, events[0].Stage)
}
