package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/dmavani25/teammatch-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchingService(participants *fakeParticipantRepo, runs *fakeRunRepo, teams *fakeTeamRepo, uploader storage.FileUploader, flushAfterRun bool) MatchingService {
	// Synchronous execution and a single worker keep the tests deterministic.
	return NewMatchingService(participants, runs, teams, uploader, nil, 1, flushAfterRun, false)
}

func tripletRoster() []*models.Participant {
	return []*models.Participant{
		{
			ID: 1, Name: "Bea", Role: models.RoleBusiness,
			Interests: []string{"technology"},
			Goals:     []string{"build relationships"},
			Idea:      "campus delivery startup",
		},
		{
			ID: 2, Name: "Edgar", Role: models.RoleEngineer,
			Interests: []string{"technology"},
			Goals:     []string{"build relationships"},
			AddInfo:   "backend for a campus delivery startup",
		},
		{
			ID: 3, Name: "Fern", Role: models.RoleFinance,
			Interests: []string{"finance"},
			Goals:     []string{"build relationships"},
			AddInfo:   "unit economics and pricing",
		},
	}
}

func flexibleRoster() []*models.Participant {
	return []*models.Participant{
		{ID: 1, Name: "Edgar", Role: models.RoleEngineer, Skills: []string{"go", "sql"}, Timezone: "UTC+1", ExperienceLevel: 3},
		{ID: 2, Name: "Fern", Role: models.RoleFinance, Skills: []string{"excel", "sql"}, Timezone: "UTC+2", ExperienceLevel: 2},
		{ID: 3, Name: "Bea", Role: models.RoleBusiness, Skills: []string{"sales"}, Timezone: "UTC+1", ExperienceLevel: 4},
		{ID: 4, Name: "Olga", Role: models.RoleOther, Skills: []string{"design"}, Timezone: "UTC+3", ExperienceLevel: 1},
	}
}

func TestStartRunTripletCompletesAndPersists(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	runs := newFakeRunRepo()
	teams := newFakeTeamRepo()
	uploader := &fakeUploader{}
	service := newTestMatchingService(participants, runs, teams, uploader, false)

	run, err := service.StartRun(context.Background(), RunInput{Mode: models.ModeTriplet})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 3, run.ParticipantCount)
	assert.Equal(t, 1, run.TeamCount)
	assert.Equal(t, 0.5, run.InterestWeight)
	require.NotNil(t, run.CompletedAt)

	stored := teams.byRun[run.ID]
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Members, 3)
	assert.Positive(t, stored[0].CompatibilityScore)

	require.NotNil(t, run.ExportKey)
	assert.Equal(t, "runs/1/teams.json", *run.ExportKey)
	require.NotNil(t, run.ExportURL)
	assert.Equal(t, "https://files.test/runs/1/teams.json", *run.ExportURL)
	assert.Equal(t, []string{"runs/1/teams.json"}, uploader.keys)

	assert.False(t, participants.flushed)
}

func TestStartRunFlexibleModeDefaultsTeamSize(t *testing.T) {
	participants := &fakeParticipantRepo{participants: flexibleRoster()}
	runs := newFakeRunRepo()
	teams := newFakeTeamRepo()
	service := newTestMatchingService(participants, runs, teams, nil, false)

	run, err := service.StartRun(context.Background(), RunInput{Mode: models.ModeFlexible})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 4, run.TeamSize)
	assert.Equal(t, 1, run.TeamCount)

	stored := teams.byRun[run.ID]
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Members, 4)
}

func TestStartRunValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RunInput
		want  error
	}{
		{"unknown mode", RunInput{Mode: "ladder"}, ErrInvalidMode},
		{"negative interest weight", RunInput{Mode: models.ModeTriplet, InterestWeight: -0.1}, ErrInvalidInterestWeight},
		{"team size of one", RunInput{Mode: models.ModeFlexible, TeamSize: 1}, ErrInvalidTeamSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants := &fakeParticipantRepo{participants: tripletRoster()}
			runs := newFakeRunRepo()
			service := newTestMatchingService(participants, runs, newFakeTeamRepo(), nil, false)

			_, err := service.StartRun(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, runs.runs, "invalid input must not create a run")
		})
	}
}

func TestStartRunWithoutParticipants(t *testing.T) {
	runs := newFakeRunRepo()
	service := newTestMatchingService(&fakeParticipantRepo{}, runs, newFakeTeamRepo(), nil, false)

	_, err := service.StartRun(context.Background(), RunInput{})
	require.ErrorIs(t, err, ErrNoParticipants)
	assert.Empty(t, runs.runs)
}

func TestStartRunFlushesParticipants(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	service := newTestMatchingService(participants, newFakeRunRepo(), newFakeTeamRepo(), nil, true)

	run, err := service.StartRun(context.Background(), RunInput{})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.True(t, participants.flushed)
}

func TestStartRunSkipsExportWithoutUploader(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	service := newTestMatchingService(participants, newFakeRunRepo(), newFakeTeamRepo(), nil, false)

	run, err := service.StartRun(context.Background(), RunInput{})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Nil(t, run.ExportKey)
	assert.Nil(t, run.ExportURL)
}

func TestStartRunMarksFailureWhenTeamsCannotBeStored(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	teams := newFakeTeamRepo()
	teams.createErr = errors.New("disk full")
	runs := newFakeRunRepo()
	service := newTestMatchingService(participants, runs, teams, nil, false)

	_, err := service.StartRun(context.Background(), RunInput{})
	require.Error(t, err)

	require.Len(t, runs.runs, 1)
	run := runs.runs[1]
	assert.Equal(t, models.RunStatusFailed, run.Status)
	require.NotNil(t, run.Error)
	assert.Contains(t, *run.Error, "disk full")
	require.NotNil(t, run.CompletedAt)
}

func TestGetRunUnknownID(t *testing.T) {
	service := newTestMatchingService(&fakeParticipantRepo{}, newFakeRunRepo(), newFakeTeamRepo(), nil, false)

	_, err := service.GetRun(context.Background(), 42)
	require.ErrorIs(t, err, ErrRunNotFound)

	_, err = service.GetRunTeams(context.Background(), 42)
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestGetRunTeamsReturnsStoredTeams(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	service := newTestMatchingService(participants, newFakeRunRepo(), newFakeTeamRepo(), nil, false)

	run, err := service.StartRun(context.Background(), RunInput{})
	require.NoError(t, err)

	teams, err := service.GetRunTeams(context.Background(), run.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, run.ID, teams[0].RunID)
}

func TestListRunsNewestFirst(t *testing.T) {
	participants := &fakeParticipantRepo{participants: tripletRoster()}
	service := newTestMatchingService(participants, newFakeRunRepo(), newFakeTeamRepo(), nil, false)

	first, err := service.StartRun(context.Background(), RunInput{})
	require.NoError(t, err)
	second, err := service.StartRun(context.Background(), RunInput{Mode: models.ModeFlexible})
	require.NoError(t, err)

	runs, err := service.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}
