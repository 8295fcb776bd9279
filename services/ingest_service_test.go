package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyHeader = `Timestamp,Email Address,Full Name,Class Year,Major,Additional Major 1,Additional Major 2,Domains of Interest,Do you have an idea (big or small)?,What is your idea?,What stage are you at?,What role are you interested in taking on a team?,What are your goals for the Lab?,Provide any additional information about yourself.,Do you already have a team?,Has your team been registered?`

func surveyCSV(rows ...string) string {
	return surveyHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestImportSurveyStoresParticipantsAndArchives(t *testing.T) {
	repo := &fakeParticipantRepo{}
	uploader := &fakeUploader{}
	service := NewIngestService(repo, uploader)

	csv := surveyCSV(
		`1/1/2025,ada@example.com,Ada Lovelace,2026,Mathematics,,,Technology,Yes,An analytical engine,Idea,Engineering,"Build relationships, test my current idea",Loves compilers,No – match me with a team,No`,
		`1/2/2025,grace@example.com,Grace Hopper,2025,Physics,,,Technology,No,,,Business,Build relationships,,Yes,Yes`,
	)

	summary, err := service.ImportSurvey(context.Background(), "lab survey.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "ada@example.com", repo.created[0].Email)
	assert.Equal(t, models.RoleEngineer, repo.created[0].Role)

	require.Len(t, uploader.keys, 1)
	assert.True(t, strings.HasPrefix(uploader.keys[0], "uploads/"), "archive key should live under uploads/, got %q", uploader.keys[0])
	assert.True(t, strings.HasSuffix(uploader.keys[0], "_lab_survey.csv"), "archive key should keep the sanitized filename, got %q", uploader.keys[0])
	assert.Equal(t, uploader.keys[0], summary.ArchiveKey)
	assert.Equal(t, "https://files.test/"+uploader.keys[0], summary.ArchiveURL)
}

func TestImportSurveyMissingColumns(t *testing.T) {
	service := NewIngestService(&fakeParticipantRepo{}, nil)

	_, err := service.ImportSurvey(context.Background(), "survey.csv", strings.NewReader("Email Address,Full Name\n"))
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestImportSurveyWithoutUsableRespondents(t *testing.T) {
	repo := &fakeParticipantRepo{}
	service := NewIngestService(repo, nil)

	csv := surveyCSV(
		`1/2/2025,grace@example.com,Grace Hopper,2025,Physics,,,Technology,No,,,Business,Build relationships,,Yes,Yes`,
	)

	_, err := service.ImportSurvey(context.Background(), "survey.csv", strings.NewReader(csv))
	require.ErrorIs(t, err, ErrEmptySurvey)
	assert.Empty(t, repo.created)
}

func TestImportSurveyArchiveFailureStillImports(t *testing.T) {
	repo := &fakeParticipantRepo{}
	uploader := &fakeUploader{uploadErr: errors.New("bucket unavailable")}
	service := NewIngestService(repo, uploader)

	csv := surveyCSV(
		`1/1/2025,ada@example.com,Ada Lovelace,2026,Mathematics,,,Technology,Yes,An analytical engine,Idea,Engineering,Build relationships,,No – match me with a team,No`,
	)

	summary, err := service.ImportSurvey(context.Background(), "survey.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Empty(t, summary.ArchiveKey)
	assert.Empty(t, summary.ArchiveURL)
	require.Len(t, repo.created, 1)
}

func TestGetParticipantUnknownID(t *testing.T) {
	service := NewIngestService(&fakeParticipantRepo{}, nil)

	_, err := service.GetParticipant(context.Background(), 7)
	require.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestClearParticipants(t *testing.T) {
	repo := &fakeParticipantRepo{participants: tripletRoster()}
	service := NewIngestService(repo, nil)

	require.NoError(t, service.ClearParticipants(context.Background()))
	assert.True(t, repo.flushed)

	participants, err := service.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, participants)
}
