package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dmavani25/teammatch-system/live"
	"github.com/dmavani25/teammatch-system/matching"
	"github.com/dmavani25/teammatch-system/models"
	"github.com/dmavani25/teammatch-system/repositories"
	"github.com/dmavani25/teammatch-system/storage"
)

// RunInput carries the organizer-chosen knobs of a match run. Zero values
// fall back to the engine defaults.
type RunInput struct {
	Mode           string  `json:"mode"`
	TeamSize       int     `json:"team_size"`
	InterestWeight float64 `json:"interest_weight"`
}

type MatchingService interface {
	// StartRun validates the input, snapshots the current participants and
	// creates a pending run. The pipeline itself (score matrix, team
	// formation, persistence, export) runs on a background goroutine so
	// callers can subscribe to the run's progress room right away. With
	// async disabled the pipeline completes before StartRun returns.
	StartRun(ctx context.Context, input RunInput) (*models.MatchRun, error)
	GetRun(ctx context.Context, id int) (*models.MatchRun, error)
	ListRuns(ctx context.Context) ([]*models.MatchRun, error)
	GetRunTeams(ctx context.Context, runID int) ([]*models.Team, error)
}

type matchingService struct {
	participantRepo repositories.ParticipantRepository
	runRepo         repositories.MatchRunRepository
	teamRepo        repositories.TeamRepository
	uploader        storage.FileUploader
	hub             *live.Hub

	workers       int
	flushAfterRun bool
	async         bool
}

func NewMatchingService(
	participantRepo repositories.ParticipantRepository,
	runRepo repositories.MatchRunRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
	workers int,
	flushAfterRun bool,
	async bool,
) MatchingService {
	return &matchingService{
		participantRepo: participantRepo,
		runRepo:         runRepo,
		teamRepo:        teamRepo,
		uploader:        uploader,
		hub:             hub,
		workers:         workers,
		flushAfterRun:   flushAfterRun,
		async:           async,
	}
}

func (s *matchingService) StartRun(ctx context.Context, input RunInput) (*models.MatchRun, error) {
	run, err := s.newRun(input)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	run.ParticipantCount = len(participants)
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create match run: %w", err)
	}

	if s.async {
		go func() {
			// The request context dies with the HTTP response; the pipeline
			// outlives it.
			if err := s.runPipeline(context.Background(), run, participants); err != nil {
				log.Printf("match run %d failed: %v", run.ID, err)
			}
		}()
		return run, nil
	}

	if err := s.runPipeline(ctx, run, participants); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *matchingService) GetRun(ctx context.Context, id int) (*models.MatchRun, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to find match run %d: %w", id, err)
	}
	return run, nil
}

func (s *matchingService) ListRuns(ctx context.Context) ([]*models.MatchRun, error) {
	runs, err := s.runRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list match runs: %w", err)
	}
	return runs, nil
}

func (s *matchingService) GetRunTeams(ctx context.Context, runID int) ([]*models.Team, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for run %d: %w", runID, err)
	}
	return teams, nil
}

// newRun validates the input and applies defaults.
func (s *matchingService) newRun(input RunInput) (*models.MatchRun, error) {
	mode := input.Mode
	if mode == "" {
		mode = models.ModeTriplet
	}
	if mode != models.ModeTriplet && mode != models.ModeFlexible {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, input.Mode)
	}

	weight := input.InterestWeight
	if weight < 0 {
		return nil, ErrInvalidInterestWeight
	}
	if weight == 0 {
		weight = matching.DefaultInterestWeight
	}

	size := input.TeamSize
	if size == 0 {
		size = matching.DefaultTeamSize
	}
	if size < 2 {
		return nil, ErrInvalidTeamSize
	}

	return &models.MatchRun{
		Mode:           mode,
		TeamSize:       size,
		InterestWeight: weight,
		Status:         models.RunStatusPending,
	}, nil
}

func (s *matchingService) runPipeline(ctx context.Context, run *models.MatchRun, participants []*models.Participant) error {
	run.Status = models.RunStatusRunning
	if err := s.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("failed to mark run %d as running: %w", run.ID, err)
	}

	teams, err := s.formTeams(ctx, run, participants)
	if err != nil {
		s.failRun(ctx, run, err)
		return err
	}

	if err := s.teamRepo.CreateForRun(ctx, run.ID, teams); err != nil {
		err = fmt.Errorf("failed to store teams: %w", err)
		s.failRun(ctx, run, err)
		return err
	}

	s.exportTeams(ctx, run, teams)

	now := time.Now()
	run.Status = models.RunStatusCompleted
	run.TeamCount = len(teams)
	run.CompletedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("failed to finalize match run %d: %w", run.ID, err)
	}

	if s.flushAfterRun {
		if err := s.participantRepo.DeleteAll(ctx); err != nil {
			log.Printf("failed to flush participants after run %d: %v", run.ID, err)
		}
	}

	s.broadcast(run.ID, live.Message{
		Type: "run_completed",
		Payload: matching.ProgressEvent{
			Stage:   matching.StageComplete,
			Message: fmt.Sprintf("run %d completed with %d teams", run.ID, len(teams)),
			Teams:   len(teams),
		},
	})
	return nil
}

func (s *matchingService) formTeams(ctx context.Context, run *models.MatchRun, participants []*models.Participant) ([]*models.Team, error) {
	reporter := s.reporter(run.ID)

	var scorers []matching.PairScorer
	switch run.Mode {
	case models.ModeTriplet:
		scorers = []matching.PairScorer{
			matching.NewCategoricalScorer(run.InterestWeight),
			matching.NewTextScorer(participants),
		}
	case models.ModeFlexible:
		scorers = []matching.PairScorer{
			matching.NewWeightedScorer(matching.DefaultFactorWeights()),
		}
	}

	builder := matching.NewMatrixBuilder(scorers...)
	builder.Reporter = reporter
	if s.workers > 0 {
		builder.Workers = s.workers
	}

	matrix, err := builder.Build(ctx, participants)
	if err != nil {
		return nil, fmt.Errorf("failed to build score matrix: %w", err)
	}

	var formed []*matching.Team
	switch run.Mode {
	case models.ModeTriplet:
		former := matching.NewTripletFormer()
		former.Reporter = reporter
		formed = former.Form(participants, matrix)
	case models.ModeFlexible:
		former := matching.NewFlexibleFormer(run.TeamSize)
		former.Reporter = reporter
		formed = former.Form(participants, matrix)
	}

	teams := make([]*models.Team, 0, len(formed))
	for _, t := range formed {
		teams = append(teams, &models.Team{
			CompatibilityScore: t.CompatibilityScore,
			SkillsCoverage:     t.SkillsCoverage,
			TimezoneSpan:       t.TimezoneSpan,
			Members:            t.Members,
		})
	}
	return teams, nil
}

// exportTeams writes the run result to object storage. Failures are logged,
// the run still completes with the teams persisted in the database.
func (s *matchingService) exportTeams(ctx context.Context, run *models.MatchRun, teams []*models.Team) {
	if s.uploader == nil {
		return
	}

	document := struct {
		Run   *models.MatchRun `json:"run"`
		Teams []*models.Team   `json:"teams"`
	}{Run: run, Teams: teams}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		log.Printf("failed to encode export for run %d: %v", run.ID, err)
		return
	}

	key := fmt.Sprintf("runs/%d/teams.json", run.ID)
	uploaded, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("failed to export run %d to object storage: %v", run.ID, err)
		return
	}

	url := s.uploader.GetPublicURL(uploaded.Key)
	run.ExportKey = &uploaded.Key
	run.ExportURL = &url
}

func (s *matchingService) failRun(ctx context.Context, run *models.MatchRun, cause error) {
	message := cause.Error()
	now := time.Now()
	run.Status = models.RunStatusFailed
	run.Error = &message
	run.CompletedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		log.Printf("failed to mark run %d as failed: %v", run.ID, err)
	}
	s.broadcast(run.ID, live.Message{
		Type:    "run_failed",
		Payload: matching.ProgressEvent{Stage: matching.StageComplete, Message: message},
	})
}

// RunRoom names the WebSocket room that receives progress for one run.
func RunRoom(runID int) string {
	return fmt.Sprintf("run_%d", runID)
}

func (s *matchingService) reporter(runID int) matching.ProgressReporter {
	if s.hub == nil {
		return matching.NopReporter{}
	}
	room := RunRoom(runID)
	return matching.ReporterFunc(func(event matching.ProgressEvent) {
		s.hub.BroadcastToRoom(room, live.Message{
			Type:    "progress",
			Payload: event,
			RoomID:  room,
		})
	})
}

func (s *matchingService) broadcast(runID int, message live.Message) {
	if s.hub == nil {
		return
	}
	room := RunRoom(runID)
	message.RoomID = room
	s.hub.BroadcastToRoom(room, message)
}
