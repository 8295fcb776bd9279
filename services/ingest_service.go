package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmavani25/teammatch-system/ingest"
	"github.com/dmavani25/teammatch-system/models"
	"github.com/dmavani25/teammatch-system/repositories"
	"github.com/dmavani25/teammatch-system/storage"
)

// UploadSummary reports the outcome of a survey import.
type UploadSummary struct {
	Imported   int    `json:"imported"`
	Skipped    int    `json:"skipped"`
	ArchiveKey string `json:"archive_key,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

type IngestService interface {
	// ImportSurvey parses a survey CSV export, stores the resulting
	// participants and archives the raw file in object storage.
	ImportSurvey(ctx context.Context, filename string, file io.Reader) (*UploadSummary, error)
	ListParticipants(ctx context.Context) ([]*models.Participant, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
	ClearParticipants(ctx context.Context) error
}

type ingestService struct {
	participantRepo repositories.ParticipantRepository
	uploader        storage.FileUploader
}

func NewIngestService(participantRepo repositories.ParticipantRepository, uploader storage.FileUploader) IngestService {
	return &ingestService{
		participantRepo: participantRepo,
		uploader:        uploader,
	}
}

func (s *ingestService) ImportSurvey(ctx context.Context, filename string, file io.Reader) (*UploadSummary, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	result, err := ingest.ParseSurvey(bytes.NewReader(data))
	if err != nil {
		var missing *ingest.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", ErrValidationFailed, missing.Error())
		}
		return nil, fmt.Errorf("failed to parse survey: %w", err)
	}
	if len(result.Participants) == 0 {
		return nil, ErrEmptySurvey
	}

	if err := s.participantRepo.CreateBatch(ctx, result.Participants); err != nil {
		return nil, fmt.Errorf("failed to store participants: %w", err)
	}

	summary := &UploadSummary{
		Imported: len(result.Participants),
		Skipped:  result.Skipped,
	}

	// Archiving the raw export is best effort; the import itself is already
	// committed at this point.
	if s.uploader != nil {
		key := fmt.Sprintf("uploads/%s_%s", time.Now().UTC().Format("20060102T150405Z"), sanitizeFilename(filename))
		uploaded, err := s.uploader.Upload(ctx, key, "text/csv", bytes.NewReader(data))
		if err != nil {
			log.Printf("failed to archive survey upload %s: %v", key, err)
		} else {
			summary.ArchiveKey = uploaded.Key
			summary.ArchiveURL = s.uploader.GetPublicURL(uploaded.Key)
		}
	}

	return summary, nil
}

func (s *ingestService) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (s *ingestService) GetParticipant(ctx context.Context, id int) (*models.Participant, error) {
	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant %d: %w", id, err)
	}
	return p, nil
}

func (s *ingestService) ClearParticipants(ctx context.Context) error {
	if err := s.participantRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "survey.csv"
	}
	return base
}
