package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/dmavani25/teammatch-system/repositories"
	"github.com/dmavani25/teammatch-system/storage"
)

type fakeParticipantRepo struct {
	participants []*models.Participant
	created      []*models.Participant
	flushed      bool
	listErr      error
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	p.ID = len(f.created) + 1
	f.created = append(f.created, p)
	return nil
}

func (f *fakeParticipantRepo) CreateBatch(ctx context.Context, participants []*models.Participant) error {
	for _, p := range participants {
		if err := f.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	for _, p := range f.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (f *fakeParticipantRepo) List(ctx context.Context) ([]*models.Participant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.participants, nil
}

func (f *fakeParticipantRepo) Count(ctx context.Context) (int, error) {
	return len(f.participants), nil
}

func (f *fakeParticipantRepo) DeleteAll(ctx context.Context) error {
	f.flushed = true
	f.participants = nil
	return nil
}

type fakeRunRepo struct {
	runs   map[int]*models.MatchRun
	nextID int
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[int]*models.MatchRun)}
}

func (f *fakeRunRepo) Create(ctx context.Context, run *models.MatchRun) error {
	f.nextID++
	run.ID = f.nextID
	run.CreatedAt = time.Now()
	f.runs[run.ID] = run
	return nil
}

func (f *fakeRunRepo) Update(ctx context.Context, run *models.MatchRun) error {
	if _, ok := f.runs[run.ID]; !ok {
		return repositories.ErrRunNotFound
	}
	f.runs[run.ID] = run
	return nil
}

func (f *fakeRunRepo) GetByID(ctx context.Context, id int) (*models.MatchRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, repositories.ErrRunNotFound
	}
	return run, nil
}

func (f *fakeRunRepo) List(ctx context.Context) ([]*models.MatchRun, error) {
	runs := make([]*models.MatchRun, 0, len(f.runs))
	for id := f.nextID; id >= 1; id-- {
		if run, ok := f.runs[id]; ok {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

type fakeTeamRepo struct {
	byRun     map[int][]*models.Team
	createErr error
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{byRun: make(map[int][]*models.Team)}
}

func (f *fakeTeamRepo) CreateForRun(ctx context.Context, runID int, teams []*models.Team) error {
	if f.createErr != nil {
		return f.createErr
	}
	for position, team := range teams {
		team.RunID = runID
		team.Position = position
	}
	f.byRun[runID] = teams
	return nil
}

func (f *fakeTeamRepo) ListByRun(ctx context.Context, runID int) ([]*models.Team, error) {
	return f.byRun[runID], nil
}

func (f *fakeTeamRepo) DeleteByRun(ctx context.Context, runID int) error {
	delete(f.byRun, runID)
	return nil
}

type fakeUploader struct {
	keys      []string
	uploadErr error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	f.keys = append(f.keys, key)
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://files.test/" + key
}

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[strings.ToLower(user.Email)]; ok {
		return repositories.ErrUserEmailConflict
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}
