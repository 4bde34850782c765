package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/domain"
)

type mockApplicationRepo struct {
	apps     map[int64]*domain.Application
	nextID   int64
	failWith error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[int64]*domain.Application), nextID: 1}
}

func (m *mockApplicationRepo) Insert(_ context.Context, app domain.Application) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	app.ID = m.nextID
	m.apps[app.ID] = &app
	m.nextID++
	return app.ID, nil
}

func (m *mockApplicationRepo) FindByUserAndJob(_ context.Context, userID, jobID int64) (domain.Application, error) {
	if m.failWith != nil {
		return domain.Application{}, m.failWith
	}
	for _, a := range m.apps {
		if a.UserID == userID && a.JobID == jobID {
			return *a, nil
		}
	}
	return domain.Application{}, pgx.ErrNoRows
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID int64, limit, offset int) ([]domain.Application, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.Application
	for id := int64(1); id < m.nextID; id++ {
		if a, ok := m.apps[id]; ok && a.JobID == jobID {
			out = append(out, *a)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Application, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.Application
	for id := int64(1); id < m.nextID; id++ {
		if a, ok := m.apps[id]; ok && a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, applicationID int64, status int) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	a, ok := m.apps[applicationID]
	if !ok {
		return 0, nil
	}
	a.Status = status
	return 1, nil
}

func newTestApplicationService(t *testing.T) (*ApplicationService, *mockApplicationRepo, *mockJobRepo, int64) {
	t.Helper()
	appRepo := newMockApplicationRepo()
	jobRepo := newMockJobRepo()
	svc := NewApplicationService(zap.NewNop(), appRepo, jobRepo)

	jobSvc := NewJobService(zap.NewNop(), jobRepo)
	jobID, err := jobSvc.AddJob(context.Background(), 1, openJobInput())
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return svc, appRepo, jobRepo, jobID
}

func TestApplicationService_Apply(t *testing.T) {
	svc, appRepo, _, jobID := newTestApplicationService(t)

	id, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: jobID, CoverLetter: "hola"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	app := appRepo.apps[id]
	if app == nil {
		t.Fatalf("application not persisted")
	}
	if app.Status != domain.ApplicationApplied {
		t.Fatalf("expected applied status, got %d", app.Status)
	}
	if app.UserID != 7 || app.JobID != jobID {
		t.Fatalf("unexpected ownership: user %d job %d", app.UserID, app.JobID)
	}
}

func TestApplicationService_Apply_Duplicate(t *testing.T) {
	svc, _, _, jobID := newTestApplicationService(t)

	if _, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: jobID}); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: jobID})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationService_Apply_JobMissingOrClosed(t *testing.T) {
	svc, _, jobRepo, jobID := newTestApplicationService(t)

	if _, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: 999}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	jobRepo.jobs[jobID].Status = domain.JobClosed
	if _, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: jobID}); !errors.Is(err, ErrJobNotOpenForApplicant) {
		t.Fatalf("expected ErrJobNotOpenForApplicant, got %v", err)
	}
}

func TestApplicationService_Listing(t *testing.T) {
	svc, _, _, jobID := newTestApplicationService(t)

	for user := int64(1); user <= 3; user++ {
		if _, err := svc.Apply(context.Background(), user, ApplicationInput{JobID: jobID}); err != nil {
			t.Fatalf("apply user %d: %v", user, err)
		}
	}

	apps, err := svc.ListJobApplications(context.Background(), jobID, 1, 10)
	if err != nil {
		t.Fatalf("list job applications: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3 applications, got %d", len(apps))
	}

	mine, err := svc.ListUserApplications(context.Background(), 2)
	if err != nil {
		t.Fatalf("list user applications: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 application for user 2, got %d", len(mine))
	}
}

func TestApplicationService_UpdateApplication(t *testing.T) {
	svc, appRepo, _, jobID := newTestApplicationService(t)

	id, err := svc.Apply(context.Background(), 7, ApplicationInput{JobID: jobID})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := svc.UpdateApplication(context.Background(), id, domain.ApplicationAccepted); err != nil {
		t.Fatalf("update application: %v", err)
	}
	if appRepo.apps[id].Status != domain.ApplicationAccepted {
		t.Fatalf("expected accepted status, got %d", appRepo.apps[id].Status)
	}

	if err := svc.UpdateApplication(context.Background(), id, 9); !errors.Is(err, ErrInvalidApplication) {
		t.Fatalf("expected ErrInvalidApplication, got %v", err)
	}
	if err := svc.UpdateApplication(context.Background(), 999, domain.ApplicationAccepted); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
