package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	users        repository.UserRepository
}

// NewApplicationService wires the application, job and user repositories.
func NewApplicationService(repos *repository.Repositories) *ApplicationService {
	return &ApplicationService{
		applications: repos.Applications,
		jobs:         repos.Jobs,
		users:        repos.Users,
	}
}

// Create submits an application. A second submission for the same job and
// applicant fails with repository.ErrDuplicate.
func (s *ApplicationService) Create(ctx context.Context, req validation.CreateApplicationRequest) (*models.Application, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	jobID := validation.ObjectID(req.Job)
	applicantID := validation.ObjectID(req.Applicant)

	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, missing("job", err)
	}
	if _, err := s.users.FindByID(ctx, applicantID); err != nil {
		return nil, missing("applicant", err)
	}

	exists, err := s.applications.Exists(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("application for job %s: %w", req.Job, repository.ErrDuplicate)
	}

	app := &models.Application{
		Job:       jobID,
		Applicant: applicantID,
		Status:    models.ApplicationPending,
		Message:   req.Message,
		Documents: nonNil(req.Documents),
		Answers:   nonNil(req.Answers),
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Get returns a single application.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	oid, err := parseID(id, "application")
	if err != nil {
		return nil, err
	}
	return s.applications.FindByID(ctx, oid)
}

// ListByApplicant returns the user's applications, each joined with its job.
func (s *ApplicationService) ListByApplicant(ctx context.Context, userID string) ([]models.ApplicationWithJob, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByApplicant(ctx, uid)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]primitive.ObjectID, len(apps))
	for i := range apps {
		jobIDs[i] = apps[i].Job
	}
	jobs, err := s.jobs.FindByIDs(ctx, uniqueIDs(jobIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Job, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
	}

	out := make([]models.ApplicationWithJob, 0, len(apps))
	for _, app := range apps {
		out = append(out, models.ApplicationWithJob{Application: app, Job: byID[app.Job]})
	}
	return out, nil
}

// ListByJob returns the job's applications joined with applicant summaries.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID string) ([]models.ApplicationWithApplicant, error) {
	jid, err := parseID(jobID, "job")
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJob(ctx, jid)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(apps))
	for i := range apps {
		ids[i] = apps[i].Applicant
	}
	users, err := s.users.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := summaries(users)

	out := make([]models.ApplicationWithApplicant, 0, len(apps))
	for _, app := range apps {
		entry := models.ApplicationWithApplicant{Application: app}
		if sum, ok := byID[app.Applicant]; ok {
			entry.Applicant = &sum
		}
		out = append(out, entry)
	}
	return out, nil
}

// UpdateStatus moves an application to one of the allowed statuses.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req validation.UpdateApplicationStatusRequest) (*models.Application, error) {
	oid, err := parseID(id, "application")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	return s.applications.UpdateStatus(ctx, oid, models.ApplicationStatus(req.Status))
}
