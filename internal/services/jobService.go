package services

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type JobService struct {
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	applications repository.ApplicationRepository
	tx           repository.Transactor
}

// NewJobService wires the job, company and application repositories.
func NewJobService(repos *repository.Repositories) *JobService {
	return &JobService{
		jobs:         repos.Jobs,
		companies:    repos.Companies,
		applications: repos.Applications,
		tx:           repos.Tx,
	}
}

// Create publishes a job for an existing company. Status defaults to active.
func (s *JobService) Create(ctx context.Context, req validation.CreateJobRequest) (*models.Job, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	companyID := validation.ObjectID(req.Company)
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, missing("company", err)
	}

	job := &models.Job{
		Company:     companyID,
		Title:       req.Title,
		Description: req.Description,
		Mode:        models.WorkMode(req.Mode),
		Schedule:    req.Schedule,
		Location:    req.Location,
		Salary:      req.Salary,
		Status:      req.Status,
		Tags:        nonNil(req.Tags),
		Questions:   nonNil(req.Questions),
		PublishedAt: time.Now().UTC(),
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if req.PublishedAt != nil {
		job.PublishedAt = req.PublishedAt.UTC()
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// List returns every job, active or not.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{})
}

// ListByCompany returns every job the company posted.
func (s *JobService) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	cid, err := parseID(companyID, "company")
	if err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, repository.JobFilter{Company: &cid})
}

// Get returns a single job.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	oid, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}
	return s.jobs.FindByID(ctx, oid)
}

// Update applies a partial job update. A new company must exist.
func (s *JobService) Update(ctx context.Context, id string, req validation.UpdateJobRequest) (*models.Job, error) {
	oid, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if req.Company != nil {
		if _, err := s.companies.FindByID(ctx, validation.ObjectID(*req.Company)); err != nil {
			return nil, missing("company", err)
		}
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return s.jobs.FindByID(ctx, oid)
	}
	return s.jobs.Update(ctx, oid, updates)
}

// Delete removes the job and its applications.
func (s *JobService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "job")
	if err != nil {
		return err
	}

	return inTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.jobs.Delete(ctx, oid); err != nil {
			return err
		}
		n, err := s.applications.DeleteByJob(ctx, oid)
		if err != nil {
			return err
		}
		log.Debugw("Deleted job", "job", oid.Hex(), "applications", n)
		return nil
	})
}

// SetQuestions replaces the screening questions. raw must be a JSON array.
func (s *JobService) SetQuestions(ctx context.Context, id string, raw []byte) (*models.Job, error) {
	oid, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidQuestions
	}
	list := validation.QuestionList{}
	if err := json.Unmarshal(trimmed, &list.Questions); err != nil {
		return nil, ErrInvalidQuestions
	}
	if err := validation.Struct(&list); err != nil {
		return nil, err
	}

	return s.jobs.Update(ctx, oid, bson.M{"questions": nonNil(list.Questions)})
}

// Moderate sets the moderation flag on a job.
func (s *JobService) Moderate(ctx context.Context, id string, req validation.ModerationRequest) (*models.Job, error) {
	oid, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, oid, bson.M{"moderated": *req.Moderated})
}
