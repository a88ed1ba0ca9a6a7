package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type CompanyService struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	tx           repository.Transactor
}

// NewCompanyService wires the repositories the company workflows touch.
func NewCompanyService(repos *repository.Repositories) *CompanyService {
	return &CompanyService{
		companies:    repos.Companies,
		users:        repos.Users,
		jobs:         repos.Jobs,
		applications: repos.Applications,
		tx:           repos.Tx,
	}
}

// Create registers a company for principalUID. The uid and email must be unused.
func (s *CompanyService) Create(ctx context.Context, principalUID string, req validation.CreateCompanyRequest) (*models.Company, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if principalUID != req.UID {
		return nil, ErrIdentityMismatch
	}

	if _, err := s.companies.FindByUID(ctx, req.UID); err == nil {
		return nil, fmt.Errorf("company uid %s: %w", req.UID, repository.ErrDuplicate)
	} else if !isNotFound(err) {
		return nil, err
	}
	if _, err := s.companies.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("company email %s: %w", req.Email, repository.ErrDuplicate)
	} else if !isNotFound(err) {
		return nil, err
	}

	company := &models.Company{
		UID:         req.UID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Website:     req.Website,
		Industry:    req.Industry,
		Description: req.Description,
		Executives:  []primitive.ObjectID{},
		Active:      true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// ListActive returns active companies, newest first.
func (s *CompanyService) ListActive(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx, true)
}

// GetByUID returns an active company with its executives resolved.
func (s *CompanyService) GetByUID(ctx context.Context, uid string) (*models.CompanyProfile, error) {
	company, err := s.companies.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !company.Active {
		return nil, fmt.Errorf("company uid %s: %w", uid, repository.ErrNotFound)
	}

	execs, err := s.users.FindByIDs(ctx, company.Executives)
	if err != nil {
		return nil, err
	}
	return &models.CompanyProfile{Company: *company, Executives: orderedSummaries(company.Executives, execs)}, nil
}

// Detail assembles company, executives, jobs and each job's applications
// with three bulk reads instead of one query per job.
func (s *CompanyService) Detail(ctx context.Context, id string) (*models.CompanyDetail, error) {
	oid, err := parseID(id, "company")
	if err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	var (
		execs []models.User
		jobs  []models.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		execs, err = s.users.FindByIDs(gctx, company.Executives)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.List(gctx, repository.JobFilter{Company: &oid})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	jobIDs := make([]primitive.ObjectID, len(jobs))
	for i := range jobs {
		jobIDs[i] = jobs[i].ID
	}
	apps, err := s.applications.ListByJobs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	applicantIDs := make([]primitive.ObjectID, len(apps))
	for i := range apps {
		applicantIDs[i] = apps[i].Applicant
	}
	applicants, err := s.users.FindByIDs(ctx, uniqueIDs(applicantIDs))
	if err != nil {
		return nil, err
	}
	byID := summaries(applicants)

	appsByJob := make(map[primitive.ObjectID][]models.ApplicationWithApplicant, len(jobs))
	for _, app := range apps {
		entry := models.ApplicationWithApplicant{Application: app}
		if sum, ok := byID[app.Applicant]; ok {
			entry.Applicant = &sum
		}
		appsByJob[app.Job] = append(appsByJob[app.Job], entry)
	}

	detail := &models.CompanyDetail{
		Company:    *company,
		Executives: orderedSummaries(company.Executives, execs),
		Jobs:       make([]models.JobWithApplications, 0, len(jobs)),
	}
	for _, job := range jobs {
		detail.Jobs = append(detail.Jobs, models.JobWithApplications{
			Job:          job,
			Applications: nonNil(appsByJob[job.ID]),
		})
	}
	return detail, nil
}

// Update applies a partial company update and returns the stored document.
func (s *CompanyService) Update(ctx context.Context, id string, req validation.UpdateCompanyRequest) (*models.Company, error) {
	oid, err := parseID(id, "company")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return s.companies.FindByID(ctx, oid)
	}
	return s.companies.Update(ctx, oid, updates)
}

// Deactivate hides the company from listings. It stays retrievable by id.
func (s *CompanyService) Deactivate(ctx context.Context, id string) (*models.Company, error) {
	oid, err := parseID(id, "company")
	if err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, oid, bson.M{"active": false})
}

// SetPhoto records the public path of an uploaded logo.
func (s *CompanyService) SetPhoto(ctx context.Context, id, path string) (*models.Company, error) {
	oid, err := parseID(id, "company")
	if err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, oid, bson.M{"photo_path": path})
}

// AddExecutive adds a professional user to the company's executives.
func (s *CompanyService) AddExecutive(ctx context.Context, companyID string, req validation.AddExecutiveRequest) (*models.Company, *models.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, nil, err
	}
	cid, err := parseID(companyID, "company")
	if err != nil {
		return nil, nil, err
	}
	return s.addExecutive(ctx, cid, validation.ObjectID(req.UserID))
}

// UpdateExecutive adds or removes an executive depending on req.Action.
func (s *CompanyService) UpdateExecutive(ctx context.Context, companyID string, req validation.UpdateExecutiveRequest) (*models.Company, *models.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, nil, err
	}
	cid, err := parseID(companyID, "company")
	if err != nil {
		return nil, nil, err
	}

	uid := validation.ObjectID(req.UserID)
	switch req.Action {
	case validation.ActionAdd:
		return s.addExecutive(ctx, cid, uid)
	case validation.ActionRemove:
		return s.removeExecutive(ctx, cid, uid)
	default:
		return nil, nil, fmt.Errorf("%w, got %q", ErrInvalidAction, req.Action)
	}
}

func (s *CompanyService) addExecutive(ctx context.Context, companyID, userID primitive.ObjectID) (*models.Company, *models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, missing("user", err)
	}
	if user.Role != models.RoleProfessional {
		return nil, nil, ErrNotProfessional
	}
	current, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, nil, missing("company", err)
	}

	var (
		company *models.Company
		updated *models.User
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if company, err = s.companies.AddExecutive(ctx, companyID, userID); err != nil {
			return err
		}
		updated, err = s.users.AddCompany(ctx, userID, companyID)
		return err
	})
	if !errors.Is(err, repository.ErrTxUnsupported) {
		return company, updated, err
	}

	// No transactions: write the company first and revert it if the user
	// write fails.
	if company, err = s.companies.AddExecutive(ctx, companyID, userID); err != nil {
		return nil, nil, err
	}
	if updated, err = s.users.AddCompany(ctx, userID, companyID); err != nil {
		if !containsID(current.Executives, userID) {
			s.compensate("remove executive", func() error {
				_, err := s.companies.RemoveExecutive(context.WithoutCancel(ctx), companyID, userID)
				return err
			})
		}
		return nil, nil, err
	}
	return company, updated, nil
}

func (s *CompanyService) removeExecutive(ctx context.Context, companyID, userID primitive.ObjectID) (*models.Company, *models.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, nil, missing("user", err)
	}
	current, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, nil, missing("company", err)
	}

	var (
		company *models.Company
		updated *models.User
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if company, err = s.companies.RemoveExecutive(ctx, companyID, userID); err != nil {
			return err
		}
		updated, err = s.users.RemoveCompany(ctx, userID, companyID)
		return err
	})
	if !errors.Is(err, repository.ErrTxUnsupported) {
		return company, updated, err
	}

	if company, err = s.companies.RemoveExecutive(ctx, companyID, userID); err != nil {
		return nil, nil, err
	}
	if updated, err = s.users.RemoveCompany(ctx, userID, companyID); err != nil {
		if containsID(current.Executives, userID) {
			s.compensate("restore executive", func() error {
				_, err := s.companies.AddExecutive(context.WithoutCancel(ctx), companyID, userID)
				return err
			})
		}
		return nil, nil, err
	}
	return company, updated, nil
}

func (s *CompanyService) compensate(step string, fn func() error) {
	if err := fn(); err != nil {
		log.Errorw("Compensating write failed, company and user may diverge", "step", step, "error", err)
	}
}

// orderedSummaries keeps the order of ids, skipping ids with no user.
func orderedSummaries(ids []primitive.ObjectID, users []models.User) []models.UserSummary {
	byID := summaries(users)
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if sum, ok := byID[id]; ok {
			out = append(out, sum)
		}
	}
	return out
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
