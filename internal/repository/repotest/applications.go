package repotest

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

type Applications struct {
	s *store[models.Application]
}

func NewApplications() *Applications {
	return &Applications{s: newStore(func(a *models.Application) primitive.ObjectID { return a.ID })}
}

func (r *Applications) Create(_ context.Context, app *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pair := func(a *models.Application) bool { return a.Job == app.Job && a.Applicant == app.Applicant }
	if _, ok := r.s.first(pair); ok {
		return duplicate("failed to create application")
	}
	stamp(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	r.s.insert(app)
	return nil
}

func (r *Applications) FindByID(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	return r.s.findByID(id, "application")
}

func (r *Applications) Exists(_ context.Context, jobID, applicantID primitive.ObjectID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.first(func(a *models.Application) bool { return a.Job == jobID && a.Applicant == applicantID })
	return ok, nil
}

func (r *Applications) ListByApplicant(_ context.Context, applicantID primitive.ObjectID) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(a *models.Application) bool { return a.Applicant == applicantID }), nil
}

func (r *Applications) ListByJob(_ context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(a *models.Application) bool { return a.Job == jobID }), nil
}

func (r *Applications) ListByJobs(_ context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error) {
	set := idSet(jobIDs)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(a *models.Application) bool { return set[a.Job] }), nil
}

func (r *Applications) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.count(nil), nil
}

func (r *Applications) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Application, error) {
	return r.s.updateFields(id, bson.M{"status": status}, "application")
}

func (r *Applications) DeleteByJob(_ context.Context, jobID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.remove(func(a *models.Application) bool { return a.Job == jobID }), nil
}
