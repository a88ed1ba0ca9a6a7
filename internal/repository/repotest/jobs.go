package repotest

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

type Jobs struct {
	s *store[models.Job]
}

func NewJobs() *Jobs {
	return &Jobs{s: newStore(func(j *models.Job) primitive.ObjectID { return j.ID })}
}

func (r *Jobs) Create(_ context.Context, job *models.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	r.s.insert(job)
	return nil
}

func (r *Jobs) FindByID(_ context.Context, id primitive.ObjectID) (*models.Job, error) {
	return r.s.findByID(id, "job")
}

func (r *Jobs) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	set := idSet(ids)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(j *models.Job) bool { return set[j.ID] }), nil
}

func (r *Jobs) List(_ context.Context, filter repository.JobFilter) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(j *models.Job) bool {
		return filter.Company == nil || j.Company == *filter.Company
	}), nil
}

func (r *Jobs) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.count(nil), nil
}

func (r *Jobs) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Job, error) {
	return r.s.updateFields(id, fields, "job")
}

func (r *Jobs) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.remove(func(j *models.Job) bool { return j.ID == id }) == 0 {
		return notFound("job", id)
	}
	return nil
}
