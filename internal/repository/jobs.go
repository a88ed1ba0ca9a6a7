package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type JobFilter struct {
	Company *primitive.ObjectID
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error)
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type jobRepository struct {
	coll *mongo.Collection
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	job.CreatedAt, job.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, job)
	return wrapErr(err, "failed to create job")
}

func (r *jobRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, err := findByID[models.Job](ctx, r.coll, id)
	return job, wrapErr(err, "job "+id.Hex())
}

func (r *jobRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	jobs, err := findAll[models.Job](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}})
	return jobs, wrapErr(err, "failed to find jobs")
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	q := bson.M{}
	if filter.Company != nil {
		q["company"] = *filter.Company
	}
	jobs, err := findAll[models.Job](ctx, r.coll, q, newestFirst())
	return jobs, wrapErr(err, "failed to list jobs")
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err, "failed to count jobs")
}

func (r *jobRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Job, error) {
	job, err := updateByID[models.Job](ctx, r.coll, id, setWithTimestamp(fields))
	return job, wrapErr(err, "job "+id.Hex())
}

func (r *jobRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err, "failed to delete job")
	}
	if result.DeletedCount == 0 {
		return wrapErr(mongo.ErrNoDocuments, "job "+id.Hex())
	}
	return nil
}
