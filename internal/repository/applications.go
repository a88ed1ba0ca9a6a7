package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the (job, applicant) pair already exists.
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	Exists(ctx context.Context, jobID, applicantID primitive.ObjectID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	ListByJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Application, error)
	DeleteByJob(ctx context.Context, jobID primitive.ObjectID) (int64, error)
}

type applicationRepository struct {
	coll *mongo.Collection
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID.IsZero() {
		app.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	app.CreatedAt, app.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, app)
	return wrapErr(err, "failed to create application")
}

func (r *applicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	app, err := findByID[models.Application](ctx, r.coll, id)
	return app, wrapErr(err, "application "+id.Hex())
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, applicantID primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"job": jobID, "applicant": applicantID})
	if err != nil {
		return false, wrapErr(err, "failed to check application")
	}
	return n > 0, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Application, error) {
	apps, err := findAll[models.Application](ctx, r.coll, bson.M{"applicant": applicantID}, newestFirst())
	return apps, wrapErr(err, "failed to list applications")
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	apps, err := findAll[models.Application](ctx, r.coll, bson.M{"job": jobID}, newestFirst())
	return apps, wrapErr(err, "failed to list applications")
}

func (r *applicationRepository) ListByJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return []models.Application{}, nil
	}
	apps, err := findAll[models.Application](ctx, r.coll, bson.M{"job": bson.M{"$in": jobIDs}}, newestFirst())
	return apps, wrapErr(err, "failed to list applications")
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err, "failed to count applications")
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Application, error) {
	app, err := updateByID[models.Application](ctx, r.coll, id, setWithTimestamp(bson.M{"status": status}))
	return app, wrapErr(err, "application "+id.Hex())
}

func (r *applicationRepository) DeleteByJob(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"job": jobID})
	if err != nil {
		return 0, wrapErr(err, "failed to delete applications")
	}
	return result.DeletedCount, nil
}
