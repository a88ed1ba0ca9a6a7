package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type EvaluationRepository interface {
	Create(ctx context.Context, eval *models.Evaluation) error
	ListByEvaluated(ctx context.Context, userID primitive.ObjectID) ([]models.Evaluation, error)
	ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	coll *mongo.Collection
}

func (r *evaluationRepository) Create(ctx context.Context, eval *models.Evaluation) error {
	if eval.ID.IsZero() {
		eval.ID = primitive.NewObjectID()
	}
	eval.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, eval)
	return wrapErr(err, "failed to create evaluation")
}

func (r *evaluationRepository) ListByEvaluated(ctx context.Context, userID primitive.ObjectID) ([]models.Evaluation, error) {
	evals, err := findAll[models.Evaluation](ctx, r.coll, bson.M{"evaluated": userID}, newestFirst())
	return evals, wrapErr(err, "failed to list evaluations")
}

func (r *evaluationRepository) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Evaluation, error) {
	evals, err := findAll[models.Evaluation](ctx, r.coll, bson.M{"course": courseID})
	return evals, wrapErr(err, "failed to list evaluations")
}
