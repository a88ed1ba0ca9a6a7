package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type CourseFilter struct {
	Professional *primitive.ObjectID
	ActiveOnly   bool
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error)
}

type courseRepository struct {
	coll *mongo.Collection
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	course.CreatedAt, course.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, course)
	return wrapErr(err, "failed to create course")
}

func (r *courseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, err := findByID[models.Course](ctx, r.coll, id)
	return course, wrapErr(err, "course "+id.Hex())
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	q := activeQuery(filter.ActiveOnly)
	if filter.Professional != nil {
		q["professional"] = *filter.Professional
	}
	courses, err := findAll[models.Course](ctx, r.coll, q, newestFirst())
	return courses, wrapErr(err, "failed to list courses")
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err, "failed to count courses")
}

func (r *courseRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	course, err := updateByID[models.Course](ctx, r.coll, id, setWithTimestamp(fields))
	return course, wrapErr(err, "course "+id.Hex())
}
