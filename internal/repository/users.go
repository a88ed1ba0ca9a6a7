package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type UserFilter struct {
	Role       models.Role
	ActiveOnly bool
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	// AddCompany records companyID on the user and sets is_executive.
	AddCompany(ctx context.Context, id, companyID primitive.ObjectID) (*models.User, error)
	// RemoveCompany drops companyID and recomputes is_executive from what remains.
	RemoveCompany(ctx context.Context, id, companyID primitive.ObjectID) (*models.User, error)
}

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, user)
	return wrapErr(err, "failed to create user")
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := findByID[models.User](ctx, r.coll, id)
	return user, wrapErr(err, "user "+id.Hex())
}

func (r *userRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user); err != nil {
		return nil, wrapErr(err, "user uid "+uid)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	users, err := findAll[models.User](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}})
	return users, wrapErr(err, "failed to find users")
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.coll, userQuery(filter), newestFirst())
	return users, wrapErr(err, "failed to list users")
}

func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, userQuery(filter))
	return n, wrapErr(err, "failed to count users")
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	user, err := updateByID[models.User](ctx, r.coll, id, setWithTimestamp(fields))
	return user, wrapErr(err, "user "+id.Hex())
}

func (r *userRepository) AddCompany(ctx context.Context, id, companyID primitive.ObjectID) (*models.User, error) {
	update := bson.M{
		"$addToSet": bson.M{"companies": companyID},
		"$set":      bson.M{"is_executive": true, "updated_at": time.Now().UTC()},
	}
	user, err := updateByID[models.User](ctx, r.coll, id, update)
	return user, wrapErr(err, "user "+id.Hex())
}

func (r *userRepository) RemoveCompany(ctx context.Context, id, companyID primitive.ObjectID) (*models.User, error) {
	remaining := bson.M{"$setDifference": bson.A{
		bson.M{"$ifNull": bson.A{"$companies", bson.A{}}},
		bson.A{companyID},
	}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"companies": remaining}}},
		{{Key: "$set", Value: bson.M{
			"is_executive": bson.M{"$gt": bson.A{bson.M{"$size": "$companies"}, 0}},
			"updated_at":   "$$NOW",
		}}},
	}
	user, err := updateByID[models.User](ctx, r.coll, id, update)
	return user, wrapErr(err, "user "+id.Hex())
}

func userQuery(filter UserFilter) bson.M {
	q := bson.M{}
	if filter.Role != "" {
		q["role"] = filter.Role
	}
	if filter.ActiveOnly {
		q["active"] = true
	}
	return q
}
