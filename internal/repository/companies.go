package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TalentBridge/internal/models"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	FindByUID(ctx context.Context, uid string) (*models.Company, error)
	FindByEmail(ctx context.Context, email string) (*models.Company, error)
	List(ctx context.Context, activeOnly bool) ([]models.Company, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Company, error)
	AddExecutive(ctx context.Context, id, userID primitive.ObjectID) (*models.Company, error)
	RemoveExecutive(ctx context.Context, id, userID primitive.ObjectID) (*models.Company, error)
}

type companyRepository struct {
	coll *mongo.Collection
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	company.CreatedAt, company.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, company)
	return wrapErr(err, "failed to create company")
}

func (r *companyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	company, err := findByID[models.Company](ctx, r.coll, id)
	return company, wrapErr(err, "company "+id.Hex())
}

func (r *companyRepository) FindByUID(ctx context.Context, uid string) (*models.Company, error) {
	return r.findOne(ctx, bson.M{"uid": uid}, "company uid "+uid)
}

func (r *companyRepository) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	return r.findOne(ctx, bson.M{"email": email}, "company email "+email)
}

func (r *companyRepository) findOne(ctx context.Context, filter bson.M, what string) (*models.Company, error) {
	var company models.Company
	if err := r.coll.FindOne(ctx, filter).Decode(&company); err != nil {
		return nil, wrapErr(err, what)
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, activeOnly bool) ([]models.Company, error) {
	companies, err := findAll[models.Company](ctx, r.coll, activeQuery(activeOnly), newestFirst())
	return companies, wrapErr(err, "failed to list companies")
}

func (r *companyRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, activeQuery(activeOnly))
	return n, wrapErr(err, "failed to count companies")
}

func (r *companyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Company, error) {
	company, err := updateByID[models.Company](ctx, r.coll, id, setWithTimestamp(fields))
	return company, wrapErr(err, "company "+id.Hex())
}

func (r *companyRepository) AddExecutive(ctx context.Context, id, userID primitive.ObjectID) (*models.Company, error) {
	update := bson.M{
		"$addToSet": bson.M{"executives": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	company, err := updateByID[models.Company](ctx, r.coll, id, update)
	return company, wrapErr(err, "company "+id.Hex())
}

func (r *companyRepository) RemoveExecutive(ctx context.Context, id, userID primitive.ObjectID) (*models.Company, error) {
	update := bson.M{
		"$pull": bson.M{"executives": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	company, err := updateByID[models.Company](ctx, r.coll, id, update)
	return company, wrapErr(err, "company "+id.Hex())
}

func activeQuery(activeOnly bool) bson.M {
	if activeOnly {
		return bson.M{"active": true}
	}
	return bson.M{}
}
