package repotest

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

type Companies struct {
	s *store[models.Company]
}

func NewCompanies() *Companies {
	return &Companies{s: newStore(func(c *models.Company) primitive.ObjectID { return c.ID })}
}

func (r *Companies) Create(_ context.Context, company *models.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	taken := func(c *models.Company) bool { return c.UID == company.UID || c.Email == company.Email }
	if _, ok := r.s.first(taken); ok {
		return duplicate("failed to create company")
	}
	stamp(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	r.s.insert(company)
	return nil
}

func (r *Companies) FindByID(_ context.Context, id primitive.ObjectID) (*models.Company, error) {
	return r.s.findByID(id, "company")
}

func (r *Companies) FindByUID(_ context.Context, uid string) (*models.Company, error) {
	return r.findOne(func(c *models.Company) bool { return c.UID == uid })
}

func (r *Companies) FindByEmail(_ context.Context, email string) (*models.Company, error) {
	return r.findOne(func(c *models.Company) bool { return c.Email == email })
}

func (r *Companies) findOne(match func(*models.Company) bool) (*models.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.first(match)
	if !ok {
		return nil, notFound("company", primitive.NilObjectID)
	}
	cp := *c
	return &cp, nil
}

func (r *Companies) List(_ context.Context, activeOnly bool) ([]models.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(c *models.Company) bool { return !activeOnly || c.Active }), nil
}

func (r *Companies) Count(_ context.Context, activeOnly bool) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.count(func(c *models.Company) bool { return !activeOnly || c.Active }), nil
}

func (r *Companies) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Company, error) {
	return r.s.updateFields(id, fields, "company")
}

func (r *Companies) AddExecutive(_ context.Context, id, userID primitive.ObjectID) (*models.Company, error) {
	return r.mutate(id, func(c *models.Company) {
		if !contains(c.Executives, userID) {
			c.Executives = append(append([]primitive.ObjectID{}, c.Executives...), userID)
		}
	})
}

func (r *Companies) RemoveExecutive(_ context.Context, id, userID primitive.ObjectID) (*models.Company, error) {
	return r.mutate(id, func(c *models.Company) {
		c.Executives = without(c.Executives, userID)
	})
}

func (r *Companies) mutate(id primitive.ObjectID, fn func(*models.Company)) (*models.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.get(id)
	if !ok {
		return nil, notFound("company", id)
	}
	fn(c)
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}
