package repotest

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

type Users struct {
	s *store[models.User]

	// FailAddCompany, when set, is returned by AddCompany.
	FailAddCompany error
}

func NewUsers() *Users {
	return &Users{s: newStore(func(u *models.User) primitive.ObjectID { return u.ID })}
}

func (r *Users) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.first(func(u *models.User) bool { return u.UID == user.UID }); ok {
		return duplicate("failed to create user")
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	r.s.insert(user)
	return nil
}

func (r *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.s.findByID(id, "user")
}

func (r *Users) FindByUID(_ context.Context, uid string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.first(func(u *models.User) bool { return u.UID == uid })
	if !ok {
		return nil, notFound("user", primitive.NilObjectID)
	}
	cp := *u
	return &cp, nil
}

func (r *Users) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	set := idSet(ids)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(u *models.User) bool { return set[u.ID] }), nil
}

func (r *Users) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(userMatch(filter)), nil
}

func (r *Users) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.count(userMatch(filter)), nil
}

func (r *Users) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return r.s.updateFields(id, fields, "user")
}

func (r *Users) AddCompany(_ context.Context, id, companyID primitive.ObjectID) (*models.User, error) {
	if r.FailAddCompany != nil {
		return nil, r.FailAddCompany
	}
	return r.mutate(id, func(u *models.User) {
		if !contains(u.Companies, companyID) {
			u.Companies = append(append([]primitive.ObjectID{}, u.Companies...), companyID)
		}
		u.IsExecutive = true
	})
}

func (r *Users) RemoveCompany(_ context.Context, id, companyID primitive.ObjectID) (*models.User, error) {
	return r.mutate(id, func(u *models.User) {
		u.Companies = without(u.Companies, companyID)
		u.IsExecutive = len(u.Companies) > 0
	})
}

func (r *Users) mutate(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.get(id)
	if !ok {
		return nil, notFound("user", id)
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func userMatch(filter repository.UserFilter) func(*models.User) bool {
	return func(u *models.User) bool {
		if filter.Role != "" && u.Role != filter.Role {
			return false
		}
		return !filter.ActiveOnly || u.Active
	}
}
