package repotest

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

type Courses struct {
	s *store[models.Course]
}

func NewCourses() *Courses {
	return &Courses{s: newStore(func(c *models.Course) primitive.ObjectID { return c.ID })}
}

func (r *Courses) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	r.s.insert(course)
	return nil
}

func (r *Courses) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	return r.s.findByID(id, "course")
}

func (r *Courses) List(_ context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(c *models.Course) bool {
		if filter.Professional != nil && c.Professional != *filter.Professional {
			return false
		}
		return !filter.ActiveOnly || c.Active
	}), nil
}

func (r *Courses) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.count(nil), nil
}

func (r *Courses) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	return r.s.updateFields(id, fields, "course")
}
