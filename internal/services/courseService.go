package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type CourseService struct {
	courses repository.CourseRepository
	users   repository.UserRepository
}

// NewCourseService wires the course and user repositories.
func NewCourseService(repos *repository.Repositories) *CourseService {
	return &CourseService{courses: repos.Courses, users: repos.Users}
}

// Create publishes a course. Only professionals can teach.
func (s *CourseService) Create(ctx context.Context, req validation.CreateCourseRequest) (*models.Course, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	professionalID := validation.ObjectID(req.Professional)
	user, err := s.users.FindByID(ctx, professionalID)
	if err != nil {
		return nil, missing("professional", err)
	}
	if user.Role != models.RoleProfessional {
		return nil, ErrNotProfessional
	}

	course := &models.Course{
		Professional: professionalID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		PaymentType:  models.PaymentType(req.PaymentType),
		Schedule:     nonNil(req.Schedule),
		Duration:     req.Duration,
		Active:       true,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListActive returns every active course.
func (s *CourseService) ListActive(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx, repository.CourseFilter{ActiveOnly: true})
}

// ListByProfessional returns the active courses taught by userID.
func (s *CourseService) ListByProfessional(ctx context.Context, userID string) ([]models.Course, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.courses.List(ctx, repository.CourseFilter{Professional: &uid, ActiveOnly: true})
}

// Get returns a course whether or not it is active.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	oid, err := parseID(id, "course")
	if err != nil {
		return nil, err
	}
	return s.courses.FindByID(ctx, oid)
}

// Update applies a partial course update.
func (s *CourseService) Update(ctx context.Context, id string, req validation.UpdateCourseRequest) (*models.Course, error) {
	oid, err := parseID(id, "course")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return s.courses.FindByID(ctx, oid)
	}
	return s.courses.Update(ctx, oid, updates)
}

// Deactivate unlists the course.
func (s *CourseService) Deactivate(ctx context.Context, id string) (*models.Course, error) {
	oid, err := parseID(id, "course")
	if err != nil {
		return nil, err
	}
	return s.courses.Update(ctx, oid, bson.M{"active": false})
}

// SetVideo records the public path of the course video.
func (s *CourseService) SetVideo(ctx context.Context, id, path string) (*models.Course, error) {
	oid, err := parseID(id, "course")
	if err != nil {
		return nil, err
	}
	return s.courses.Update(ctx, oid, bson.M{"video_path": path})
}
