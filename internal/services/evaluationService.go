package services

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type EvaluationService struct {
	evaluations repository.EvaluationRepository
	courses     repository.CourseRepository
	users       repository.UserRepository
}

// NewEvaluationService wires the evaluation, user and course repositories.
func NewEvaluationService(repos *repository.Repositories) *EvaluationService {
	return &EvaluationService{
		evaluations: repos.Evaluations,
		courses:     repos.Courses,
		users:       repos.Users,
	}
}

// Create stores the evaluation and refreshes the course's average rating.
func (s *EvaluationService) Create(ctx context.Context, req validation.CreateEvaluationRequest) (*models.Evaluation, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	eval := &models.Evaluation{
		Evaluator: validation.ObjectID(req.Evaluator),
		Evaluated: validation.ObjectID(req.Evaluated),
		Course:    validation.ObjectID(req.Course),
		Type:      req.Type,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if _, err := s.users.FindByID(ctx, eval.Evaluator); err != nil {
		return nil, missing("evaluator", err)
	}
	if _, err := s.users.FindByID(ctx, eval.Evaluated); err != nil {
		return nil, missing("evaluated user", err)
	}
	if _, err := s.courses.FindByID(ctx, eval.Course); err != nil {
		return nil, missing("course", err)
	}

	if err := s.evaluations.Create(ctx, eval); err != nil {
		return nil, err
	}

	all, err := s.evaluations.ListByCourse(ctx, eval.Course)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.Update(ctx, eval.Course, bson.M{"average_rating": averageRating(all)}); err != nil {
		return nil, err
	}
	return eval, nil
}

// ListByEvaluated returns the user's evaluations with their mean rating.
func (s *EvaluationService) ListByEvaluated(ctx context.Context, userID string) (*models.EvaluationSummary, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	evals, err := s.evaluations.ListByEvaluated(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &models.EvaluationSummary{
		Evaluations: evals,
		Average:     averageRating(evals),
		Count:       len(evals),
	}, nil
}

// averageRating is the mean rating rounded half away from zero to two decimals.
func averageRating(evals []models.Evaluation) float64 {
	if len(evals) == 0 {
		return 0
	}
	var sum int
	for _, e := range evals {
		sum += e.Rating
	}
	return math.Round(float64(sum)/float64(len(evals))*100) / 100
}
