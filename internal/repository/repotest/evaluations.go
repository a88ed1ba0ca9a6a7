package repotest

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

type Evaluations struct {
	s *store[models.Evaluation]
}

func NewEvaluations() *Evaluations {
	return &Evaluations{s: newStore(func(e *models.Evaluation) primitive.ObjectID { return e.ID })}
}

func (r *Evaluations) Create(_ context.Context, eval *models.Evaluation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&eval.ID, &eval.CreatedAt, nil)
	r.s.insert(eval)
	return nil
}

func (r *Evaluations) ListByEvaluated(_ context.Context, userID primitive.ObjectID) ([]models.Evaluation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(e *models.Evaluation) bool { return e.Evaluated == userID }), nil
}

func (r *Evaluations) ListByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.Evaluation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(e *models.Evaluation) bool { return e.Course == courseID }), nil
}
