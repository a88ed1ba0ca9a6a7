package repotest

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

type Messages struct {
	s *store[models.Message]
}

func NewMessages() *Messages {
	return &Messages{s: newStore(func(m *models.Message) primitive.ObjectID { return m.ID })}
}

func (r *Messages) Create(_ context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&msg.ID, &msg.CreatedAt, nil)
	r.s.insert(msg)
	return nil
}

func (r *Messages) FindByID(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	return r.s.findByID(id, "message")
}

func (r *Messages) ListByRecipient(_ context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.all(func(m *models.Message) bool { return m.Recipient == userID }), nil
}

func (r *Messages) ListConversation(_ context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	newest := r.s.all(func(m *models.Message) bool {
		return (m.Sender == a && m.Recipient == b) || (m.Sender == b && m.Recipient == a)
	})
	out := make([]models.Message, 0, len(newest))
	for i := len(newest) - 1; i >= 0; i-- {
		out = append(out, newest[i])
	}
	return out, nil
}

func (r *Messages) MarkRead(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	return r.s.updateFields(id, bson.M{"read": true}, "message")
}
