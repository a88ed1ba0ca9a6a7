package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arzan03/TalentBridge/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	ListByRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error)
	// ListConversation returns messages exchanged between a and b, oldest first.
	ListConversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
}

type messageRepository struct {
	coll *mongo.Collection
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, msg)
	return wrapErr(err, "failed to create message")
}

func (r *messageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	msg, err := findByID[models.Message](ctx, r.coll, id)
	return msg, wrapErr(err, "message "+id.Hex())
}

func (r *messageRepository) ListByRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	msgs, err := findAll[models.Message](ctx, r.coll, bson.M{"recipient": userID}, newestFirst())
	return msgs, wrapErr(err, "failed to list messages")
}

func (r *messageRepository) ListConversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": a, "recipient": b},
		bson.M{"sender": b, "recipient": a},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	msgs, err := findAll[models.Message](ctx, r.coll, filter, opts)
	return msgs, wrapErr(err, "failed to list conversation")
}

func (r *messageRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	msg, err := updateByID[models.Message](ctx, r.coll, id, bson.M{"$set": bson.M{"read": true}})
	return msg, wrapErr(err, "message "+id.Hex())
}
