package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arzan03/TalentBridge/internal/db"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate key")
	ErrTxUnsupported = errors.New("transactions not supported by deployment")
)

// Repositories groups every collection repository plus the transaction runner.
type Repositories struct {
	Users        UserRepository
	Companies    CompanyRepository
	Jobs         JobRepository
	Applications ApplicationRepository
	Evaluations  EvaluationRepository
	Courses      CourseRepository
	Messages     MessageRepository
	Tx           Transactor
}

// NewMongoRepositories builds repositories over m. When the store is not
// configured the collections are nil; callers are expected to gate requests
// on m.Available().
func NewMongoRepositories(m *db.Mongo) *Repositories {
	return &Repositories{
		Users:        &userRepository{coll: collection(m, "users")},
		Companies:    &companyRepository{coll: collection(m, "companies")},
		Jobs:         &jobRepository{coll: collection(m, "jobs")},
		Applications: &applicationRepository{coll: collection(m, "applications")},
		Evaluations:  &evaluationRepository{coll: collection(m, "evaluations")},
		Courses:      &courseRepository{coll: collection(m, "courses")},
		Messages:     &messageRepository{coll: collection(m, "messages")},
		Tx:           &mongoTransactor{client: m.Client},
	}
}

func collection(m *db.Mongo, name string) *mongo.Collection {
	if m == nil || m.Database == nil {
		return nil
	}
	return m.Database.Collection(name)
}

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or aborts together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	client *mongo.Client
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.client == nil {
		return ErrTxUnsupported
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if isTxUnsupported(err) {
		return ErrTxUnsupported
	}
	return err
}

// Standalone servers reject transactions with IllegalOperation (20).
func isTxUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 || cmdErr.Name == "IllegalOperation"
	}
	return false
}

func wrapErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// updateByID applies fields with $set and returns the document after the update.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update interface{}) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setWithTimestamp(fields bson.M) bson.M {
	set := make(bson.M, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()
	return bson.M{"$set": set}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
