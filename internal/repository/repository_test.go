package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/arzan03/TalentBridge/internal/models"
)

func TestIsTxUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"illegal operation code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"illegal operation name", mongo.CommandError{Name: "IllegalOperation"}, true},
		{"other command error", mongo.CommandError{Code: 112, Name: "WriteConflict"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTxUnsupported(tt.err); got != tt.want {
				t.Errorf("isTxUnsupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNilClientTransactor(t *testing.T) {
	tx := &mongoTransactor{}
	err := tx.WithTransaction(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run without a client")
		return nil
	})
	if !errors.Is(err, ErrTxUnsupported) {
		t.Errorf("expected ErrTxUnsupported, got %v", err)
	}
}

func TestMongoErrorMapping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("standalone rejects transactions", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    20,
			Name:    "IllegalOperation",
			Message: "Transaction numbers are only allowed on a replica set member or mongos",
		}))

		_, err := mt.Coll.InsertOne(ctx, bson.M{"x": 1})
		if !isTxUnsupported(err) {
			mt.Errorf("server reply %v should be recognised as unsupported transactions", err)
		}
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: talentbridge.companies index: email_1",
		}))

		repo := &companyRepository{coll: mt.Coll}
		err := repo.Create(ctx, &models.Company{UID: "acme", Name: "Acme", Email: "hr@acme.example"})
		if !errors.Is(err, ErrDuplicate) {
			mt.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	mt.Run("update without a document", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		repo := &userRepository{coll: mt.Coll}
		_, err := repo.Update(ctx, primitive.NewObjectID(), bson.M{"headline": "CFO"})
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("find without a document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "talentbridge.jobs", mtest.FirstBatch))

		repo := &jobRepository{coll: mt.Coll}
		if _, err := repo.FindByID(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("other errors pass through", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		repo := &companyRepository{coll: mt.Coll}
		err := repo.Create(ctx, &models.Company{UID: "acme"})
		if err == nil || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound) {
			mt.Errorf("expected an unmapped error, got %v", err)
		}
	})
}

func TestRemoveCompanyPipeline(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("recomputes executive flag", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		companyID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: userID},
			{Key: "uid", Value: "exec"},
			{Key: "companies", Value: bson.A{}},
			{Key: "is_executive", Value: false},
		}}))

		repo := &userRepository{coll: mt.Coll}
		user, err := repo.RemoveCompany(context.Background(), userID, companyID)
		if err != nil {
			mt.Fatalf("RemoveCompany failed: %v", err)
		}
		if user.ID != userID || user.IsExecutive {
			mt.Errorf("unexpected user %+v", user)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("expected a findAndModify command, got %+v", evt)
		}
		stages, ok := evt.Command.Lookup("update").ArrayOK()
		if !ok {
			mt.Fatalf("update should be an aggregation pipeline: %v", evt.Command)
		}
		values, err := stages.Values()
		if err != nil || len(values) != 2 {
			mt.Fatalf("expected two pipeline stages, got %v (%v)", values, err)
		}
		second := values[1].Document().Lookup("$set").Document()
		flag := second.Lookup("is_executive").Document().Lookup("$gt").Array()
		if size := flag.Index(0).Value().Document().Lookup("$size").StringValue(); size != "$companies" {
			mt.Errorf("is_executive should be derived from the remaining companies, got %q", size)
		}
	})
}
