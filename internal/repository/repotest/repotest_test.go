package repotest

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

var (
	_ repository.UserRepository        = (*Users)(nil)
	_ repository.CompanyRepository     = (*Companies)(nil)
	_ repository.JobRepository         = (*Jobs)(nil)
	_ repository.ApplicationRepository = (*Applications)(nil)
	_ repository.EvaluationRepository  = (*Evaluations)(nil)
	_ repository.CourseRepository      = (*Courses)(nil)
	_ repository.MessageRepository     = (*Messages)(nil)
	_ repository.Transactor            = Transactor{}
)

func TestUserUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	users := NewUsers()

	u := &models.User{UID: "abc", Name: "Ana", Email: "ana@example.com", Role: models.RoleProfessional, Skills: []string{"go"}, Active: true}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := users.Update(ctx, u.ID, bson.M{"headline": "CFO", "skills": []string{"finance"}})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Headline != "CFO" || updated.Name != "Ana" {
		t.Errorf("unexpected user after update: %+v", updated)
	}
	if len(updated.Skills) != 1 || updated.Skills[0] != "finance" {
		t.Errorf("expected skills replaced, got %v", updated.Skills)
	}

	if err := users.Create(ctx, &models.User{UID: "abc"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for reused uid, got %v", err)
	}
}

func TestUserCompanyMembership(t *testing.T) {
	ctx := context.Background()
	users := NewUsers()
	u := &models.User{UID: "x"}
	_ = users.Create(ctx, u)

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	_, _ = users.AddCompany(ctx, u.ID, a)
	got, _ := users.AddCompany(ctx, u.ID, b)
	if !got.IsExecutive || len(got.Companies) != 2 {
		t.Fatalf("expected two companies, got %+v", got)
	}

	got, _ = users.RemoveCompany(ctx, u.ID, a)
	if !got.IsExecutive {
		t.Error("user still belongs to a company and should remain executive")
	}
	got, _ = users.RemoveCompany(ctx, u.ID, b)
	if got.IsExecutive || len(got.Companies) != 0 {
		t.Errorf("expected executive flag cleared, got %+v", got)
	}
}

func TestConversationOldestFirst(t *testing.T) {
	ctx := context.Background()
	msgs := NewMessages()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	for _, m := range []*models.Message{
		{Sender: a, Recipient: b, Content: "1"},
		{Sender: c, Recipient: a, Content: "other"},
		{Sender: b, Recipient: a, Content: "2"},
	} {
		_ = msgs.Create(ctx, m)
	}

	conv, _ := msgs.ListConversation(ctx, a, b)
	if len(conv) != 2 || conv[0].Content != "1" || conv[1].Content != "2" {
		t.Errorf("unexpected conversation %+v", conv)
	}
}

func TestJobDeleteMissing(t *testing.T) {
	if err := NewJobs().Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
