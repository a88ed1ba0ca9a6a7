package validation

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

func validJob() CreateJobRequest {
	return CreateJobRequest{
		Company:     "64b7f0c2e13a4b0012345678",
		Title:       "Fractional CFO",
		Description: "Two days a week",
		Mode:        "remote",
		Location:    "Bogotá",
	}
}

func fieldSet(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T (%v)", err, err)
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Tag
	}
	return out
}

func TestCreateJobRequiredFields(t *testing.T) {
	required := map[string]func(*CreateJobRequest){
		"company":     func(r *CreateJobRequest) { r.Company = "" },
		"title":       func(r *CreateJobRequest) { r.Title = "" },
		"description": func(r *CreateJobRequest) { r.Description = "" },
		"mode":        func(r *CreateJobRequest) { r.Mode = "" },
		"location":    func(r *CreateJobRequest) { r.Location = "" },
	}

	for field, mutate := range required {
		t.Run(field, func(t *testing.T) {
			req := validJob()
			mutate(&req)

			fields := fieldSet(t, Struct(&req))
			if fields[field] != "required" {
				t.Errorf("expected %s to fail required, got %v", field, fields)
			}
			if len(fields) != 1 {
				t.Errorf("expected exactly one field error, got %v", fields)
			}
		})
	}
}

func TestCreateJobValid(t *testing.T) {
	req := validJob()
	req.Questions = []models.Question{{Text: "Years of experience?", Required: true}}
	if err := Struct(&req); err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}
}

func TestNestedFieldPath(t *testing.T) {
	req := validJob()
	req.Questions = []models.Question{{Text: "ok"}, {Text: ""}}

	fields := fieldSet(t, Struct(&req))
	if fields["questions[1].text"] != "required" {
		t.Errorf("expected questions[1].text required, got %v", fields)
	}
}

func TestEnumAndIDRules(t *testing.T) {
	req := validJob()
	req.Mode = "office"
	req.Company = "not-an-id"

	fields := fieldSet(t, Struct(&req))
	if fields["mode"] != "oneof" {
		t.Errorf("expected mode oneof error, got %v", fields)
	}
	if fields["company"] != "objectid" {
		t.Errorf("expected company objectid error, got %v", fields)
	}
}

func TestObjectIDMatchesPathParsing(t *testing.T) {
	for _, id := range []string{"64b7f0c2e13a4b0012345678", "64B7F0C2E13A4B0012345678"} {
		req := validJob()
		req.Company = id
		if err := Struct(&req); err != nil {
			t.Errorf("%s: expected valid id, got %v", id, err)
		}
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			t.Errorf("%s: ObjectIDFromHex rejected it: %v", id, err)
		}
	}

	for _, id := range []string{"64b7f0c2e13a4b001234567", "64b7f0c2e13a4b001234567g"} {
		company := id
		fields := fieldSet(t, Struct(&UpdateJobRequest{Company: &company}))
		if fields["company"] != "objectid" {
			t.Errorf("%q: expected objectid error, got %v", id, fields)
		}
	}
}

func TestUpdateJobAllOptional(t *testing.T) {
	if err := Struct(&UpdateJobRequest{}); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}

	bad := "weekly"
	if err := Struct(&UpdateJobRequest{Status: &bad}); err == nil {
		t.Fatal("expected invalid status to fail")
	}

	title := "New title"
	updates := (&UpdateJobRequest{Title: &title}).Updates()
	if len(updates) != 1 || updates["title"] != "New title" {
		t.Errorf("unexpected updates %v", updates)
	}
}

func TestEvaluationRatingBounds(t *testing.T) {
	base := CreateEvaluationRequest{
		Evaluator: "64b7f0c2e13a4b0012345678",
		Evaluated: "64b7f0c2e13a4b0012345679",
		Course:    "64b7f0c2e13a4b001234567a",
		Type:      "course",
	}

	for _, rating := range []int{0, 6} {
		req := base
		req.Rating = rating
		if err := Struct(&req); err == nil {
			t.Errorf("rating %d should be rejected", rating)
		}
	}

	req := base
	req.Rating = 5
	if err := Struct(&req); err != nil {
		t.Errorf("rating 5 should be accepted, got %v", err)
	}
}
