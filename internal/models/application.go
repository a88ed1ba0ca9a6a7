package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// Application is unique per (Job, Applicant).
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Job       primitive.ObjectID `bson:"job" json:"job"`
	Applicant primitive.ObjectID `bson:"applicant" json:"applicant"`
	Status    ApplicationStatus  `bson:"status" json:"status"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Documents []string           `bson:"documents" json:"documents"`
	Answers   []Answer           `bson:"answers" json:"answers"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type Answer struct {
	Question string `bson:"question" json:"question" validate:"required"`
	Answer   string `bson:"answer" json:"answer"`
}

type ApplicationWithApplicant struct {
	Application
	Applicant *UserSummary `json:"applicant"`
}

type ApplicationWithJob struct {
	Application
	Job *Job `json:"job"`
}
