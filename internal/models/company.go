package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Company struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UID         string               `bson:"uid" json:"uid"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Phone       string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string               `bson:"address,omitempty" json:"address,omitempty"`
	Website     string               `bson:"website,omitempty" json:"website,omitempty"`
	Industry    string               `bson:"industry,omitempty" json:"industry,omitempty"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Executives  []primitive.ObjectID `bson:"executives" json:"executives"`
	Active      bool                 `bson:"active" json:"active"`
	PhotoPath   string               `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// CompanyProfile replaces the executive ids with user summaries.
type CompanyProfile struct {
	Company
	Executives []UserSummary `json:"executives"`
}

// CompanyDetail is the company with its jobs and every job's applications.
type CompanyDetail struct {
	Company
	Executives []UserSummary          `json:"executives"`
	Jobs       []JobWithApplications `json:"jobs"`
}

type JobWithApplications struct {
	Job
	Applications []ApplicationWithApplicant `json:"applications"`
}
