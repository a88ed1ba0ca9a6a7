package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkMode string

const (
	ModeOnSite WorkMode = "on-site"
	ModeRemote WorkMode = "remote"
	ModeHybrid WorkMode = "hybrid"
)

const (
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company     primitive.ObjectID `bson:"company" json:"company"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Mode        WorkMode           `bson:"mode" json:"mode"`
	Schedule    string             `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Location    string             `bson:"location" json:"location"`
	Salary      string             `bson:"salary,omitempty" json:"salary,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Tags        []string           `bson:"tags" json:"tags"`
	PublishedAt time.Time          `bson:"published_at" json:"published_at"`
	Questions   []Question         `bson:"questions" json:"questions"`
	Moderated   bool               `bson:"moderated" json:"moderated"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Question is a screening question asked to applicants, kept in order.
type Question struct {
	Text     string `bson:"text" json:"text" validate:"required"`
	Required bool   `bson:"required" json:"required"`
}
