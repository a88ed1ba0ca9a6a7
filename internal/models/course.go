package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentType string

const (
	PaymentPerSession PaymentType = "per-session"
	PaymentMonthly    PaymentType = "monthly"
)

type Course struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Professional  primitive.ObjectID `bson:"professional" json:"professional"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	VideoPath     string             `bson:"video_path,omitempty" json:"video_path,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	PaymentType   PaymentType        `bson:"payment_type" json:"payment_type"`
	Schedule      []time.Time        `bson:"schedule" json:"schedule"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	Duration      int                `bson:"duration" json:"duration"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
