package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Evaluation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Evaluator primitive.ObjectID `bson:"evaluator" json:"evaluator"`
	Evaluated primitive.ObjectID `bson:"evaluated" json:"evaluated"`
	Course    primitive.ObjectID `bson:"course" json:"course"`
	Type      string             `bson:"type" json:"type"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type EvaluationSummary struct {
	Evaluations []Evaluation `json:"evaluations"`
	Average     float64      `json:"average"`
	Count       int          `json:"count"`
}
