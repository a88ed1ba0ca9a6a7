package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleProfessional    Role = "professional"
	RoleCompanyAdmin    Role = "company-admin"
	RoleFractionalAdmin Role = "fractional-admin"
	RoleExecutive       Role = "executive"
)

func (r Role) Valid() bool {
	switch r {
	case RoleProfessional, RoleCompanyAdmin, RoleFractionalAdmin, RoleExecutive:
		return true
	}
	return false
}

// User is keyed externally by the identity provider UID. Companies lists the
// companies the user is an executive of; IsExecutive mirrors len(Companies) > 0.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UID            string               `bson:"uid" json:"uid"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Role           Role                 `bson:"role" json:"role"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Location       string               `bson:"location,omitempty" json:"location,omitempty"`
	Headline       string               `bson:"headline,omitempty" json:"headline,omitempty"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills         []string             `bson:"skills" json:"skills"`
	Education      []Education          `bson:"education" json:"education"`
	Languages      []string             `bson:"languages" json:"languages"`
	CVPath         string               `bson:"cv_path,omitempty" json:"cv_path,omitempty"`
	VideoPath      string               `bson:"video_path,omitempty" json:"video_path,omitempty"`
	PhotoPath      string               `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	EngagementMode WorkMode             `bson:"engagement_mode,omitempty" json:"engagement_mode,omitempty"`
	Active         bool                 `bson:"active" json:"active"`
	IsExecutive    bool                 `bson:"is_executive" json:"is_executive"`
	Companies      []primitive.ObjectID `bson:"companies" json:"companies"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

type Education struct {
	Institution string `bson:"institution" json:"institution" form:"institution" validate:"required"`
	Degree      string `bson:"degree" json:"degree" form:"degree"`
	Field       string `bson:"field,omitempty" json:"field,omitempty" form:"field"`
	StartYear   int    `bson:"start_year,omitempty" json:"start_year,omitempty" form:"start_year"`
	EndYear     int    `bson:"end_year,omitempty" json:"end_year,omitempty" form:"end_year"`
}

// UserSummary is the applicant/executive projection embedded in joined views.
type UserSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      Role               `json:"role"`
	Headline  string             `json:"headline,omitempty"`
	Skills    []string           `json:"skills"`
	CVPath    string             `json:"cv_path,omitempty"`
	PhotoPath string             `json:"photo_path,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Headline:  u.Headline,
		Skills:    u.Skills,
		CVPath:    u.CVPath,
		PhotoPath: u.PhotoPath,
	}
}
