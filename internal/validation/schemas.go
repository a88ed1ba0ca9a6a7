package validation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
)

// Users

type CreateUserRequest struct {
	UID            string             `json:"uid" form:"uid" validate:"required"`
	Name           string             `json:"name" form:"name" validate:"required"`
	Email          string             `json:"email" form:"email" validate:"required,email"`
	Role           string             `json:"role" form:"role" validate:"required,oneof=professional company-admin fractional-admin executive"`
	Phone          string             `json:"phone" form:"phone"`
	Location       string             `json:"location" form:"location"`
	Headline       string             `json:"headline" form:"headline"`
	Bio            string             `json:"bio" form:"bio"`
	Skills         []string           `json:"skills" form:"skills"`
	Languages      []string           `json:"languages" form:"languages"`
	Education      []models.Education `json:"education" form:"education" validate:"omitempty,dive"`
	EngagementMode string             `json:"engagement_mode" form:"engagement_mode" validate:"omitempty,oneof=on-site remote hybrid"`
}

type UpdateUserRequest struct {
	Name           *string             `json:"name" validate:"omitempty,min=1"`
	Email          *string             `json:"email" validate:"omitempty,email"`
	Role           *string             `json:"role" validate:"omitempty,oneof=professional company-admin fractional-admin executive"`
	Phone          *string             `json:"phone"`
	Location       *string             `json:"location"`
	Headline       *string             `json:"headline"`
	Bio            *string             `json:"bio"`
	Skills         *[]string           `json:"skills"`
	Languages      *[]string           `json:"languages"`
	Education      *[]models.Education `json:"education" validate:"omitempty,dive"`
	EngagementMode *string             `json:"engagement_mode" validate:"omitempty,oneof=on-site remote hybrid"`
}

func (r *UpdateUserRequest) Updates() bson.M {
	set := bson.M{}
	putString(set, "name", r.Name)
	putString(set, "email", r.Email)
	putString(set, "role", r.Role)
	putString(set, "phone", r.Phone)
	putString(set, "location", r.Location)
	putString(set, "headline", r.Headline)
	putString(set, "bio", r.Bio)
	putString(set, "engagement_mode", r.EngagementMode)
	putStrings(set, "skills", r.Skills)
	putStrings(set, "languages", r.Languages)
	if r.Education != nil {
		set["education"] = *r.Education
	}
	return set
}

// Companies

type CreateCompanyRequest struct {
	UID         string `json:"uid" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
}

func (r *UpdateCompanyRequest) Updates() bson.M {
	set := bson.M{}
	putString(set, "name", r.Name)
	putString(set, "email", r.Email)
	putString(set, "phone", r.Phone)
	putString(set, "address", r.Address)
	putString(set, "website", r.Website)
	putString(set, "industry", r.Industry)
	putString(set, "description", r.Description)
	return set
}

type AddExecutiveRequest struct {
	UserID string `json:"user_id" validate:"required,objectid"`
}

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

type UpdateExecutiveRequest struct {
	UserID string `json:"user_id" validate:"required,objectid"`
	Action string `json:"action" validate:"required"`
}

// Jobs

type CreateJobRequest struct {
	Company     string            `json:"company" validate:"required,objectid"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Mode        string            `json:"mode" validate:"required,oneof=on-site remote hybrid"`
	Schedule    string            `json:"schedule"`
	Location    string            `json:"location" validate:"required"`
	Salary      string            `json:"salary"`
	Status      string            `json:"status" validate:"omitempty,oneof=active paused closed"`
	Tags        []string          `json:"tags"`
	PublishedAt *time.Time        `json:"published_at"`
	Questions   []models.Question `json:"questions" validate:"omitempty,dive"`
}

// UpdateJobRequest is CreateJobRequest with every field optional.
type UpdateJobRequest struct {
	Company     *string            `json:"company" validate:"omitempty,objectid"`
	Title       *string            `json:"title" validate:"omitempty,min=1"`
	Description *string            `json:"description" validate:"omitempty,min=1"`
	Mode        *string            `json:"mode" validate:"omitempty,oneof=on-site remote hybrid"`
	Schedule    *string            `json:"schedule"`
	Location    *string            `json:"location" validate:"omitempty,min=1"`
	Salary      *string            `json:"salary"`
	Status      *string            `json:"status" validate:"omitempty,oneof=active paused closed"`
	Tags        *[]string          `json:"tags"`
	PublishedAt *time.Time         `json:"published_at"`
	Questions   *[]models.Question `json:"questions" validate:"omitempty,dive"`
}

func (r *UpdateJobRequest) Updates() bson.M {
	set := bson.M{}
	if r.Company != nil {
		set["company"] = ObjectID(*r.Company)
	}
	putString(set, "title", r.Title)
	putString(set, "description", r.Description)
	putString(set, "mode", r.Mode)
	putString(set, "schedule", r.Schedule)
	putString(set, "location", r.Location)
	putString(set, "salary", r.Salary)
	putString(set, "status", r.Status)
	putStrings(set, "tags", r.Tags)
	if r.PublishedAt != nil {
		set["published_at"] = *r.PublishedAt
	}
	if r.Questions != nil {
		set["questions"] = *r.Questions
	}
	return set
}

type QuestionList struct {
	Questions []models.Question `json:"questions" validate:"dive"`
}

type ModerationRequest struct {
	Moderated *bool `json:"moderated" validate:"required"`
}

// Applications

type CreateApplicationRequest struct {
	Job       string          `json:"job" validate:"required,objectid"`
	Applicant string          `json:"applicant" validate:"required,objectid"`
	Message   string          `json:"message"`
	Documents []string        `json:"documents" validate:"omitempty,dive,url"`
	Answers   []models.Answer `json:"answers" validate:"omitempty,dive"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shortlisted rejected hired"`
}

// Evaluations

type CreateEvaluationRequest struct {
	Evaluator string `json:"evaluator" validate:"required,objectid"`
	Evaluated string `json:"evaluated" validate:"required,objectid"`
	Course    string `json:"course" validate:"required,objectid"`
	Type      string `json:"type" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Courses

type CreateCourseRequest struct {
	Professional string      `json:"professional" validate:"required,objectid"`
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description" validate:"required"`
	Category     string      `json:"category" validate:"required"`
	Price        float64     `json:"price" validate:"gte=0"`
	PaymentType  string      `json:"payment_type" validate:"required,oneof=per-session monthly"`
	Schedule     []time.Time `json:"schedule"`
	Duration     int         `json:"duration" validate:"gte=0"`
}

type UpdateCourseRequest struct {
	Title       *string      `json:"title" validate:"omitempty,min=1"`
	Description *string      `json:"description" validate:"omitempty,min=1"`
	Category    *string      `json:"category" validate:"omitempty,min=1"`
	Price       *float64     `json:"price" validate:"omitempty,gte=0"`
	PaymentType *string      `json:"payment_type" validate:"omitempty,oneof=per-session monthly"`
	Schedule    *[]time.Time `json:"schedule"`
	Duration    *int         `json:"duration" validate:"omitempty,gte=0"`
}

func (r *UpdateCourseRequest) Updates() bson.M {
	set := bson.M{}
	putString(set, "title", r.Title)
	putString(set, "description", r.Description)
	putString(set, "category", r.Category)
	putString(set, "payment_type", r.PaymentType)
	if r.Price != nil {
		set["price"] = *r.Price
	}
	if r.Schedule != nil {
		set["schedule"] = *r.Schedule
	}
	if r.Duration != nil {
		set["duration"] = *r.Duration
	}
	return set
}

// Messages

type SendMessageRequest struct {
	Recipient string `json:"recipient" validate:"required,objectid"`
	Content   string `json:"content" validate:"required,max=5000"`
}

// ObjectID converts an id that already passed the objectid tag.
func ObjectID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}

func putString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func putStrings(set bson.M, key string, v *[]string) {
	if v != nil {
		if *v == nil {
			set[key] = []string{}
			return
		}
		set[key] = *v
	}
}
